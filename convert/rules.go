package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// piece renders one part of a rule's replacement for a single match
type piece func(m *regexp2.Match, markers *markerSet) string

// group copies the text captured by group n into the output
func group(n int) piece {
	return func(m *regexp2.Match, _ *markerSet) string {
		return m.GroupByNumber(n).String()
	}
}

// marker emits a sealed marker that later rules cannot match
func marker(text string) piece {
	return func(_ *regexp2.Match, markers *markerSet) string {
		return markers.seal(text)
	}
}

// wrap emits open, the first capture group, then close
func wrap(open, close string) []piece {
	return []piece{marker(open), group(1), marker(close)}
}

// Rule is one pattern-substitution step of a pipeline
type Rule struct {
	Name    string
	Pattern string
	Line    bool // anchored to line starts (multiline mode)
	Replace []piece

	re *regexp2.Regexp
}

// RuleInfo describes a compiled rule for display
type RuleInfo struct {
	Name    string
	Pattern string
	Line    bool
}

func (r *Rule) compile(timeout time.Duration) error {
	opts := regexp2.None
	if r.Line {
		opts = regexp2.Multiline
	}

	re, err := regexp2.Compile(r.Pattern, opts)
	if err != nil {
		return fmt.Errorf("failed to compile rule %q: %w", r.Name, err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	r.re = re
	return nil
}

// apply rewrites every match of the rule in content
func (r *Rule) apply(content string, markers *markerSet) (string, error) {
	out, err := r.re.ReplaceFunc(content, func(m regexp2.Match) string {
		var b strings.Builder
		for _, p := range r.Replace {
			b.WriteString(p(&m, markers))
		}
		return b.String()
	}, -1, -1)
	if err != nil {
		return content, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	return out, nil
}

// pipeline is an ordered list of compiled rules
type pipeline []Rule

func compile(rules []Rule, timeout time.Duration) (pipeline, error) {
	for i := range rules {
		if err := rules[i].compile(timeout); err != nil {
			return nil, err
		}
	}
	return pipeline(rules), nil
}

// run applies every rule in order, then expands the sealed markers
func (p pipeline) run(content string) (string, error) {
	if content == "" {
		return content, nil
	}

	markers := newMarkerSet()
	for i := range p {
		var err error
		content, err = p[i].apply(content, markers)
		if err != nil {
			return "", err
		}
	}

	return markers.expand(content), nil
}

func (p pipeline) info() []RuleInfo {
	infos := make([]RuleInfo, 0, len(p))
	for _, r := range p {
		infos = append(infos, RuleInfo{Name: r.Name, Pattern: r.Pattern, Line: r.Line})
	}
	return infos
}
