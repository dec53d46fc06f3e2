package convert

import (
	"fmt"
	"time"
)

// OMD list and task markers
const (
	Bullet         = "•"
	TaskChecked    = "✓"
	TaskUnchecked  = "✗"
	TaskInProgress = "⟳"
)

var defaultConverter = mustNew()

// Converter handles bidirectional conversion between markdown and OMD.
// Its rules are compiled once and never modified, so a Converter is safe
// for concurrent use.
type Converter struct {
	forward pipeline
	inverse pipeline
}

type options struct {
	unchecked string
	timeout   time.Duration
}

// Option configures a Converter
type Option func(*options)

// WithUncheckedTaskMarker sets the marker written for "- [ ]" items.
// The default is the plain bullet, which expands back to "- " rather
// than "- [ ] ".
func WithUncheckedTaskMarker(m string) Option {
	return func(o *options) {
		o.unchecked = m
	}
}

// WithMatchTimeout bounds the time each rule may spend matching
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New creates a new converter instance
func New(opts ...Option) (*Converter, error) {
	o := options{unchecked: Bullet}
	for _, opt := range opts {
		opt(&o)
	}

	if !ValidUncheckedMarker(o.unchecked) {
		return nil, fmt.Errorf("invalid unchecked task marker %q: must be one of %s, %s, %s",
			o.unchecked, Bullet, TaskUnchecked, TaskInProgress)
	}
	if o.timeout < 0 {
		return nil, fmt.Errorf("match timeout must not be negative")
	}

	forward, err := compile(forwardRules(o.unchecked), o.timeout)
	if err != nil {
		return nil, err
	}
	inverse, err := compile(inverseRules(), o.timeout)
	if err != nil {
		return nil, err
	}

	return &Converter{forward: forward, inverse: inverse}, nil
}

func mustNew() *Converter {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// ValidUncheckedMarker reports whether m can be used for unchecked tasks
func ValidUncheckedMarker(m string) bool {
	switch m {
	case Bullet, TaskUnchecked, TaskInProgress:
		return true
	}
	return false
}

// MarkdownToOMD converts markdown content to OMD
func (c *Converter) MarkdownToOMD(mdContent string) (string, error) {
	return c.forward.run(mdContent)
}

// OMDToMarkdown converts OMD content to markdown
func (c *Converter) OMDToMarkdown(omdContent string) (string, error) {
	return c.inverse.run(omdContent)
}

// ForwardRules lists the markdown -> OMD rules in the order they run
func (c *Converter) ForwardRules() []RuleInfo {
	return c.forward.info()
}

// InverseRules lists the OMD -> markdown rules in the order they run
func (c *Converter) InverseRules() []RuleInfo {
	return c.inverse.info()
}
