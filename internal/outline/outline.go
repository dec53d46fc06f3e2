// Package outline summarises the markdown structure of a document so that
// a round trip through OMD can be checked for lost or gained constructs.
package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Outline counts the constructs the OMD rules touch
type Outline struct {
	Headings       [7]int // index by level, 0 unused
	Emphasis       int
	Strong         int
	Strikethrough  int
	Blockquotes    int
	ListItems      int
	TasksChecked   int
	TasksUnchecked int
	CodeBlocks     []string // fence languages in document order
}

// Drift is one difference between two outlines
type Drift struct {
	Construct string
	Before    int
	After     int
}

func (d Drift) String() string {
	return fmt.Sprintf("%s: %d → %d", d.Construct, d.Before, d.After)
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Of parses markdown and returns its outline
func Of(source []byte) Outline {
	var o Outline
	doc := md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level >= 1 && node.Level <= 6 {
				o.Headings[node.Level]++
			}
		case *ast.Emphasis:
			if node.Level == 2 {
				o.Strong++
			} else {
				o.Emphasis++
			}
		case *east.Strikethrough:
			o.Strikethrough++
		case *ast.Blockquote:
			o.Blockquotes++
		case *ast.ListItem:
			o.ListItems++
		case *east.TaskCheckBox:
			if node.IsChecked {
				o.TasksChecked++
			} else {
				o.TasksUnchecked++
			}
		case *ast.FencedCodeBlock:
			o.CodeBlocks = append(o.CodeBlocks, string(node.Language(source)))
		}
		return ast.WalkContinue, nil
	})

	return o
}

// Compare lists the constructs whose counts differ between before and after
func Compare(before, after Outline) []Drift {
	var drifts []Drift
	add := func(name string, b, a int) {
		if b != a {
			drifts = append(drifts, Drift{Construct: name, Before: b, After: a})
		}
	}

	for level := 1; level <= 6; level++ {
		add(fmt.Sprintf("heading %d", level), before.Headings[level], after.Headings[level])
	}
	add("emphasis", before.Emphasis, after.Emphasis)
	add("strong", before.Strong, after.Strong)
	add("strikethrough", before.Strikethrough, after.Strikethrough)
	add("blockquote", before.Blockquotes, after.Blockquotes)
	add("list item", before.ListItems, after.ListItems)
	add("task checked", before.TasksChecked, after.TasksChecked)
	add("task unchecked", before.TasksUnchecked, after.TasksUnchecked)

	beforeLangs := countLangs(before.CodeBlocks)
	afterLangs := countLangs(after.CodeBlocks)
	for _, lang := range unionKeys(beforeLangs, afterLangs) {
		name := "code block"
		if lang != "" {
			name += " " + lang
		}
		add(name, beforeLangs[lang], afterLangs[lang])
	}

	return drifts
}

// Summary renders an outline as a single line
func (o Outline) Summary() string {
	var parts []string
	for level := 1; level <= 6; level++ {
		if o.Headings[level] > 0 {
			parts = append(parts, fmt.Sprintf("h%d×%d", level, o.Headings[level]))
		}
	}
	counts := []struct {
		name string
		n    int
	}{
		{"em", o.Emphasis},
		{"strong", o.Strong},
		{"del", o.Strikethrough},
		{"quote", o.Blockquotes},
		{"item", o.ListItems},
		{"done", o.TasksChecked},
		{"todo", o.TasksUnchecked},
		{"code", len(o.CodeBlocks)},
	}
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%s×%d", c.name, c.n))
		}
	}
	if len(parts) == 0 {
		return "plain text"
	}
	return strings.Join(parts, " ")
}

func countLangs(langs []string) map[string]int {
	counts := make(map[string]int)
	for _, l := range langs {
		counts[l]++
	}
	return counts
}

func unionKeys(a, b map[string]int) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range []map[string]int{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
