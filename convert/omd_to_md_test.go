package convert

import (
	"testing"
)

func TestOMDToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		omd      string
		expected string
	}{
		{name: "empty", omd: "", expected: ""},
		{name: "plain prose", omd: "Nothing to see here, move along", expected: "Nothing to see here, move along"},
		{name: "heading 1", omd: "!Heading", expected: "# Heading"},
		{name: "heading 2", omd: ">Heading", expected: "## Heading"},
		{name: "heading 3", omd: "-Heading", expected: "### Heading"},
		{name: "heading 4", omd: ".Heading", expected: "#### Heading"},
		{name: "heading 5", omd: ":Heading", expected: "##### Heading"},
		{name: "heading 6", omd: ";Heading", expected: "###### Heading"},
		{name: "bold", omd: "*bold*", expected: "**bold**"},
		{name: "italic", omd: "/italic/", expected: "*italic*"},
		{name: "bold italic", omd: "*/both/*", expected: "***both***"},
		{name: "mixed emphasis", omd: "a *b* c /d/ e */f/*", expected: "a **b** c *d* e ***f***"},
		{name: "double asterisk untouched", omd: "**kept**", expected: "**kept**"},
		{name: "strikethrough", omd: "~gone~", expected: "~~gone~~"},
		{name: "double tilde untouched", omd: "~~kept~~", expected: "~~kept~~"},
		{name: "blockquote", omd: `"quoted`, expected: ">quoted"},
		{name: "task checked", omd: "✓ done", expected: "- [x] done"},
		{name: "task unchecked", omd: "✗ todo", expected: "- [ ] todo"},
		{name: "task in progress", omd: "⟳ doing", expected: "- [ ] doing"},
		{name: "nested task", omd: "  ✓ sub", expected: "  - [x] sub"},
		{name: "list", omd: "• item", expected: "- item"},
		{name: "nested list", omd: "    • item", expected: "    - item"},
		{name: "fence with language", omd: "`python", expected: "```python"},
		{name: "fence bare", omd: "`", expected: "```"},
		{name: "fence trailing spaces", omd: "`go  ", expected: "```go"},
		{name: "inline code untouched", omd: "`code` here", expected: "`code` here"},
		{
			name:     "multiline document",
			omd:      "!Title\n\nSome *bold* words.\n\n• one\n✓ two\n\n`sh\necho hi\n`",
			expected: "# Title\n\nSome **bold** words.\n\n- one\n- [x] two\n\n```sh\necho hi\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OMDToMarkdown(tt.omd)
			if err != nil {
				t.Fatalf("OMDToMarkdown failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Conversion mismatch.\nExpected: %q\nGot:      %q", tt.expected, result)
			}
		})
	}
}

func TestOMDToMarkdownMarkersAreNotReprocessed(t *testing.T) {
	tests := []struct {
		name     string
		omd      string
		expected string
	}{
		// the "*" written by the italic rule must not become bold
		{name: "italic vs bold", omd: "/italic/", expected: "*italic*"},
		// the "### " written for a heading must not be seen by later rules
		{name: "heading 3 vs list", omd: "-• x", expected: "### • x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OMDToMarkdown(tt.omd)
			if err != nil {
				t.Fatalf("OMDToMarkdown failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Conversion mismatch.\nExpected: %q\nGot:      %q", tt.expected, result)
			}
		})
	}
}

// Inputs whose round trip is lossy. These document behaviour rather than
// assert an identity.
func TestKnownAsymmetries(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		omd       string
		roundTrip string
	}{
		{
			name:      "blockquote loses its space",
			markdown:  "> quoted",
			omd:       `"quoted`,
			roundTrip: ">quoted",
		},
		{
			name:      "unchecked task shares the bullet",
			markdown:  "- [ ] todo",
			omd:       "• todo",
			roundTrip: "- todo",
		},
		{
			name:      "star bullet comes back as dash",
			markdown:  "* item",
			omd:       "• item",
			roundTrip: "- item",
		},
		{
			name:      "paths read as italic",
			markdown:  "see a/b/c",
			omd:       "see a/b/c",
			roundTrip: "see a*b*c",
		},
		{
			name:      "literal cross is read as a task",
			markdown:  "✗ nope",
			omd:       "✗ nope",
			roundTrip: "- [ ] nope",
		},
		{
			name:      "dash line is read as a heading",
			markdown:  "-not a list",
			omd:       "-not a list",
			roundTrip: "### not a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			omd, err := MarkdownToOMD(tt.markdown)
			if err != nil {
				t.Fatalf("MarkdownToOMD failed: %v", err)
			}
			if omd != tt.omd {
				t.Errorf("Forward mismatch.\nExpected: %q\nGot:      %q", tt.omd, omd)
			}

			md, err := OMDToMarkdown(omd)
			if err != nil {
				t.Fatalf("OMDToMarkdown failed: %v", err)
			}
			if md != tt.roundTrip {
				t.Errorf("Inverse mismatch.\nExpected: %q\nGot:      %q", tt.roundTrip, md)
			}
		})
	}
}

func TestUncheckedMarkerRoundTrip(t *testing.T) {
	conv, err := New(WithUncheckedTaskMarker(TaskUnchecked))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	md := "- [ ] todo\n- [x] done\n- item"
	omd, err := conv.MarkdownToOMD(md)
	if err != nil {
		t.Fatalf("MarkdownToOMD failed: %v", err)
	}
	back, err := conv.OMDToMarkdown(omd)
	if err != nil {
		t.Fatalf("OMDToMarkdown failed: %v", err)
	}

	if back != md {
		t.Errorf("Roundtrip mismatch.\nExpected: %q\nGot:      %q", md, back)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "unknown marker", opts: []Option{WithUncheckedTaskMarker("x")}},
		{name: "empty marker", opts: []Option{WithUncheckedTaskMarker("")}},
		{name: "negative timeout", opts: []Option{WithMatchTimeout(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestRuleOrder(t *testing.T) {
	conv, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	forward := []string{
		"heading-6", "heading-5", "heading-4", "heading-3", "heading-2", "heading-1",
		"bold-italic", "bold", "italic", "strikethrough", "blockquote",
		"task-checked", "task-unchecked", "list", "code-fence",
	}
	inverse := []string{
		"heading-1", "heading-2", "heading-3", "heading-4", "heading-5", "heading-6",
		"bold-italic", "italic", "bold", "strikethrough", "blockquote",
		"task-checked", "task-unchecked", "task-in-progress", "list", "code-fence",
	}

	checkNames := func(t *testing.T, rules []RuleInfo, expected []string) {
		t.Helper()
		if len(rules) != len(expected) {
			t.Fatalf("Expected %d rules, got %d", len(expected), len(rules))
		}
		for i, r := range rules {
			if r.Name != expected[i] {
				t.Errorf("Rule %d: expected %q, got %q", i, expected[i], r.Name)
			}
		}
	}

	t.Run("forward", func(t *testing.T) { checkNames(t, conv.ForwardRules(), forward) })
	t.Run("inverse", func(t *testing.T) { checkNames(t, conv.InverseRules(), inverse) })
}
