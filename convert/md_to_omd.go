package convert

import (
	"fmt"
)

// headingTokens maps a heading level to its OMD marker
var headingTokens = [...]string{1: "!", 2: ">", 3: "-", 4: ".", 5: ":", 6: ";"}

// MarkdownToOMD converts markdown content to OMD using the default converter
func MarkdownToOMD(mdContent string) (string, error) {
	return defaultConverter.MarkdownToOMD(mdContent)
}

// forwardRules builds the markdown -> OMD pipeline.
// The order matters: headings are matched longest marker first, the
// triple-asterisk span before the double and single ones, and task items
// before plain list items.
func forwardRules(unchecked string) []Rule {
	rules := make([]Rule, 0, 15)

	// # Heading → !Heading ... ###### Heading → ;Heading
	for level := 6; level >= 1; level-- {
		rules = append(rules, Rule{
			Name:    fmt.Sprintf("heading-%d", level),
			Pattern: fmt.Sprintf(`^#{%d}[ \t]+`, level),
			Line:    true,
			Replace: []piece{marker(headingTokens[level])},
		})
	}

	rules = append(rules,
		// ***text*** → */text/*
		Rule{
			Name:    "bold-italic",
			Pattern: `\*\*\*([^*\r\n]+)\*\*\*`,
			Replace: wrap("*/", "/*"),
		},
		// **text** → *text*
		Rule{
			Name:    "bold",
			Pattern: `\*\*([^*\r\n]+)\*\*`,
			Replace: wrap("*", "*"),
		},
		// *text* → /text/
		Rule{
			Name:    "italic",
			Pattern: `(?<!\*)\*([^*\r\n]+)\*(?!\*)`,
			Replace: wrap("/", "/"),
		},
		// ~~text~~ → ~text~
		Rule{
			Name:    "strikethrough",
			Pattern: `~~([^~\r\n]+)~~`,
			Replace: wrap("~", "~"),
		},
		// > quote → "quote
		Rule{
			Name:    "blockquote",
			Pattern: `^>[ \t]*`,
			Line:    true,
			Replace: []piece{marker(`"`)},
		},
		// - [x] task → ✓ task
		Rule{
			Name:    "task-checked",
			Pattern: `^([ \t]*)[-*] \[[xX]\][ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker(TaskChecked + " ")},
		},
		// - [ ] task → • task
		Rule{
			Name:    "task-unchecked",
			Pattern: `^([ \t]*)[-*] \[ \][ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker(unchecked + " ")},
		},
		// - item → • item
		Rule{
			Name:    "list",
			Pattern: `^([ \t]*)[-*][ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker(Bullet + " ")},
		},
		// ```lang → `lang
		Rule{
			Name:    "code-fence",
			Pattern: "^```(\\w*)[ \\t]*(?=\\r?$)",
			Line:    true,
			Replace: []piece{marker("`"), group(1)},
		},
	)

	return rules
}
