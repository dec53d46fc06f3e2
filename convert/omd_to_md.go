package convert

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// OMDToMarkdown converts OMD content to markdown using the default converter
func OMDToMarkdown(omdContent string) (string, error) {
	return defaultConverter.OMDToMarkdown(omdContent)
}

// inverseRules builds the OMD -> markdown pipeline.
// Heading markers are single characters so they are promoted in level
// order. Bold is expanded after italic; the asterisks written by the
// italic rule are sealed and never become bold, so /x/ yields *x* rather
// than the **x** an unsealed italic-then-bold chain would produce.
func inverseRules() []Rule {
	rules := make([]Rule, 0, 15)

	// !Heading → # Heading ... ;Heading → ###### Heading
	for level := 1; level <= 6; level++ {
		rules = append(rules, Rule{
			Name:    fmt.Sprintf("heading-%d", level),
			Pattern: "^" + regexp2.Escape(headingTokens[level]),
			Line:    true,
			Replace: []piece{marker(strings.Repeat("#", level) + " ")},
		})
	}

	rules = append(rules,
		// */text/* → ***text***
		Rule{
			Name:    "bold-italic",
			Pattern: `\*/([^/\r\n]+)/\*`,
			Replace: wrap("***", "***"),
		},
		// /text/ → *text*
		Rule{
			Name:    "italic",
			Pattern: `/([^/\r\n]+)/`,
			Replace: wrap("*", "*"),
		},
		// *text* → **text**
		Rule{
			Name:    "bold",
			Pattern: `(?<!\*)\*([^*\r\n]+)\*(?!\*)`,
			Replace: wrap("**", "**"),
		},
		// ~text~ → ~~text~~
		Rule{
			Name:    "strikethrough",
			Pattern: `(?<!~)~([^~\r\n]+)~(?!~)`,
			Replace: wrap("~~", "~~"),
		},
		// "quote → >quote
		Rule{
			Name:    "blockquote",
			Pattern: `^"`,
			Line:    true,
			Replace: []piece{marker(">")},
		},
		// ✓ task → - [x] task
		Rule{
			Name:    "task-checked",
			Pattern: `^([ \t]*)` + TaskChecked + `[ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker("- [x] ")},
		},
		// ✗ task → - [ ] task
		Rule{
			Name:    "task-unchecked",
			Pattern: `^([ \t]*)` + TaskUnchecked + `[ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker("- [ ] ")},
		},
		// ⟳ task → - [ ] task
		Rule{
			Name:    "task-in-progress",
			Pattern: `^([ \t]*)` + TaskInProgress + `[ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker("- [ ] ")},
		},
		// • item → - item
		Rule{
			Name:    "list",
			Pattern: `^([ \t]*)` + Bullet + `[ \t]+`,
			Line:    true,
			Replace: []piece{group(1), marker("- ")},
		},
		// `lang → ```lang
		Rule{
			Name:    "code-fence",
			Pattern: "^`(\\w*)[ \\t]*(?=\\r?$)",
			Line:    true,
			Replace: []piece{marker("```"), group(1)},
		},
	)

	return rules
}
