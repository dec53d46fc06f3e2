package commands

import (
	"fmt"
	"os"

	"github.com/ajithraghavan/qmd/convert"
	"github.com/ajithraghavan/qmd/internal/styles"
)

// ToOMD converts markdown from a file or stdin to OMD
func ToOMD(args []string) {
	runConversion(args, func(c *convert.Converter, in string) (string, error) {
		return c.MarkdownToOMD(in)
	})
}

// ToMarkdown converts OMD from a file or stdin to markdown
func ToMarkdown(args []string) {
	runConversion(args, func(c *convert.Converter, in string) (string, error) {
		return c.OMDToMarkdown(in)
	})
}

func runConversion(args []string, fn func(*convert.Converter, string) (string, error)) {
	files, err := parseIOArgs(args)
	if err != nil {
		fail("Invalid arguments", err)
	}

	_, conv := loadConverter()

	in, err := readInput(files.input)
	if err != nil {
		fail("Error reading input", err)
	}

	out, err := fn(conv, in)
	if err != nil {
		fail("Conversion failed", err)
	}

	if err := writeOutput(files.output, out); err != nil {
		fail("Error writing output", err)
	}

	if files.output != "" {
		fmt.Fprintln(os.Stderr, styles.SuccessStyle.Render("✓ Wrote "+files.output))
	}
}

// Rules prints both conversion pipelines in the order they run
func Rules() {
	_, conv := loadConverter()

	printRules := func(title string, rules []convert.RuleInfo) {
		fmt.Println(styles.TitleStyle.Render(title))
		for i, r := range rules {
			scope := "span"
			if r.Line {
				scope = "line"
			}
			fmt.Printf("  %2d. %-16s %s  %s\n",
				i+1,
				styles.HighlightStyle.Render(r.Name),
				styles.DimStyle.Render(scope),
				r.Pattern)
		}
		fmt.Println()
	}

	printRules("Markdown → OMD", conv.ForwardRules())
	printRules("OMD → Markdown", conv.InverseRules())
}
