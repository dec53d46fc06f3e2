package diff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/ajithraghavan/qmd/convert"
	"github.com/ajithraghavan/qmd/internal/outline"
)

// Report describes a markdown -> OMD -> markdown round trip
type Report struct {
	Name      string
	Markdown  string
	OMD       string
	RoundTrip string

	MarkdownBytes int
	OMDBytes      int

	Drift   []outline.Drift
	Unified string // empty when the round trip is exact
}

// RoundTrip converts markdown to OMD and back, then compares the result
// with the input both textually and structurally
func RoundTrip(name, markdown string, conv *convert.Converter) (*Report, error) {
	omd, err := conv.MarkdownToOMD(markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to convert markdown to omd: %w", err)
	}

	back, err := conv.OMDToMarkdown(omd)
	if err != nil {
		return nil, fmt.Errorf("failed to convert omd to markdown: %w", err)
	}

	r := &Report{
		Name:          name,
		Markdown:      markdown,
		OMD:           omd,
		RoundTrip:     back,
		MarkdownBytes: len(markdown),
		OMDBytes:      len(omd),
		Drift:         outline.Compare(outline.Of([]byte(markdown)), outline.Of([]byte(back))),
	}

	if back != markdown {
		base := filepath.Base(name)
		edits := myers.ComputeEdits(span.URIFromPath(base), markdown, back)
		r.Unified = fmt.Sprint(gotextdiff.ToUnified(base, base+" (round trip)", markdown, edits))
	}

	return r, nil
}

// Identical reports whether the round trip reproduced the input exactly
func (r *Report) Identical() bool {
	return r.Unified == ""
}

// Saving is the fraction of bytes saved by the OMD form.
// It is negative when the OMD markers are wider than what they replace.
func (r *Report) Saving() float64 {
	if r.MarkdownBytes == 0 {
		return 0
	}
	return 1 - float64(r.OMDBytes)/float64(r.MarkdownBytes)
}

// Stats summarises sizes, the source outline and structural drift
func (r *Report) Stats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d → %d bytes (%.1f%% saved)\n",
		r.Name, r.MarkdownBytes, r.OMDBytes, r.Saving()*100)
	fmt.Fprintf(&b, "outline: %s\n", outline.Of([]byte(r.Markdown)).Summary())

	if len(r.Drift) == 0 {
		b.WriteString("structure: unchanged\n")
	} else {
		b.WriteString("structure drift:\n")
		for _, d := range r.Drift {
			fmt.Fprintf(&b, "  %s\n", d)
		}
	}
	return b.String()
}

// Render returns the unified diff wrapped in a diff code fence.
// With pretty set the fence is rendered with Glamour.
func (r *Report) Render(pretty bool) string {
	if r.Identical() {
		return "round trip is exact\n"
	}

	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", r.Unified)
	if !pretty {
		return diffMarkdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}
