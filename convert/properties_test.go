package convert

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestPropertyPlainProseUnchanged(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ,]{0,40}`), 0, 8).Draw(rt, "lines")
		content := strings.Join(lines, "\n")

		omd, err := MarkdownToOMD(content)
		if err != nil {
			rt.Fatalf("MarkdownToOMD failed: %v", err)
		}
		if omd != content {
			rt.Fatalf("MarkdownToOMD changed plain text: %q -> %q", content, omd)
		}

		md, err := OMDToMarkdown(content)
		if err != nil {
			rt.Fatalf("OMDToMarkdown failed: %v", err)
		}
		if md != content {
			rt.Fatalf("OMDToMarkdown changed plain text: %q -> %q", content, md)
		}
	})
}

func TestPropertyHeadingRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 6).Draw(rt, "level")
		text := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,30}`).Draw(rt, "text")
		md := strings.Repeat("#", level) + " " + text

		omd, err := MarkdownToOMD(md)
		if err != nil {
			rt.Fatalf("MarkdownToOMD failed: %v", err)
		}
		if want := headingTokens[level] + text; omd != want {
			rt.Fatalf("expected %q, got %q", want, omd)
		}

		back, err := OMDToMarkdown(omd)
		if err != nil {
			rt.Fatalf("OMDToMarkdown failed: %v", err)
		}
		if back != md {
			rt.Fatalf("expected %q, got %q", md, back)
		}
	})
}

func TestPropertySpanRoundTrip(t *testing.T) {
	spans := []struct {
		markdown string
		omdOpen  string
		omdClose string
	}{
		{markdown: "***", omdOpen: "*/", omdClose: "/*"},
		{markdown: "**", omdOpen: "*", omdClose: "*"},
		{markdown: "*", omdOpen: "/", omdClose: "/"},
		{markdown: "~~", omdOpen: "~", omdClose: "~"},
	}

	rapid.Check(t, func(rt *rapid.T) {
		span := rapid.SampledFrom(spans).Draw(rt, "span")
		text := rapid.StringMatching(`[A-Za-z]([A-Za-z ]{0,20}[A-Za-z])?`).Draw(rt, "text")
		prefix := rapid.StringMatching(`([A-Za-z]{1,10} )?`).Draw(rt, "prefix")

		md := prefix + span.markdown + text + span.markdown
		omd, err := MarkdownToOMD(md)
		if err != nil {
			rt.Fatalf("MarkdownToOMD failed: %v", err)
		}
		if want := prefix + span.omdOpen + text + span.omdClose; omd != want {
			rt.Fatalf("expected %q, got %q", want, omd)
		}

		back, err := OMDToMarkdown(omd)
		if err != nil {
			rt.Fatalf("OMDToMarkdown failed: %v", err)
		}
		if back != md {
			rt.Fatalf("expected %q, got %q", md, back)
		}
	})
}

func TestPropertyListRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		indent := rapid.StringMatching(`( {2}| {4}|\t)?`).Draw(rt, "indent")
		text := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,20}`).Draw(rt, "text")
		checked := rapid.Bool().Draw(rt, "checked")

		item := indent + "- " + text
		task := indent + "- [ ] " + text
		wantTask := indent + "• " + text
		if checked {
			task = indent + "- [x] " + text
			wantTask = indent + "✓ " + text
		}

		omd, err := MarkdownToOMD(item + "\n" + task)
		if err != nil {
			rt.Fatalf("MarkdownToOMD failed: %v", err)
		}
		if want := indent + "• " + text + "\n" + wantTask; omd != want {
			rt.Fatalf("expected %q, got %q", want, omd)
		}

		back, err := OMDToMarkdown(omd)
		if err != nil {
			rt.Fatalf("OMDToMarkdown failed: %v", err)
		}
		want := item + "\n" + item
		if checked {
			want = item + "\n" + task
		}
		if back != want {
			rt.Fatalf("expected %q, got %q", want, back)
		}
	})
}
