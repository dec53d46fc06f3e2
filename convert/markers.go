package convert

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	markerOpen  = "\uE000"
	markerClose = "\uE001"
)

// markerSet maps marker text emitted by rules to placeholder tokens.
//
// A rule never writes its marker text directly into the buffer: it writes a
// placeholder that no later pattern can match, and the placeholders are
// expanded once the whole pipeline has run. The nonce keeps placeholders
// from colliding with text already present in the input.
type markerSet struct {
	nonce  string
	tokens map[string]string // marker text -> placeholder
	pairs  []string          // placeholder, marker text, ...
}

func newMarkerSet() *markerSet {
	return &markerSet{
		nonce:  uuid.New().String()[:8],
		tokens: make(map[string]string),
	}
}

// seal returns the placeholder for text, creating it on first use
func (s *markerSet) seal(text string) string {
	if tok, ok := s.tokens[text]; ok {
		return tok
	}

	tok := fmt.Sprintf("%s%s%x%s", markerOpen, s.nonce, len(s.tokens), markerClose)
	s.tokens[text] = tok
	s.pairs = append(s.pairs, tok, text)
	return tok
}

// expand replaces every placeholder with its marker text
func (s *markerSet) expand(content string) string {
	if len(s.pairs) == 0 {
		return content
	}
	return strings.NewReplacer(s.pairs...).Replace(content)
}
