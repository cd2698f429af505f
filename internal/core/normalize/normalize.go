// Package normalize provides the deterministic text cleaner applied before embedding
// Pipeline order
// 1 Unicode lower casing
// 2 Drop every rune that is not a-z, 0-9 or whitespace
// 3 Split on whitespace
// 4 Drop buzzword tokens from the fixed stop list
// 5 Join survivors with single spaces
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stopWords is jargon common to nearly every submission, it carries no content
var stopWords = map[string]struct{}{
	"decentralized": {},
	"blockchain":    {},
	"web3":          {},
	"crypto":        {},
	"protocol":      {},
	"platform":      {},
	"system":        {},
	"app":           {},
	"application":   {},
	"smart":         {},
	"contract":      {},
	"token":         {},
	"nft":           {},
	"dao":           {},
}

// Normalizer is concurrency safe, casers come from the pool below
type Normalizer struct{}

// casers are stateful so each call borrows its own
var casePool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the cleaned form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 lower
	c := casePool.Get().(*cases.Caser)
	s = c.String(s)
	c.Reset()
	casePool.Put(c)

	// 2 strip
	s = strings.Map(keepRune, s)

	// 3-5 filter tokens
	words := strings.FieldsFunc(s, isSpace)
	kept := words[:0]
	for _, w := range words {
		if IsStopWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// keepRune maps anything outside the retained alphabet to -1 (dropped)
func keepRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return r
	case r >= '0' && r <= '9':
		return r
	case isSpace(r):
		return r
	default:
		return -1
	}
}

// isSpace is unicode.IsSpace plus the ASCII information separators U+001C..U+001F
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// IsStopWord reports whether w is an exact entry of the stop list
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// StopWords returns a copy of the stop list in no particular order
func StopWords() []string {
	out := make([]string, 0, len(stopWords))
	for w := range stopWords {
		out = append(out, w)
	}
	return out
}
