// Package mdx turns the callout sections of a reference page's markdown into
// MDX components for the documentation site.
//
// Only block-quoted callouts (notice, tip and note) are carried over; every
// other piece of markdown is dropped. Blocks are recognised with text
// patterns, not by building a markdown tree.
package mdx

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/i2y/oasmint/internal/domain"
)

const (
	emojiNotice = "🚧"
	emojiTip    = "👍"
	emojiNote   = "📘"
)

// matchTimeout bounds a single pattern evaluation over one document.
const matchTimeout = 5 * time.Second

// calloutMatcher finds blocks of one callout kind.
type calloutMatcher struct {
	kind domain.CalloutKind
	re   *regexp2.Regexp
}

// A block starts on a line opening with '>' followed by the kind's emoji and,
// on that same line, its keyword. It runs lazily until a blank line followed
// by any callout header or by an unquoted line, or until end of input.
const blockEnd = `.*?(?=\n\n>[ \t]*[` + emojiNotice + emojiTip + emojiNote + `]|\n\n[^>]|\z)`

var calloutMatchers = []calloutMatcher{
	newCalloutMatcher(domain.CalloutNotice, `^>[ \t]*`+emojiNotice+`[^\n]*?(?:Notice|Warning)`+blockEnd),
	newCalloutMatcher(domain.CalloutTip, `^>[ \t]*`+emojiTip+`[^\n]*?Tip`+blockEnd),
	newCalloutMatcher(domain.CalloutNote, `^>[ \t]*`+emojiNote+`[^\n]*?Note`+blockEnd),
}

func newCalloutMatcher(kind domain.CalloutKind, expr string) calloutMatcher {
	re := regexp2.MustCompile(expr, regexp2.Multiline|regexp2.Singleline)
	re.MatchTimeout = matchTimeout
	return calloutMatcher{kind: kind, re: re}
}

// findAll returns every non-overlapping block of the matcher's kind in order.
func (m calloutMatcher) findAll(text string) ([]string, error) {
	var blocks []string
	match, err := m.re.FindStringMatch(text)
	for match != nil && err == nil {
		blocks = append(blocks, match.String())
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// detectKind classifies a block. The header line's emoji wins; otherwise the
// keywords anywhere in the block are consulted. Blocks with no marker at all
// are treated as notes.
func detectKind(block string) domain.CalloutKind {
	header, _, _ := strings.Cut(strings.TrimLeft(block, "\n"), "\n")
	switch {
	case strings.Contains(header, emojiNotice):
		return domain.CalloutNotice
	case strings.Contains(header, emojiTip):
		return domain.CalloutTip
	case strings.Contains(header, emojiNote):
		return domain.CalloutNote
	}

	switch {
	case strings.Contains(block, "Notice") || strings.Contains(block, "Warning"):
		return domain.CalloutNotice
	case strings.Contains(block, "Tip"):
		return domain.CalloutTip
	default:
		return domain.CalloutNote
	}
}

// isHeaderLine reports whether an unquoted line is a callout header.
func isHeaderLine(line string) bool {
	switch {
	case strings.Contains(line, emojiTip) && strings.Contains(line, "Tip"):
		return true
	case strings.Contains(line, emojiNote) && strings.Contains(line, "Note"):
		return true
	case strings.Contains(line, emojiNotice) &&
		(strings.Contains(line, "Notice") || strings.Contains(line, "Warning")):
		return true
	}
	return false
}
