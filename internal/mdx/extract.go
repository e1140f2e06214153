package mdx

import (
	"fmt"
	"strings"

	"github.com/i2y/oasmint/internal/domain"
)

// Extract collects the callout blocks of a markdown page.
//
// Blocks are grouped by kind (notices, then tips, then notes) regardless of
// where they appear in the source, exact duplicates are dropped keeping the
// first one, and the survivors are joined by a blank line. An empty result
// means the page has nothing to convert.
func Extract(markdown string) (string, error) {
	text := normalizeNewlines(markdown)

	byKind := make(map[domain.CalloutKind][]string, len(calloutMatchers))
	for _, m := range calloutMatchers {
		blocks, err := m.findAll(text)
		if err != nil {
			return "", fmt.Errorf("failed to match %s callouts: %w", m.kind, err)
		}
		byKind[m.kind] = blocks
	}

	seen := make(map[string]struct{})
	var unique []string
	for _, kind := range domain.CalloutKinds {
		for _, block := range byKind[kind] {
			if _, dup := seen[block]; dup {
				continue
			}
			seen[block] = struct{}{}
			unique = append(unique, block)
		}
	}

	return strings.Join(unique, "\n\n"), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
