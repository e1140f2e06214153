package mdx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	bulletRe = regexp.MustCompile(`^(\s*)\*\s+`)

	quoteReplacer = strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
	)
	backtickQuoteReplacer = strings.NewReplacer("`\"", `"`, "\"`", `"`)
)

// ConvertCallouts replaces every callout block in text with its component
// markup. Notices are rewritten first, then tips, then notes, so the ordering
// produced by Extract is kept.
func ConvertCallouts(text string) (string, error) {
	out := text
	for _, m := range calloutMatchers {
		var err error
		out, err = m.re.ReplaceFunc(out, func(match regexp2.Match) string {
			return renderComponent(match.String())
		}, -1, -1)
		if err != nil {
			return "", fmt.Errorf("failed to convert %s callouts: %w", m.kind, err)
		}
	}
	return out, nil
}

// renderComponent converts a single block-quoted callout.
func renderComponent(block string) string {
	kind := detectKind(block)

	var content []string
	started := false
	for _, line := range strings.Split(block, "\n") {
		line = stripQuoteMarker(line)
		if !started {
			if strings.TrimSpace(line) == "" || isHeaderLine(line) {
				continue
			}
			started = true
		}
		content = append(content, normalizeLine(line))
	}
	content = trimBlankLines(content)

	var b strings.Builder
	fmt.Fprintf(&b, "<%s>\n  ### %s\n\n", kind.Component(), kind.Title())
	for i, line := range content {
		if i > 0 {
			b.WriteByte('\n')
		}
		if strings.TrimSpace(line) != "" {
			b.WriteString("  ")
		}
		b.WriteString(line)
	}
	fmt.Fprintf(&b, "\n</%s>", kind.Component())
	return b.String()
}

// stripQuoteMarker removes a leading '>' and at most one whitespace after it.
func stripQuoteMarker(line string) string {
	rest, ok := strings.CutPrefix(line, ">")
	if !ok {
		return line
	}
	if rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
		return rest[1:]
	}
	return rest
}

func normalizeLine(line string) string {
	line = bulletRe.ReplaceAllString(line, "${1}- ")
	line = quoteReplacer.Replace(line)
	return backtickQuoteReplacer.Replace(line)
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
