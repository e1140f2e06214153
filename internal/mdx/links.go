package mdx

import (
	"regexp"
	"strings"
)

// referenceLinkRe matches [`label`](/reference/<id>).
var referenceLinkRe = regexp.MustCompile("\\[`([^`]+)`\\]\\(/reference/([^)]+)\\)")

// RewriteReferenceLinks turns relative reference links into absolute links
// under baseURL. The target is wrapped in angle brackets, which also keeps a
// second pass from matching the rewritten form.
func RewriteReferenceLinks(text, baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	return referenceLinkRe.ReplaceAllStringFunc(text, func(link string) string {
		sub := referenceLinkRe.FindStringSubmatch(link)
		return "[`" + sub[1] + "`](<" + base + "/" + sub[2] + ">)"
	})
}
