package mdx

import (
	"fmt"

	"github.com/i2y/oasmint/internal/domain"
)

// DefaultReferencePrefix is the directory the site serves OpenAPI files from.
const DefaultReferencePrefix = "api-reference"

// Converter renders MDX documents for one documentation site.
type Converter struct {
	site            domain.DocsSite
	referencePrefix string
}

// NewConverter creates a Converter. An empty referencePrefix falls back to
// DefaultReferencePrefix.
func NewConverter(site domain.DocsSite, referencePrefix string) *Converter {
	if referencePrefix == "" {
		referencePrefix = DefaultReferencePrefix
	}
	return &Converter{site: site, referencePrefix: referencePrefix}
}

// Convert extracts the callouts of markdown, converts them to components,
// rewrites reference links for mode and, when ref is complete, prefixes the
// openapi header. It returns "" when there is nothing to convert.
func (c *Converter) Convert(markdown string, ref domain.OperationRef, mode domain.Mode) (string, error) {
	extracted, err := Extract(markdown)
	if err != nil {
		return "", err
	}
	if extracted == "" {
		return "", nil
	}

	body, err := ConvertCallouts(extracted)
	if err != nil {
		return "", err
	}
	body = RewriteReferenceLinks(body, c.site.BaseFor(mode))

	if ref.Complete() {
		return c.Header(ref) + body, nil
	}
	return body, nil
}

// Header renders the front matter block tying a document to its operation.
func (c *Converter) Header(ref domain.OperationRef) string {
	return fmt.Sprintf("---\nopenapi: %s/%s %s %s\n---\n\n", c.referencePrefix, ref.ReferenceFile, ref.Method, ref.Path)
}
