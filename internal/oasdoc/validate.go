package oasdoc

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate loads data with kin-openapi and checks it against the OpenAPI 3
// rules. External references are not followed.
func Validate(ctx context.Context, data []byte) error {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("OpenAPI document is invalid: %w", err)
	}
	return nil
}
