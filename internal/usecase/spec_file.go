package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// CheckSpecFile validates a single-file argument: it must exist and carry
// the .json extension.
func CheckSpecFile(ctx context.Context, specs SpecRepository, file string) error {
	ok, err := specs.Exists(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", file, err)
	}
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrFileNotFound, file)
	}
	if !strings.EqualFold(filepath.Ext(file), JSONExtension) {
		return fmt.Errorf("%w: '%s'", ErrNotJSONFile, file)
	}
	return nil
}
