package usecase

import (
	"context"
	"errors"

	"github.com/i2y/oasmint/internal/domain"
)

// Standard errors returned by use cases and adapters.
var (
	// ErrFetchFailed wraps transport errors and non-2xx responses from the docs site.
	ErrFetchFailed          = errors.New("fetch failed")
	ErrReferenceDirNotFound = errors.New("reference directory does not exist")
	ErrFileNotFound         = errors.New("file does not exist")
	ErrNotJSONFile          = errors.New("file is not a JSON file")
)

// --- Remote documentation ---

// MarkdownFetcher retrieves the markdown source of one operation's reference page.
type MarkdownFetcher interface {
	// FetchMarkdown returns the raw markdown for operationID from the site chosen
	// by mode. Any transport failure or non-2xx status yields an error wrapping
	// ErrFetchFailed.
	FetchMarkdown(ctx context.Context, operationID string, mode domain.Mode) (string, error)
}

// --- Files ---

// SpecRepository gives access to OpenAPI JSON documents.
type SpecRepository interface {
	// List returns the *.json files directly inside dir, sorted by name.
	// A missing directory yields an error wrapping ErrReferenceDirNotFound.
	List(ctx context.Context, dir string) ([]string, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// OutputWriter persists generated files.
type OutputWriter interface {
	// Write replaces path with data. Implementations must never leave a
	// partially written file behind.
	Write(ctx context.Context, path string, data []byte) error
}
