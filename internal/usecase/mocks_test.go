package usecase_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/i2y/oasmint/internal/domain"
)

// MockMarkdownFetcher is a mock implementation of the MarkdownFetcher interface.
type MockMarkdownFetcher struct {
	mock.Mock
}

func (m *MockMarkdownFetcher) FetchMarkdown(ctx context.Context, operationID string, mode domain.Mode) (string, error) {
	args := m.Called(ctx, operationID, mode)
	return args.String(0), args.Error(1)
}

// MockSpecRepository is a mock implementation of the SpecRepository interface.
type MockSpecRepository struct {
	mock.Mock
}

func (m *MockSpecRepository) List(ctx context.Context, dir string) ([]string, error) {
	args := m.Called(ctx, dir)
	files := args.Get(0)
	if files == nil {
		return nil, args.Error(1)
	}
	return files.([]string), args.Error(1)
}

func (m *MockSpecRepository) Read(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	data := args.Get(0)
	if data == nil {
		return nil, args.Error(1)
	}
	return data.([]byte), args.Error(1)
}

func (m *MockSpecRepository) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// MockOutputWriter is a mock implementation of the OutputWriter interface.
type MockOutputWriter struct {
	mock.Mock
}

func (m *MockOutputWriter) Write(ctx context.Context, path string, data []byte) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

var testSite = domain.DocsSite{
	BaseURL:     "https://docs.example.com/reference",
	DemoBaseURL: "https://docs.example.com/v3.0.1/reference",
}
