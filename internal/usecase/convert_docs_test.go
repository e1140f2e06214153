package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/oasdoc"
	"github.com/i2y/oasmint/internal/usecase"
)

const coinsDoc = `{
  "openapi": "3.0.0",
  "info": {"title": "Coins", "version": "1.0.0"},
  "paths": {
    "/coins/list": {"get": {"operationId": "coins-list"}},
    "/ping": {"get": {"operationId": "ping-server"}}
  }
}`

const noteMarkdown = "# Page\n\n> 📘 Notes\n>\n> See [`coins-markets`](/reference/coins-markets).\n\nText.\n"

func newConvertUseCase(fetcher usecase.MarkdownFetcher, specs usecase.SpecRepository, writer usecase.OutputWriter) *usecase.ConvertDocsUseCase {
	settings := usecase.ConversionSettings{Site: testSite}
	return usecase.NewConvertDocsUseCase(settings, fetcher, specs, writer, newTestLogger())
}

func TestConvertDocsUseCase_ProcessOperation(t *testing.T) {
	ctx := context.Background()
	doc, err := oasdoc.Parse([]byte(coinsDoc))
	require.NoError(t, err)
	source := &usecase.SourceDocument{FileName: "coins.json", Doc: doc}

	fetchErr := errors.New("connection refused")
	outPath := filepath.Join("out", "coins-list.mdx")
	wantWithHeader := "---\nopenapi: api-reference/coins.json get /coins/list\n---\n\n" +
		"<Note>\n  ### Note\n\n  See [`coins-markets`](<https://docs.example.com/v3.0.1/reference/coins-markets>).\n</Note>"

	tests := []struct {
		name       string
		source     *usecase.SourceDocument
		mockSetup  func(*MockMarkdownFetcher, *MockOutputWriter)
		wantStatus domain.OperationStatus
		wantErr    bool
	}{
		{
			name:   "Success - written with header",
			source: source,
			mockSetup: func(f *MockMarkdownFetcher, w *MockOutputWriter) {
				f.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModeDemo).Return(noteMarkdown, nil).Once()
				w.On("Write", mock.Anything, outPath, []byte(wantWithHeader)).Return(nil).Once()
			},
			wantStatus: domain.StatusWritten,
		},
		{
			name:   "Success - no source means no header",
			source: nil,
			mockSetup: func(f *MockMarkdownFetcher, w *MockOutputWriter) {
				f.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModeDemo).Return(noteMarkdown, nil).Once()
				w.On("Write", mock.Anything, outPath, mock.MatchedBy(func(data []byte) bool {
					return len(data) > 0 && data[0] == '<'
				})).Return(nil).Once()
			},
			wantStatus: domain.StatusWritten,
		},
		{
			name:   "Skipped - no callouts",
			source: source,
			mockSetup: func(f *MockMarkdownFetcher, w *MockOutputWriter) {
				f.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModeDemo).Return("# Nothing\n", nil).Once()
				// Write should not be called
			},
			wantStatus: domain.StatusSkipped,
		},
		{
			name:   "Failure - fetch error",
			source: source,
			mockSetup: func(f *MockMarkdownFetcher, w *MockOutputWriter) {
				f.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModeDemo).Return("", fetchErr).Once()
			},
			wantStatus: domain.StatusFailed,
			wantErr:    true,
		},
		{
			name:   "Failure - write error",
			source: source,
			mockSetup: func(f *MockMarkdownFetcher, w *MockOutputWriter) {
				f.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModeDemo).Return(noteMarkdown, nil).Once()
				w.On("Write", mock.Anything, outPath, mock.Anything).Return(errors.New("disk full")).Once()
			},
			wantStatus: domain.StatusFailed,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockMarkdownFetcher)
			writer := new(MockOutputWriter)
			specs := new(MockSpecRepository)
			tt.mockSetup(fetcher, writer)

			uc := newConvertUseCase(fetcher, specs, writer)
			res := uc.ProcessOperation(ctx, "coins-list", "out", domain.ModeDemo, tt.source)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, "coins-list", res.OperationID)
			if tt.wantErr {
				assert.Error(t, res.Err)
				assert.False(t, res.Succeeded())
			} else {
				assert.NoError(t, res.Err)
				assert.True(t, res.Succeeded())
			}

			fetcher.AssertExpectations(t)
			writer.AssertExpectations(t)
		})
	}
}

func TestConvertDocsUseCase_ProcessOperation_FetchErrorIsWrapped(t *testing.T) {
	fetcher := new(MockMarkdownFetcher)
	fetcher.On("FetchMarkdown", mock.Anything, "ping-server", domain.ModeNone).
		Return("", usecase.ErrFetchFailed).Once()

	uc := newConvertUseCase(fetcher, new(MockSpecRepository), new(MockOutputWriter))
	res := uc.ProcessOperation(context.Background(), "ping-server", "out", domain.ModeNone, nil)

	assert.ErrorIs(t, res.Err, usecase.ErrFetchFailed)
	assert.EqualError(t, res.Err, "failed to fetch markdown for ping-server: fetch failed")
}

func TestConvertDocsUseCase_ProcessFile(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join("reference", "coins.json")

	t.Run("Partial failure", func(t *testing.T) {
		fetcher := new(MockMarkdownFetcher)
		specs := new(MockSpecRepository)
		writer := new(MockOutputWriter)

		specs.On("Read", mock.Anything, file).Return([]byte(coinsDoc), nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModePro).Return(noteMarkdown, nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "ping-server", domain.ModePro).Return("", usecase.ErrFetchFailed).Once()
		writer.On("Write", mock.Anything, filepath.Join("mdx", "coins-list.mdx"), mock.Anything).Return(nil).Once()

		res := newConvertUseCase(fetcher, specs, writer).ProcessFile(ctx, file, "mdx", domain.ModePro)

		assert.NoError(t, res.Err)
		assert.Len(t, res.Operations, 2)
		assert.Equal(t, 1, res.Succeeded())
		assert.False(t, res.OK())
		fetcher.AssertExpectations(t)
		specs.AssertExpectations(t)
		writer.AssertExpectations(t)
	})

	t.Run("Default output dir is next to the file", func(t *testing.T) {
		fetcher := new(MockMarkdownFetcher)
		specs := new(MockSpecRepository)
		writer := new(MockOutputWriter)

		specs.On("Read", mock.Anything, file).Return([]byte(coinsDoc), nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, mock.Anything, domain.ModeNone).Return(noteMarkdown, nil).Twice()
		writer.On("Write", mock.Anything, filepath.Join("reference", "coins-list.mdx"), mock.Anything).Return(nil).Once()
		writer.On("Write", mock.Anything, filepath.Join("reference", "ping-server.mdx"), mock.Anything).Return(nil).Once()

		res := newConvertUseCase(fetcher, specs, writer).ProcessFile(ctx, file, "", domain.ModeNone)

		assert.True(t, res.OK())
		writer.AssertExpectations(t)
	})

	t.Run("No operation ids is a success", func(t *testing.T) {
		specs := new(MockSpecRepository)
		specs.On("Read", mock.Anything, file).Return([]byte(`{"openapi": "3.0.0"}`), nil).Once()

		res := newConvertUseCase(new(MockMarkdownFetcher), specs, new(MockOutputWriter)).ProcessFile(ctx, file, "mdx", domain.ModePro)

		assert.True(t, res.OK())
		assert.Empty(t, res.Operations)
	})

	t.Run("Unreadable file", func(t *testing.T) {
		specs := new(MockSpecRepository)
		specs.On("Read", mock.Anything, file).Return(nil, errors.New("permission denied")).Once()

		res := newConvertUseCase(new(MockMarkdownFetcher), specs, new(MockOutputWriter)).ProcessFile(ctx, file, "mdx", domain.ModePro)

		assert.EqualError(t, res.Err, "failed to read reference/coins.json: permission denied")
		assert.False(t, res.OK())
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		specs := new(MockSpecRepository)
		specs.On("Read", mock.Anything, file).Return([]byte(`[1,2]`), nil).Once()

		res := newConvertUseCase(new(MockMarkdownFetcher), specs, new(MockOutputWriter)).ProcessFile(ctx, file, "mdx", domain.ModePro)

		assert.ErrorIs(t, res.Err, oasdoc.ErrNotObject)
		assert.False(t, res.OK())
	})

	t.Run("Panic in one operation does not stop the others", func(t *testing.T) {
		fetcher := new(MockMarkdownFetcher)
		specs := new(MockSpecRepository)

		specs.On("Read", mock.Anything, file).Return([]byte(coinsDoc), nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModePro).
			Run(func(args mock.Arguments) { panic("boom") }).Return("", nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "ping-server", domain.ModePro).Return("no callouts", nil).Once()

		res := newConvertUseCase(fetcher, specs, new(MockOutputWriter)).ProcessFile(ctx, file, "mdx", domain.ModePro)

		assert.NoError(t, res.Err)
		require.Len(t, res.Operations, 2)
		assert.Equal(t, domain.StatusFailed, res.Operations[0].Status)
		assert.EqualError(t, res.Operations[0].Err, "unexpected error processing coins-list: boom")
		assert.Equal(t, domain.StatusSkipped, res.Operations[1].Status)
		assert.Equal(t, 1, res.Succeeded())
		assert.False(t, res.OK())
		fetcher.AssertExpectations(t)
	})

	t.Run("Panic while reading is contained to the file", func(t *testing.T) {
		specs := new(MockSpecRepository)
		specs.On("Read", mock.Anything, file).
			Run(func(args mock.Arguments) { panic("disk on fire") }).Return(nil, nil).Once()

		res := newConvertUseCase(new(MockMarkdownFetcher), specs, new(MockOutputWriter)).ProcessFile(ctx, file, "mdx", domain.ModePro)

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "disk on fire")
		assert.Empty(t, res.Operations)
		assert.False(t, res.OK())
	})
}

func TestConvertDocsUseCase_ProcessDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing directory is a configuration error", func(t *testing.T) {
		specs := new(MockSpecRepository)
		specs.On("List", mock.Anything, "reference").Return(nil, usecase.ErrReferenceDirNotFound).Once()

		_, err := newConvertUseCase(new(MockMarkdownFetcher), specs, new(MockOutputWriter)).
			ProcessDirectory(ctx, "reference", "", domain.ModeNone)

		assert.ErrorIs(t, err, usecase.ErrReferenceDirNotFound)
	})

	t.Run("Empty directory succeeds", func(t *testing.T) {
		specs := new(MockSpecRepository)
		specs.On("List", mock.Anything, "reference").Return([]string{}, nil).Once()

		batch, err := newConvertUseCase(new(MockMarkdownFetcher), specs, new(MockOutputWriter)).
			ProcessDirectory(ctx, "reference", "", domain.ModeNone)

		require.NoError(t, err)
		assert.True(t, batch.OK())
		assert.Empty(t, batch.Files)
	})
}

func TestConvertDocsUseCase_ProcessMode(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid mode", func(t *testing.T) {
		_, err := newConvertUseCase(new(MockMarkdownFetcher), new(MockSpecRepository), new(MockOutputWriter)).
			ProcessMode(ctx, domain.Mode("beta"), "reference", "mdx")
		assert.ErrorIs(t, err, domain.ErrInvalidMode)
	})

	t.Run("Missing mode is invalid", func(t *testing.T) {
		_, err := newConvertUseCase(new(MockMarkdownFetcher), new(MockSpecRepository), new(MockOutputWriter)).
			ProcessMode(ctx, domain.ModeNone, "reference", "mdx")
		assert.ErrorIs(t, err, domain.ErrInvalidMode)
	})

	t.Run("Mode subdirectories are used", func(t *testing.T) {
		specs := new(MockSpecRepository)
		fetcher := new(MockMarkdownFetcher)
		writer := new(MockOutputWriter)

		file := filepath.Join("reference", "demo", "coins.json")
		specs.On("List", mock.Anything, filepath.Join("reference", "demo")).Return([]string{file}, nil).Once()
		specs.On("Read", mock.Anything, file).Return([]byte(coinsDoc), nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, mock.Anything, domain.ModeDemo).Return("no callouts", nil).Twice()

		batch, err := newConvertUseCase(fetcher, specs, writer).ProcessMode(ctx, domain.ModeDemo, "reference", "mdx")

		require.NoError(t, err)
		assert.True(t, batch.OK())
		require.Len(t, batch.Files, 1)
		for _, op := range batch.Files[0].Operations {
			assert.Equal(t, domain.StatusSkipped, op.Status)
		}
		writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
		specs.AssertExpectations(t)
		fetcher.AssertExpectations(t)
	})

	t.Run("Empty output dir uses the configured output dir", func(t *testing.T) {
		specs := new(MockSpecRepository)
		fetcher := new(MockMarkdownFetcher)
		writer := new(MockOutputWriter)

		file := filepath.Join("reference", "pro", "coins.json")
		specs.On("List", mock.Anything, filepath.Join("reference", "pro")).Return([]string{file}, nil).Once()
		specs.On("Read", mock.Anything, file).Return([]byte(coinsDoc), nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModePro).Return(noteMarkdown, nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "ping-server", domain.ModePro).Return("no callouts", nil).Once()
		writer.On("Write", mock.Anything, filepath.Join("mdx", "pro", "coins-list.mdx"), mock.Anything).Return(nil).Once()

		batch, err := newConvertUseCase(fetcher, specs, writer).ProcessMode(ctx, domain.ModePro, "reference", "")

		require.NoError(t, err)
		assert.True(t, batch.OK())
		writer.AssertExpectations(t)
	})

	t.Run("Configured output dir is honoured", func(t *testing.T) {
		specs := new(MockSpecRepository)
		fetcher := new(MockMarkdownFetcher)
		writer := new(MockOutputWriter)

		file := filepath.Join("reference", "demo", "coins.json")
		specs.On("List", mock.Anything, filepath.Join("reference", "demo")).Return([]string{file}, nil).Once()
		specs.On("Read", mock.Anything, file).Return([]byte(coinsDoc), nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "coins-list", domain.ModeDemo).Return(noteMarkdown, nil).Once()
		fetcher.On("FetchMarkdown", mock.Anything, "ping-server", domain.ModeDemo).Return("no callouts", nil).Once()
		writer.On("Write", mock.Anything, filepath.Join("site", "demo", "coins-list.mdx"), mock.Anything).Return(nil).Once()

		settings := usecase.ConversionSettings{Site: testSite, OutputDir: "site"}
		uc := usecase.NewConvertDocsUseCase(settings, fetcher, specs, writer, newTestLogger())
		batch, err := uc.ProcessMode(ctx, domain.ModeDemo, "reference", "")

		require.NoError(t, err)
		assert.True(t, batch.OK())
		writer.AssertExpectations(t)
	})
}
