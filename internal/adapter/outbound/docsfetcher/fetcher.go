package docsfetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/i2y/oasmint/internal/domain"
	"github.com/i2y/oasmint/internal/usecase"
)

// Fetcher implements the usecase.MarkdownFetcher interface over HTTP.
type Fetcher struct {
	httpClient *http.Client
	site       domain.DocsSite
	logger     *slog.Logger
}

// New creates a Fetcher for site. The client's Timeout bounds every request.
func New(client *http.Client, site domain.DocsSite, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		httpClient: client,
		site:       site,
		logger:     logger.With("component", "docs_fetcher"),
	}
}

// PageURL returns the markdown URL of operationID's reference page.
func (f *Fetcher) PageURL(operationID string, mode domain.Mode) string {
	return f.site.BaseFor(mode) + "/" + url.PathEscape(operationID) + ".md"
}

// FetchMarkdown downloads <base>/<operationID>.md.
func (f *Fetcher) FetchMarkdown(ctx context.Context, operationID string, mode domain.Mode) (string, error) {
	pageURL := f.PageURL(operationID, mode)
	log := f.logger.With(slog.String("operation_id", operationID), slog.String("url", pageURL))
	log.Debug("Fetching markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return "", fmt.Errorf("%w: failed to create request for %s: %w", usecase.ErrFetchFailed, pageURL, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Error("Failed to fetch markdown", slog.Any("error", err))
		return "", fmt.Errorf("%w: failed to fetch %s: %w", usecase.ErrFetchFailed, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("Received non-success status code", slog.String("status", resp.Status), slog.Int("status_code", resp.StatusCode))
		return "", fmt.Errorf("%w: %s returned status %s", usecase.ErrFetchFailed, pageURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", slog.Any("error", err))
		return "", fmt.Errorf("%w: failed to read response body from %s: %w", usecase.ErrFetchFailed, pageURL, err)
	}

	log.Info("Fetched markdown content", slog.String("base_url", f.site.BaseFor(mode)))
	return string(body), nil
}
