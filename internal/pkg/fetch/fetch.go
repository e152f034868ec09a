package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

// ErrFetchFailed is returned when a remote image could not be retrieved
// after all retries.
var ErrFetchFailed = errors.New("failed to fetch remote file")

// driveLinkPattern matches Google Drive sharing links of the
// /file/d/<id>/view form.
var driveLinkPattern = regexp.MustCompile(`^https://drive\.google\.com/file/d/([^/]+)`)

// RewriteDriveLink rewrites a Drive sharing link into its direct-download
// form. Any other URL is returned unchanged.
func RewriteDriveLink(rawURL string) string {
	m := driveLinkPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return rawURL
	}
	return "https://drive.google.com/uc?export=download&id=" + m[1]
}

// Fetcher downloads remote images with a fixed per-request timeout and a
// small number of retries on rate-limit or connection failures.
type Fetcher struct {
	client     *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewFetcher creates a Fetcher. timeout bounds each attempt end to end.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// Fetch downloads rawURL and returns the body together with a filename
// extension inferred from the response content type.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	url := RewriteDriveLink(rawURL)

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(f.backoff * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", fmt.Errorf("invalid url %s: %w", rawURL, err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			// Connection failures and timeouts get retried.
			lastErr = err
			logger.Warn().Err(err).Str("url", url).Int("attempt", attempt+1).Msg("Fetch attempt failed")
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			logger.Warn().Int("status", resp.StatusCode).Str("url", url).Int("attempt", attempt+1).Msg("Fetch attempt rejected, retrying")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, "", fmt.Errorf("%w: status %d for %s", ErrFetchFailed, resp.StatusCode, rawURL)
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		return data, extFromContentType(resp.Header.Get("Content-Type")), nil
	}

	return nil, "", fmt.Errorf("%w: %s: %v", ErrFetchFailed, rawURL, lastErr)
}

func extFromContentType(contentType string) string {
	switch {
	case contentType == "image/jpeg":
		return ".jpg"
	case contentType == "image/png":
		return ".png"
	case contentType == "image/gif":
		return ".gif"
	case contentType == "image/webp":
		return ".webp"
	case contentType == "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
