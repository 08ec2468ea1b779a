package fide

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// UserAgent for rating list downloads.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DownloadTimeout bounds one list download. The standard list is
	// around 70 MB compressed.
	DownloadTimeout = 5 * time.Minute
)

// Client downloads FIDE rating lists with a polite rate limit.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a rating list client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DownloadTimeout},
		// One download per 2s: two lists per run, no reason to hammer.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// FetchSnapshot downloads and parses the rating list at url. The
// caller decides the degraded behavior on error; the pipeline
// substitutes an empty snapshot so matching continues without that
// period.
func (c *Client) FetchSnapshot(ctx context.Context, url, period string) (*Snapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	log.Printf("Downloading FIDE list %s from %s...", period, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rating list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rating list returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading rating list body: %w", err)
	}

	return ParseArchive(data, period)
}
