// Package ratingviewer scrapes the ratingviewer.nl club pages: the
// roster table of a club and each player's profile page. The roster
// is a client-side rendered React table, so pages are fetched through
// a headless browser and the rendered HTML handed to goquery.
package ratingviewer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	// BaseURL of the rating viewer site; profile links on the roster
	// page are relative to it.
	BaseURL = "https://ratingviewer.nl"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval between page loads, to stay polite
	MinRequestInterval = 1 * time.Second

	pageTimeout = 30 * time.Second
)

// forcePageSizeJS injects a 200-entry option into the rows-per-page
// selector so the whole club fits on one page. Best effort: clubs
// larger than 200 players would still be truncated.
const forcePageSizeJS = `
	(() => {
		const select = document.querySelector('select[aria-label="Rows per page:"]');
		if (select) {
			const option = document.createElement('option');
			option.value = '200';
			option.text = '200';
			select.appendChild(option);
			select.value = '200';
			select.dispatchEvent(new Event('change', { bubbles: true }));
		}
	})()
`

// Client drives a headless browser against the rating viewer with
// rate limiting between page loads.
type Client struct {
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a rating viewer scraper client.
func NewClient() (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		lastRequest: time.Time{},
		interval:    MinRequestInterval,
		allocCtx:    allocCtx,
		cancel:      cancel,
	}, nil
}

// Close releases browser resources.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchRoster loads a club's roster page, forces the page size up so
// every member is visible, and returns the rendered HTML.
func (c *Client) FetchRoster(ctx context.Context, clubURL string) (string, error) {
	c.waitInterval()

	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, pageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(clubURL),
		chromedp.WaitVisible(`.rdt_TableRow`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	c.lastRequest = time.Now()
	if err != nil {
		return "", fmt.Errorf("loading roster page: %w", err)
	}

	// Re-render with the larger page size. A failure here is not
	// fatal: the rows already visible are still usable.
	var widened string
	err = chromedp.Run(browserCtx,
		chromedp.Evaluate(forcePageSizeJS, nil),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML(`html`, &widened, chromedp.ByQuery),
	)
	if err != nil {
		log.Printf("  ⚠️  Forcing rows per page failed: %v (using visible rows)", err)
		return html, nil
	}

	return widened, nil
}

// FetchProfile loads one player's profile page and returns the
// rendered HTML once its tables are present.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (string, error) {
	c.waitInterval()

	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, pageTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(profileURL),
		chromedp.WaitVisible(`table`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	c.lastRequest = time.Now()
	if err != nil {
		return "", fmt.Errorf("loading profile page: %w", err)
	}

	if html == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}

	return html, nil
}

// waitInterval enforces the minimum delay between page loads.
func (c *Client) waitInterval() {
	if c.lastRequest.IsZero() {
		return
	}
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.interval {
		time.Sleep(c.interval - elapsed)
	}
}

// ParseHTML converts rendered HTML to a goquery document.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
