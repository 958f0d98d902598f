// Package fetch provides URL fetching and HTML-to-text processing for
// directory and profile pages. Fetches go through the shared process-wide
// limiter and retry transient failures up to a configured bound.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/ratelimit"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; OutreachAgent/1.0)"

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	Headers     map[string]string
	MaxAttempts int           // Attempts per URL, including the first
	Backoff     time.Duration // Base delay; doubles per attempt
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxAttempts: 3,
		Backoff:     500 * time.Millisecond,
	}
}

// Client fetches URLs with bounded retries. One Client is shared by the
// whole run; the limiter gates concurrent and per-second requests.
type Client struct {
	http    *http.Client
	opts    *Options
	limiter *ratelimit.Limiter
}

// NewClient builds a fetch client. limiter may be nil in tests.
func NewClient(opts *Options, limiter *ratelimit.Limiter) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: limiter,
	}
}

// Get retrieves a URL, retrying transient failures (network errors, 5xx,
// 429) with exponential backoff up to Options.MaxAttempts. Non-transient
// HTTP errors fail immediately.
func (c *Client) Get(ctx context.Context, urlStr string) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	var lastErr error
	for attempt := 0; attempt < c.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.opts.Backoff << (attempt - 1)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, &Error{URL: urlStr, Message: "canceled during backoff", Cause: ctx.Err()}
			case <-timer.C:
			}
		}

		result, err := c.once(ctx, urlStr)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(result, err) || ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// once performs a single GET under the limiter.
func (c *Client) once(ctx context.Context, urlStr string) (*Result, error) {
	var result *Result
	var fetchErr error
	err := c.limiter.Do(ctx, func(ctx context.Context) error {
		result, fetchErr = c.do(ctx, urlStr)
		return nil
	})
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "canceled waiting for rate limit", Cause: err}
	}
	return result, fetchErr
}

func (c *Client) do(ctx context.Context, urlStr string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", c.opts.UserAgent)
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return result, nil
}

// retryable reports whether a failed fetch is worth another attempt.
func retryable(result *Result, err error) bool {
	if result != nil {
		return result.StatusCode == http.StatusTooManyRequests || result.StatusCode >= 500
	}
	// Transport-level failures (timeouts, resets) have no result.
	return err != nil
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup").Remove()

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}

	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return CleanWhitespace(mainContent.Text()), nil
}

// ProfilePageSelectors returns selectors tried for faculty profile pages.
func ProfilePageSelectors() []string {
	return []string{
		"main",
		"article",
		".profile-content",
		".faculty-profile",
		".bio",
		".content",
		"#content",
		".main-content",
		"#main-content",
	}
}

// CleanWhitespace normalizes whitespace in extracted text: lines are
// trimmed and blank lines dropped.
func CleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
