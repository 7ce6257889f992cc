package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/resilience"
)

// ErrStatus is wrapped when the remote answers with an error status
var ErrStatus = errors.New("unexpected status")

// Preview is the readable summary of a fetched page
type Preview struct {
	URL     string `json:"url"`
	Status  int    `json:"status"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// Fetcher loads page previews
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Preview, error)
}

// FetcherOptions configures HTTPFetcher
type FetcherOptions struct {
	Timeout       time.Duration
	Retries       int
	RetryWaitMin  time.Duration
	RetryWaitMax  time.Duration
	RateLimit     float64 // requests per second, 0 is unlimited
	UserAgent     string
	MaxBodyBytes  int64
	ExcerptLength int
}

// DefaultFetcherOptions returns conservative limits for outbound previews
func DefaultFetcherOptions() FetcherOptions {
	return FetcherOptions{
		Timeout:       10 * time.Second,
		Retries:       2,
		RetryWaitMin:  200 * time.Millisecond,
		RetryWaitMax:  2 * time.Second,
		RateLimit:     5,
		UserAgent:     "WebDesk-Browser/1.0",
		MaxBodyBytes:  2 << 20,
		ExcerptLength: 280,
	}
}

// HTTPFetcher fetches pages with retries, a circuit breaker and a rate limit
type HTTPFetcher struct {
	client   *resty.Client
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	sanitize *bluemonday.Policy
	opts     FetcherOptions
	logger   *zap.Logger
}

// NewFetcher builds an HTTPFetcher
func NewFetcher(opts FetcherOptions, logger *zap.Logger) *HTTPFetcher {
	def := DefaultFetcherOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = def.MaxBodyBytes
	}
	if opts.ExcerptLength <= 0 {
		opts.ExcerptLength = def.ExcerptLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	breaker := resilience.New("browser-preview", resilience.Settings{
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &HTTPFetcher{
		client:   client,
		limiter:  limiter,
		breaker:  breaker,
		sanitize: bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true),
		opts:     opts,
		logger:   logger,
	}
}

// Breaker exposes the fetcher's circuit breaker
func (f *HTTPFetcher) Breaker() *resilience.Breaker {
	return f.breaker
}

// fetched is a response read at most MaxBodyBytes deep
type fetched struct {
	status     int
	statusText string
	body       []byte
}

// Fetch downloads url and extracts its title and a plain-text excerpt.
// Server errors count against the breaker; client errors do not.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Preview, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return Preview{}, fmt.Errorf("rate limit: %w", err)
	}

	page, err := resilience.Do(f.breaker, func() (fetched, error) {
		resp, err := f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
		if err != nil {
			return fetched{}, err
		}
		raw := resp.RawBody()
		defer raw.Close()

		page := fetched{status: resp.StatusCode(), statusText: resp.Status()}
		if page.status >= 500 {
			return page, fmt.Errorf("%w: %s", ErrStatus, page.statusText)
		}
		if page.status >= 400 {
			return page, nil
		}
		page.body, err = io.ReadAll(io.LimitReader(raw, f.opts.MaxBodyBytes))
		return page, err
	})
	if err != nil {
		return Preview{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if page.status >= 400 {
		return Preview{}, fmt.Errorf("fetch %s: %w: %s", url, ErrStatus, page.statusText)
	}
	body := page.body

	p, err := f.summarize(body)
	if err != nil {
		return Preview{}, fmt.Errorf("parse %s: %w", url, err)
	}
	p.URL = url
	p.Status = page.status

	f.logger.Debug("Fetched preview",
		zap.String("url", url),
		zap.Int("status", p.Status),
		zap.Int("bytes", len(body)))
	return p, nil
}

func (f *HTTPFetcher) summarize(body []byte) (Preview, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Preview{}, err
	}

	title := collapse(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, template, head").Remove()

	markup, err := doc.Find("body").Html()
	if err != nil {
		return Preview{}, err
	}
	text := collapse(html.UnescapeString(f.sanitize.Sanitize(markup)))
	return Preview{Title: title, Excerpt: truncate(text, f.opts.ExcerptLength)}, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "..."
}
