package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/internal/service/ratelimit"
	pkghttp "BubbleIndex/pkg/http"
	applogger "BubbleIndex/pkg/logger"
)

// DefaultURLs are the chart pages each series is scraped from.
var DefaultURLs = map[models.SeriesName]string{
	models.SeriesPrice:            "https://bitinfocharts.com/comparison/bitcoin-price.html",
	models.SeriesDifficulty:       "https://bitinfocharts.com/comparison/bitcoin-difficulty.html",
	models.SeriesActiveAddresses:  "https://bitinfocharts.com/comparison/bitcoin-activeaddresses.html",
	models.SeriesTransactionValue: "https://bitinfocharts.com/comparison/bitcoin-transactionvalue.html",
	models.SeriesSearchTrend:      "https://bitinfocharts.com/comparison/google_trends-btc.html",
	models.SeriesSocialMentions:   "https://bitinfocharts.com/comparison/tweets-btc.html",
}

// HTTPSource scrapes series blobs from chart pages. Requests to the same host share a token bucket.
type HTTPSource struct {
	client  *pkghttp.Client
	limiter *ratelimit.Limiter
	urls    map[models.SeriesName]string
	burst   float64
	rate    float64
	l       *applogger.Logger
}

// NewHTTPSource builds an HTTPSource. Entries in urls override DefaultURLs; rate <= 0 disables pacing.
func NewHTTPSource(client *pkghttp.Client, limiter *ratelimit.Limiter, urls map[models.SeriesName]string, burst, rate float64) *HTTPSource {
	if limiter == nil {
		limiter = ratelimit.New()
	}
	if burst < 1 {
		burst = 1
	}
	return &HTTPSource{client: client, limiter: limiter, urls: withDefaults(DefaultURLs, urls), burst: burst, rate: rate}
}

// SetLogger injects a structured logger.
func (s *HTTPSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *HTTPSource) Fetch(ctx context.Context, name models.SeriesName) (string, error) {
	raw, ok := s.urls[name]
	if !ok {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "no url configured")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "bad url %q", raw).WithCause(err)
	}
	if err := s.limiter.Wait(ctx, u.Host, s.burst, s.rate); err != nil {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "rate limit wait").WithCause(err)
	}

	body, err := s.client.Get(ctx, raw)
	if err != nil {
		if s.l != nil {
			s.l.Error("series fetch failed",
				applogger.String("series", string(name)),
				applogger.String("url", raw),
				applogger.Error(err),
			)
		}
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "fetch").WithCause(err)
	}

	blob, err := ExtractBlob(string(body))
	if err != nil {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "extract from %s", raw).WithCause(err)
	}
	if s.l != nil {
		s.l.Debug("series fetched",
			applogger.String("series", string(name)),
			applogger.Int("bytes", len(blob)),
		)
	}
	return blob, nil
}

func withDefaults(defaults, overrides map[models.SeriesName]string) map[models.SeriesName]string {
	m := make(map[models.SeriesName]string, len(defaults))
	for k, v := range defaults {
		m[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

var blobMarkers = []string{"[[new Date(", "[[Date("}

// ExtractBlob returns the first inline [[Date(...),v],...] array found in page.
func ExtractBlob(page string) (string, error) {
	start := -1
	for _, m := range blobMarkers {
		if i := strings.Index(page, m); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}
	if start < 0 {
		return "", fmt.Errorf("no data array in page")
	}
	end := strings.Index(page[start:], "]]")
	if end < 0 {
		return "", fmt.Errorf("unterminated data array")
	}
	return page[start : start+end+2], nil
}
