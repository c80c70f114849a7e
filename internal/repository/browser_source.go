package repository

import (
	"context"
	"net/url"
	"sync"
	"time"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/internal/service/ratelimit"
	applogger "BubbleIndex/pkg/logger"

	"github.com/chromedp/chromedp"
)

// BrowserSource loads chart pages in headless Chrome and extracts the data array
// from the rendered DOM. One browser is started lazily and shared by all fetches.
type BrowserSource struct {
	urls    map[models.SeriesName]string
	limiter *ratelimit.Limiter
	burst   float64
	rate    float64
	timeout time.Duration
	opts    []chromedp.ExecAllocatorOption
	l       *applogger.Logger

	mu       sync.Mutex
	browser  context.Context
	shutdown []context.CancelFunc
}

func NewBrowserSource(limiter *ratelimit.Limiter, urls map[models.SeriesName]string, burst, rate float64, timeout time.Duration, userAgent string) *BrowserSource {
	if limiter == nil {
		limiter = ratelimit.New()
	}
	if burst < 1 {
		burst = 1
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	return &BrowserSource{
		urls:    withDefaults(DefaultURLs, urls),
		limiter: limiter,
		burst:   burst,
		rate:    rate,
		timeout: timeout,
		opts:    opts,
	}
}

// SetLogger injects a structured logger.
func (s *BrowserSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *BrowserSource) Fetch(ctx context.Context, name models.SeriesName) (string, error) {
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

	browser, err := s.start()
	if err != nil {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "start browser").WithCause(err)
	}
	tab, cancelTab := chromedp.NewContext(browser)
	defer cancelTab()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		tab, cancel = context.WithTimeout(tab, s.timeout)
		defer cancel()
	}
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err = chromedp.Run(tab,
		chromedp.Navigate(raw),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("browser fetch failed",
				applogger.String("series", string(name)),
				applogger.String("url", raw),
				applogger.Error(err),
			)
		}
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "render %s", raw).WithCause(err)
	}

	blob, err := ExtractBlob(html)
	if err != nil {
		return "", models.NewError(models.ErrDataUnavailable, name, -1, "extract from %s", raw).WithCause(err)
	}
	return blob, nil
}

func (s *BrowserSource) start() (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		return s.browser, nil
	}
	alloc, cancelAlloc := chromedp.NewExecAllocator(context.Background(), s.opts...)
	browser, cancelBrowser := chromedp.NewContext(alloc)
	// the first Run launches the process
	if err := chromedp.Run(browser); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}
	s.browser = browser
	s.shutdown = []context.CancelFunc{cancelBrowser, cancelAlloc}
	return browser, nil
}

// Close stops the browser if it was started.
func (s *BrowserSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.shutdown {
		cancel()
	}
	s.browser, s.shutdown = nil, nil
	return nil
}
