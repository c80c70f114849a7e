package di

import (
	"fmt"

	"BubbleIndex/internal/domain/models"
	"BubbleIndex/internal/domain/repository"
	"BubbleIndex/internal/handler/api"
	internalrepo "BubbleIndex/internal/repository"
	icache "BubbleIndex/internal/service/cache"
	"BubbleIndex/internal/service/ratelimit"
	"BubbleIndex/internal/usecase"
	"BubbleIndex/pkg/cache"
	"BubbleIndex/pkg/config"
	pkghttp "BubbleIndex/pkg/http"
	pkgkafka "BubbleIndex/pkg/kafka"
	applogger "BubbleIndex/pkg/logger"
	"BubbleIndex/pkg/metrics"
	"BubbleIndex/pkg/server"
	"BubbleIndex/pkg/util"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With("env", cfg.Environment), nil
}

// ProvidePipelineOptions converts the pipeline section.
func ProvidePipelineOptions(cfg *config.Config) (usecase.PipelineOptions, error) {
	opts := usecase.DefaultPipelineOptions()
	epoch, err := util.ParseDay(cfg.Pipeline.Epoch)
	if err != nil {
		return opts, fmt.Errorf("pipeline.epoch: %w", err)
	}
	gapEnd, err := util.ParseDay(cfg.Pipeline.SocialGapEnd)
	if err != nil {
		return opts, fmt.Errorf("pipeline.social_gap_end: %w", err)
	}
	opts.Epoch = epoch
	// social mentions are synthesized from the first day of the feed
	opts.SocialGapStart = epoch
	opts.SocialGapEnd = gapEnd
	opts.SocialGapInit = cfg.Pipeline.SocialInit
	opts.SocialGapScale = cfg.Pipeline.SocialScale
	opts.GrowthWindow = cfg.Pipeline.GrowthWindow
	opts.DocumentVar = cfg.Output.Variable
	return opts, nil
}

// ProvideRateLimiter creates the per-host limiter shared by HTTP sources.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideSeriesSource picks the file, HTTP or headless-browser source.
func ProvideSeriesSource(cfg *config.Config, l *applogger.Logger, limiter *ratelimit.Limiter) (repository.SeriesSource, func(), error) {
	noop := func() {}
	switch cfg.Source.Kind {
	case config.SourceHTTP, config.SourceBrowser:
		urls, err := seriesMap(cfg.Source.HTTP.URLs)
		if err != nil {
			return nil, nil, fmt.Errorf("source.http.urls: %w", err)
		}
		hc := cfg.Source.HTTP
		if cfg.Source.Kind == config.SourceBrowser {
			src := internalrepo.NewBrowserSource(limiter, urls, hc.Burst, hc.RatePerSec, hc.Timeout.Std(), hc.UserAgent)
			src.SetLogger(l)
			return src, func() { _ = src.Close() }, nil
		}
		opts := []pkghttp.ClientOption{
			pkghttp.WithTimeout(hc.Timeout.Std()),
			pkghttp.WithMaxBody(hc.MaxBodyBytes),
		}
		if hc.UserAgent != "" {
			opts = append(opts, pkghttp.WithUserAgent(hc.UserAgent))
		}
		for k, v := range hc.Headers {
			opts = append(opts, pkghttp.WithHeader(k, v))
		}
		src := internalrepo.NewHTTPSource(pkghttp.NewClient(opts...), limiter, urls, hc.Burst, hc.RatePerSec)
		src.SetLogger(l)
		return src, noop, nil
	default:
		files, err := seriesMap(cfg.Source.Files)
		if err != nil {
			return nil, nil, fmt.Errorf("source.files: %w", err)
		}
		return internalrepo.NewFileSource(cfg.Source.Dir, files), noop, nil
	}
}

// ProvideDocumentSink fans the document out to every configured target.
func ProvideDocumentSink(cfg *config.Config) (*internalrepo.MultiSink, func(), error) {
	sinks := make([]repository.DocumentSink, 0, len(cfg.Sink.Targets))
	closeAll := func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}

	for _, target := range cfg.Sink.Targets {
		switch target {
		case config.SinkFile:
			sinks = append(sinks, internalrepo.NewFileSink(cfg.Output.Path))
		case config.SinkRedis:
			rc, err := cache.NewRedisCache(
				cache.WithRedisAddr(cfg.Redis.Addr),
				cache.WithRedisPassword(cfg.Redis.Password),
				cache.WithRedisDB(cfg.Redis.DB),
				cache.WithRedisPool(cfg.Redis.PoolSize, cfg.Redis.Timeout.Std()),
				cache.WithRedisDialTimeout(cfg.Redis.Timeout.Std()),
				cache.WithRedisPrefix(cfg.Redis.Prefix),
			)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("redis sink: %w", err)
			}
			sinks = append(sinks, internalrepo.NewRedisSink(rc, cfg.Redis.Key))
		case config.SinkKafka:
			producer, err := pkgkafka.NewProducer(
				pkgkafka.WithBrokers(cfg.Kafka.Brokers),
				pkgkafka.WithCompression(cfg.Kafka.Compression),
				pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
				pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
				pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
				pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout.Std(), cfg.Kafka.WriteTimeout.Std()),
			)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("kafka sink: %w", err)
			}
			sinks = append(sinks, internalrepo.NewKafkaSink(producer, cfg.Kafka.Topic, cfg.Kafka.Key))
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown sink %q", target)
		}
	}

	multi := internalrepo.NewMultiSink(sinks...)
	return multi, func() { _ = multi.Close() }, nil
}

// ProvideMetricsRecorder creates the Prometheus recorder.
func ProvideMetricsRecorder() *metrics.Recorder {
	return metrics.New()
}

// ProvideMetrics exposes the recorder through the domain interface.
func ProvideMetrics(rec *metrics.Recorder) repository.Metrics {
	return rec
}

// ProvideBubblePipeline creates the run use case.
func ProvideBubblePipeline(
	source repository.SeriesSource,
	sink *internalrepo.MultiSink,
	m repository.Metrics,
	opts usecase.PipelineOptions,
	l *applogger.Logger,
) *usecase.BubblePipeline {
	return usecase.NewBubblePipeline(source, sink, m, opts, l)
}

// ProvideViewer creates the chart handler reading back from the sinks.
func ProvideViewer(cfg *config.Config, l *applogger.Logger, sink *internalrepo.MultiSink) (*api.ViewerHandler, error) {
	return api.NewViewerHandler(l, sink, icache.NewTTLCache(), cfg.Server.CacheTTL.Std())
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	pipeline *usecase.BubblePipeline,
	rec *metrics.Recorder,
	viewer *api.ViewerHandler,
) *server.App {
	return server.New(cfg, l, pipeline, rec, viewer)
}

func seriesMap(in map[string]string) (map[models.SeriesName]string, error) {
	out := make(map[models.SeriesName]string, len(in))
	for k, v := range in {
		name := models.SeriesName(k)
		if !isSeries(name) {
			return nil, fmt.Errorf("unknown series %q", k)
		}
		out[name] = v
	}
	return out, nil
}

func isSeries(name models.SeriesName) bool {
	for _, s := range models.AllSeries {
		if s == name {
			return true
		}
	}
	return false
}
