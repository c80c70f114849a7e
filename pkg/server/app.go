package server

import (
	"context"
	"fmt"
	"io"
	"os"

	"BubbleIndex/internal/handler/api"
	"BubbleIndex/internal/usecase"
	"BubbleIndex/pkg/config"
	xhttp "BubbleIndex/pkg/http"
	applogger "BubbleIndex/pkg/logger"
	"BubbleIndex/pkg/metrics"
)

// SummaryRows is how many trailing days Run prints.
const SummaryRows = 10

// App encapsulates the application lifecycle: one batch run, or the viewer.
type App struct {
	cfg      *config.Config
	l        *applogger.Logger
	pipeline *usecase.BubblePipeline
	recorder *metrics.Recorder
	viewer   *api.ViewerHandler
	out      io.Writer
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	pipeline *usecase.BubblePipeline,
	recorder *metrics.Recorder,
	viewer *api.ViewerHandler,
) *App {
	return &App{
		cfg:      cfg,
		l:        l,
		pipeline: pipeline,
		recorder: recorder,
		viewer:   viewer,
		out:      os.Stdout,
	}
}

// SetOutput redirects the summary table.
func (a *App) SetOutput(w io.Writer) { a.out = w }

// Run executes the pipeline once, prints a summary and pushes metrics.
func (a *App) Run(ctx context.Context) error {
	res, err := a.pipeline.Run(ctx)
	a.pushMetrics(ctx)
	if err != nil {
		return err
	}
	if a.viewer != nil {
		a.viewer.Invalidate()
	}
	WriteSummary(a.out, res.Document, SummaryRows)
	a.l.Info("document written",
		applogger.String("run_id", res.RunID),
		applogger.Strings("sinks", a.cfg.Sink.Targets),
	)
	return nil
}

// Serve runs the viewer until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if a.viewer == nil {
		return fmt.Errorf("viewer is not configured")
	}
	if err := a.recorder.RegisterProcessCollectors(); err != nil {
		a.l.Warn("process collectors", applogger.Error(err))
	}
	srv := xhttp.NewServer(a.viewer,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout.Std(), a.cfg.Server.WriteTimeout.Std(), a.cfg.Server.ShutdownTimeout.Std()),
		xhttp.WithLogger(a.l),
		xhttp.WithMetrics(a.recorder.Gatherer(), a.recorder.Registry()),
	)

	errc := srv.Start()
	select {
	case err, ok := <-errc:
		if ok && err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.l.Info("shutdown signal received")
	}
	// ctx is already cancelled; shutdown gets its own deadline
	return srv.Stop(context.Background())
}

func (a *App) pushMetrics(ctx context.Context) {
	if !a.cfg.Metrics.Enabled || a.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := a.recorder.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job); err != nil {
		a.l.Warn("metrics push failed", applogger.Error(err))
	}
}
