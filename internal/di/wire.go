//go:build wireinject
// +build wireinject

package di

import (
	"BubbleIndex/pkg/config"
	"BubbleIndex/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvidePipelineOptions,

		// Metrics
		ProvideMetricsRecorder,
		ProvideMetrics,

		// Sources and sinks
		ProvideRateLimiter,
		ProvideSeriesSource,
		ProvideDocumentSink,

		// Use cases
		ProvideBubblePipeline,

		// Viewer and application
		ProvideViewer,
		ProvideApp,
	)
	return nil, nil, nil
}
