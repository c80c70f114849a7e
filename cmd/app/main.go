package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"BubbleIndex/internal/di"
	"BubbleIndex/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path (.yaml or .toml); empty uses defaults")
	envFile := flag.String("env", ".env", "dotenv file loaded before the config")
	serve := flag.Bool("serve", false, "serve the chart viewer instead of running the pipeline")
	runFirst := flag.Bool("run", false, "with -serve: run the pipeline once before serving")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath, *envFile)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Wire DI: Initialize all dependencies
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*serve || *runFirst {
		if err := app.Run(ctx); err != nil {
			log.Printf("run failed: %v", err)
			cleanup()
			os.Exit(1)
		}
	}
	if *serve {
		if err := app.Serve(ctx); err != nil {
			log.Printf("serve failed: %v", err)
			cleanup()
			os.Exit(1)
		}
	}
}
