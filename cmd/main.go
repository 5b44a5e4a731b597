package main

import (
	"context"
	"os"

	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	movieService := services.NewMovieService(config.API.BaseURL, nil, logger)
	apiService := services.NewAPIService(config.API.BaseURL, nil, logger)
	sessions := session.Open(config.Storage.DataDir)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: movieService,
		Account: movieService,
		API:     apiService,
		Session: sessions,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "marquee",
		Usage:    "Browse, search and save movies from your terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
