// Command antisocial generates and refines social media content plans from
// the terminal, or serves the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"antisocial-agent/handler"
	"antisocial-agent/internal/app"
	"antisocial-agent/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "antisocial",
	Short:         "Generate platform-specific content plans with an LLM",
	Long:          `antisocial builds content plans (trending angles, hashtags and post blueprints) for LinkedIn, Instagram and Twitter, and refines them through chat. Sessions are kept between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newService loads configuration and builds the service. Tests replace it.
var newService = func(ctx context.Context) (handler.Service, func(), error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a.Service, func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close stores", "err", err)
		}
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
