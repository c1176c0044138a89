package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"streak-coach-backend/internal/ai"
	"streak-coach-backend/internal/app"
	"streak-coach-backend/internal/config"
	"streak-coach-backend/internal/logging"
	"streak-coach-backend/internal/streaks"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "streak-coach",
		Short:         "Turns a streak name into an emoji, a one-line pitch and three first steps",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "path to a YAML config file")
	cmd.Flags().String("port", "", "port to listen on (env PORT)")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, nil)
	if err != nil {
		return err
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, every request will get the fallback suggestion")
	}

	gen, err := ai.NewGenerator(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("init generator: %w", err)
	}

	log.WithFields(logrus.Fields{
		"model":     cfg.GeminiModel,
		"transport": cfg.GeminiTransport,
		"breaker":   cfg.BreakerEnabled,
	}).Info("✅ Gemini client ready")

	router := app.NewRouter(streaks.NewCoach(gen), log)

	return app.NewServer(cfg, log, router).Start(ctx)
}
