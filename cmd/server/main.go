package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/xtding233/gacha-tracker/internal/api"
	"github.com/xtding233/gacha-tracker/internal/game"
	"github.com/xtding233/gacha-tracker/internal/stats"
)

type config struct {
	Addr      string   `env:"GACHA_ADDR" envDefault:":8080"`
	ConfigDir string   `env:"GACHA_CONFIG_DIR" envDefault:"./config"`
	Game      string   `env:"GACHA_GAME" envDefault:"endfield"`
	LogLevel  string   `env:"GACHA_LOG_LEVEL" envDefault:"info"`
	LogFormat string   `env:"GACHA_LOG_FORMAT" envDefault:"text"`
	RateLimit float64  `env:"GACHA_RATE_LIMIT" envDefault:"20"`
	RateBurst int      `env:"GACHA_RATE_BURST" envDefault:"40"`
	Origins   []string `env:"GACHA_ALLOWED_ORIGINS" envSeparator:","`
	Watch     bool     `env:"GACHA_WATCH" envDefault:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := game.NewStore(game.NewLoader(cfg.ConfigDir), cfg.Game, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Error("config watcher stopped", "err", err)
			}
		}()
	}

	apiCfg := api.DefaultConfig()
	apiCfg.RateLimit = cfg.RateLimit
	apiCfg.RateBurst = cfg.RateBurst
	if len(cfg.Origins) > 0 {
		apiCfg.AllowedOrigins = cfg.Origins
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(stats.NewService(store, logger), apiCfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "game", cfg.Game, "config_version", store.Params().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
