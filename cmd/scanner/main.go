package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sorck29/tennis-arb/config"
	"github.com/Sorck29/tennis-arb/internal/adapters/export"
	"github.com/Sorck29/tennis-arb/internal/adapters/notify"
	"github.com/Sorck29/tennis-arb/internal/adapters/oddsapi"
	"github.com/Sorck29/tennis-arb/internal/adapters/storage"
	"github.com/Sorck29/tennis-arb/internal/ports"
	"github.com/Sorck29/tennis-arb/internal/scanner"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one scan cycle and exit")
	table := flag.Bool("table", false, "print full table (default: compact 1-line)")
	csvPath := flag.String("csv", "", "export each cycle to this CSV file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("tennis-arb starting",
		"config", *configPath,
		"sport", cfg.Scanner.SportKey,
		"regions", cfg.Scanner.Regions,
		"interval", cfg.ScanInterval(),
		"once", *once,
	)

	client := oddsapi.NewClient(cfg.API.BaseURL, cfg.APIKey(), cfg.CacheTTL())

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	notifier := notify.NewConsole(cfg.Scanner.Bankroll, *table)

	var exporter ports.Exporter
	if *csvPath != "" {
		exporter = export.NewCSVExporter(*csvPath)
	}

	scanCfg := scanner.DefaultConfig()
	scanCfg.SportKey = cfg.Scanner.SportKey
	scanCfg.Regions = cfg.Scanner.Regions
	scanCfg.Bankroll = cfg.Scanner.Bankroll
	scanCfg.ScanInterval = cfg.ScanInterval()
	scanCfg.Workers = cfg.Scanner.Workers
	scanCfg.Once = *once
	scanCfg.Filter = scanner.FilterConfig{
		MinEdgePct:           cfg.Scanner.MinEdgePct,
		RequireDistinctBooks: cfg.RequireDistinctBooks(),
	}

	s := scanner.New(scanCfg, client, store, notifier, exporter)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		slog.Error("scanner exited with error", "err", err)
		os.Exit(1)
	}

	q := client.LastQuota()
	slog.Info("tennis-arb stopped cleanly",
		"requests_remaining", q.Remaining,
		"requests_used", q.Used,
	)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
