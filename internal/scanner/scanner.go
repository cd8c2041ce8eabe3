package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
	"github.com/Sorck29/tennis-arb/internal/ports"
)

// Config contiene la configuración del scanner.
type Config struct {
	SportKey     string
	Regions      []string
	Bankroll     float64
	ScanInterval time.Duration
	Filter       FilterConfig
	Workers      int  // goroutines para análisis paralelo (0 = NumCPU)
	Once         bool // un solo ciclo y salir
}

// DefaultConfig devuelve una configuración razonable para tenis ATP.
func DefaultConfig() Config {
	return Config{
		SportKey:     "tennis_atp",
		Regions:      []string{"uk", "eu"},
		Bankroll:     100,
		ScanInterval: 60 * time.Second,
		Filter:       DefaultFilterConfig(),
	}
}

// Scanner es el orquestador principal del loop de escaneo.
type Scanner struct {
	cfg      Config
	odds     ports.OddsProvider
	storage  ports.Storage
	notifier ports.Notifier
	exporter ports.Exporter
	analyzer *Analyzer
}

// New crea un Scanner con todas las dependencias inyectadas.
// storage y exporter pueden ser nil (sin persistencia / sin CSV).
func New(cfg Config, odds ports.OddsProvider, storage ports.Storage, notifier ports.Notifier, exporter ports.Exporter) *Scanner {
	return &Scanner{
		cfg:      cfg,
		odds:     odds,
		storage:  storage,
		notifier: notifier,
		exporter: exporter,
		analyzer: NewAnalyzer(cfg.Bankroll, cfg.Filter),
	}
}

// Run ejecuta el loop de escaneo hasta que el contexto se cancele.
// Si cfg.Once está activo, solo ejecuta un ciclo.
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"sport", s.cfg.SportKey,
		"regions", s.cfg.Regions,
		"interval", s.cfg.ScanInterval,
		"min_edge_pct", s.cfg.Filter.MinEdgePct,
		"bankroll", s.cfg.Bankroll,
		"once", s.cfg.Once,
	)

	if err := s.runCycle(ctx); err != nil {
		slog.Error("scan cycle failed", "err", err)
		if s.cfg.Once {
			return err
		}
	}

	if s.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("scan cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo de escaneo y devuelve los arbitrajes.
func (s *Scanner) RunOnce(ctx context.Context) ([]domain.Arb, error) {
	return s.cycle(ctx)
}

// runCycle ejecuta un ciclo completo y notifica/persiste/exporta los resultados.
func (s *Scanner) runCycle(ctx context.Context) error {
	start := time.Now()

	arbs, err := s.cycle(ctx)
	if err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, arbs); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if s.storage != nil {
		if err := s.storage.SaveScan(ctx, arbs); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, arbs); err != nil {
			slog.Warn("exporter error", "err", err)
		}
	}

	slog.Info("scan cycle complete",
		"arbs", len(arbs),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cycle hace fetch → análisis paralelo por evento → ranking global.
func (s *Scanner) cycle(ctx context.Context) ([]domain.Arb, error) {
	events, err := s.odds.FetchOdds(ctx, s.cfg.SportKey, s.cfg.Regions)
	if err != nil {
		return nil, fmt.Errorf("scanner.cycle: fetch odds: %w", err)
	}

	arbs := analyzeEventsConcurrent(s.analyzer, events, s.cfg.Workers)

	slog.Debug("cycle analysis complete",
		"events", len(events),
		"arbs", len(arbs),
	)
	return arbs, nil
}
