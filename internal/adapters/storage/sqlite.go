package storage

// sqlite.go — histórico de ciclos y arbitrajes.
//
// Estrategia:
//   - `cycles`: una fila ligera por ciclo de scan (eventos, arbs, mejor edge).
//   - `arbs`: una fila por arbitraje encontrado, con todo lo necesario para
//     reconstruir la tabla de reporting sin volver a llamar a la API.
//   - Prune automático al arrancar: las cuotas caducan en horas, un histórico
//     de más de 30 días no aporta señal.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
-- Resumen ligero por ciclo de scan
CREATE TABLE IF NOT EXISTS cycles (
    id         TEXT PRIMARY KEY,
    scanned_at DATETIME NOT NULL,
    events     INTEGER  NOT NULL DEFAULT 0,
    arbs       INTEGER  NOT NULL DEFAULT 0,
    best_edge  REAL     NOT NULL DEFAULT 0
);

-- Una fila por arbitraje encontrado
CREATE TABLE IF NOT EXISTS arbs (
    id           TEXT PRIMARY KEY,
    cycle_id     TEXT NOT NULL,
    event_id     TEXT NOT NULL,
    match_title  TEXT NOT NULL,
    commence_at  DATETIME,
    book1        TEXT NOT NULL,
    outcome1     TEXT NOT NULL,
    odd1         REAL NOT NULL,
    book2        TEXT NOT NULL,
    outcome2     TEXT NOT NULL,
    odd2         REAL NOT NULL,
    edge         REAL NOT NULL,
    stake1       REAL NOT NULL DEFAULT 0,
    stake2       REAL NOT NULL DEFAULT 0,
    profit       REAL NOT NULL DEFAULT 0,
    labels_match INTEGER NOT NULL DEFAULT 1,
    found_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cycles_at   ON cycles(scanned_at DESC);
CREATE INDEX IF NOT EXISTS idx_arbs_found  ON arbs(found_at DESC);
CREATE INDEX IF NOT EXISTS idx_arbs_event  ON arbs(event_id);
CREATE INDEX IF NOT EXISTS idx_arbs_edge   ON arbs(edge DESC);
`

const retention = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia datos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveScan persiste el resumen del ciclo y todos los arbitrajes encontrados.
// Un ciclo sin arbitrajes no escribe nada — no hay señal que guardar.
func (s *SQLiteStorage) SaveScan(ctx context.Context, arbs []domain.Arb) error {
	if len(arbs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	cycleID := uuid.New().String()
	events, bestEdge := cycleSummary(arbs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveScan: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cycles (id, scanned_at, events, arbs, best_edge) VALUES (?, ?, ?, ?, ?)`,
		cycleID, now, events, len(arbs), bestEdge,
	); err != nil {
		return fmt.Errorf("storage.SaveScan: insert cycle: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO arbs
			(id, cycle_id, event_id, match_title, commence_at,
			 book1, outcome1, odd1, book2, outcome2, odd2,
			 edge, stake1, stake2, profit, labels_match, found_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveScan: prepare: %w", err)
	}
	defer stmt.Close()

	for _, arb := range arbs {
		labelsMatch := 0
		if arb.LabelsMatch {
			labelsMatch = 1
		}
		var commence *time.Time
		if !arb.CommenceTime.IsZero() {
			t := arb.CommenceTime.UTC()
			commence = &t
		}

		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			cycleID,
			arb.EventID,
			arb.Match,
			commence,
			arb.BookOutcome1,
			arb.Outcome1,
			arb.Price1,
			arb.BookOutcome2,
			arb.Outcome2,
			arb.Price2,
			arb.Edge,
			arb.Stakes.Stake1,
			arb.Stakes.Stake2,
			arb.Stakes.Profit,
			labelsMatch,
			now,
		); err != nil {
			return fmt.Errorf("storage.SaveScan: insert arb %s: %w", arb.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveScan: commit: %w", err)
	}
	return nil
}

// GetHistory devuelve los arbitrajes cuyo found_at está en el rango dado.
// Ordenados por edge desc — los mejores primero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, from, to time.Time) ([]domain.Arb, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, match_title, commence_at,
		       book1, outcome1, odd1, book2, outcome2, odd2,
		       edge, stake1, stake2, profit, labels_match, found_at
		FROM arbs
		WHERE found_at BETWEEN ? AND ?
		ORDER BY edge DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var arbs []domain.Arb
	for rows.Next() {
		var arb domain.Arb
		var commence sql.NullString
		var foundAt string
		var labelsMatch int

		if err := rows.Scan(
			&arb.EventID,
			&arb.Match,
			&commence,
			&arb.BookOutcome1,
			&arb.Outcome1,
			&arb.Price1,
			&arb.BookOutcome2,
			&arb.Outcome2,
			&arb.Price2,
			&arb.Edge,
			&arb.Stakes.Stake1,
			&arb.Stakes.Stake2,
			&arb.Stakes.Profit,
			&labelsMatch,
			&foundAt,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}

		if commence.Valid {
			arb.CommenceTime = parseStoredTime(commence.String)
		}
		arb.FoundAt = parseStoredTime(foundAt)
		arb.LabelsMatch = labelsMatch == 1
		arb.Stakes.Edge = arb.Edge
		arbs = append(arbs, arb)
	}

	return arbs, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina datos antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention)
	s.db.ExecContext(ctx, `DELETE FROM cycles WHERE scanned_at < ?`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM arbs WHERE found_at < ?`, cutoff)
}

// parseStoredTime interpreta los timestamps tal y como los guarda el driver.
func parseStoredTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// cycleSummary cuenta eventos distintos y extrae el mejor edge del ciclo.
func cycleSummary(arbs []domain.Arb) (events int, best float64) {
	seen := make(map[string]bool, len(arbs))
	for _, a := range arbs {
		if !seen[a.EventID] {
			seen[a.EventID] = true
			events++
		}
		if a.Edge > best {
			best = a.Edge
		}
	}
	return
}
