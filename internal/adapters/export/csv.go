package export

// csv.go — volcado de arbitrajes a CSV para análisis fuera del scanner.
// Mismo contrato de redondeo que la tabla de consola: edge% con 3 decimales,
// importes con 2.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

var csvHeader = []string{
	"event_id", "match", "start_time",
	"bk_outcome1", "outcome1", "odd1",
	"bk_outcome2", "outcome2", "odd2",
	"edge_pct", "stake1", "stake2", "profit", "labels_match",
}

// CSVExporter implementa ports.Exporter escribiendo un archivo CSV por ciclo.
type CSVExporter struct {
	path string
}

// NewCSVExporter crea un exporter que escribe en la ruta dada.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

// Export escribe todos los arbitrajes al archivo, sobreescribiendo el
// contenido anterior: cada ciclo produce un snapshot completo.
func (e *CSVExporter) Export(_ context.Context, arbs []domain.Arb) error {
	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("export.Export: create %q: %w", e.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("export.Export: write header: %w", err)
	}

	for _, arb := range arbs {
		start := ""
		if !arb.CommenceTime.IsZero() {
			start = arb.CommenceTime.UTC().Format(time.RFC3339)
		}
		labels := "true"
		if !arb.LabelsMatch {
			labels = "false"
		}

		record := []string{
			arb.EventID,
			arb.Match,
			start,
			arb.BookOutcome1,
			arb.Outcome1,
			fmt.Sprintf("%.2f", arb.Price1),
			arb.BookOutcome2,
			arb.Outcome2,
			fmt.Sprintf("%.2f", arb.Price2),
			fmt.Sprintf("%.3f", arb.EdgePct()),
			fmt.Sprintf("%.2f", arb.Stakes.Stake1),
			fmt.Sprintf("%.2f", arb.Stakes.Stake2),
			fmt.Sprintf("%.2f", arb.Stakes.Profit),
			labels,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("export.Export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export.Export: flush: %w", err)
	}
	return nil
}
