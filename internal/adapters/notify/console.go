package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out      io.Writer
	bankroll float64
	table    bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(bankroll float64, table bool) *Console {
	return &Console{out: os.Stdout, bankroll: bankroll, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, bankroll: 100, table: table}
}

// Notify imprime los arbitrajes en el modo configurado.
func (c *Console) Notify(_ context.Context, arbs []domain.Arb) error {
	if len(arbs) == 0 {
		fmt.Fprintf(c.out, "[%s] no arbs found\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(arbs)
	} else {
		c.printCompact(arbs)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(arbs []domain.Arb) {
	now := time.Now().Format("15:04:05")
	events := countEvents(arbs)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d arbs en %d partidos", now, len(arbs), events)

	shown := 0
	for _, arb := range arbs {
		if shown >= 3 {
			break
		}
		mark := ""
		if !arb.LabelsMatch {
			mark = "?"
		}
		fmt.Fprintf(&sb, " | %.3f%%%s %s (%s/%s)",
			arb.EdgePctRounded(), mark,
			truncate(arb.Match, 28),
			arb.BookOutcome1, arb.BookOutcome2)
		shown++
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla completa con stakes y beneficio.
// Contrato de redondeo: edge% con 3 decimales, importes con 2.
func (c *Console) printFull(arbs []domain.Arb) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "\n[%s] %d arbitrajes — bankroll $%.0f por oportunidad\n",
		now, len(arbs), c.bankroll)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Match", "Start", "Book 1", "Outcome 1", "Odd 1",
		"Book 2", "Outcome 2", "Odd 2", "Edge %", "Stake 1", "Stake 2", "Profit")

	for i, arb := range arbs {
		match := truncate(arb.Match, 32)
		if !arb.LabelsMatch {
			match += " ?"
		}

		table.Append(
			fmt.Sprintf("%d", i+1),
			match,
			startLabel(arb.CommenceTime),
			arb.BookOutcome1,
			truncate(arb.Outcome1, 20),
			fmt.Sprintf("%.2f", arb.Price1),
			arb.BookOutcome2,
			truncate(arb.Outcome2, 20),
			fmt.Sprintf("%.2f", arb.Price2),
			fmt.Sprintf("%.3f", arb.EdgePct()),
			fmt.Sprintf("%.2f", arb.Stakes.Stake1),
			fmt.Sprintf("%.2f", arb.Stakes.Stake2),
			fmt.Sprintf("%.2f", arb.Stakes.Profit),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Stake 1/2 = reparto de bankroll con pago idéntico gane quien gane")
	fmt.Fprintln(c.out, "  ? = las casas no listan los resultados en el mismo orden — verificar a mano")
}

// --- helpers ---

func countEvents(arbs []domain.Arb) int {
	seen := make(map[string]bool, len(arbs))
	for _, a := range arbs {
		seen[a.EventID] = true
	}
	return len(seen)
}

func startLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("01-02 15:04")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
