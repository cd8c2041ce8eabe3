package notify_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Sorck29/tennis-arb/internal/adapters/notify"
	"github.com/Sorck29/tennis-arb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArb(match string, edge float64, labelsMatch bool) domain.Arb {
	return domain.Arb{
		EventID:      "ev1",
		Match:        match,
		CommenceTime: time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
		Opportunity: domain.Opportunity{
			BookOutcome1: "Bet365",
			BookOutcome2: "Pinnacle",
			Outcome1:     "Alcaraz",
			Price1:       2.10,
			Outcome2:     "Sinner",
			Price2:       2.05,
			Edge:         edge,
			LabelsMatch:  labelsMatch,
		},
		Stakes: domain.StakeAllocation{
			Stake1: 49.40,
			Stake2: 50.60,
			Edge:   edge,
			Profit: edge * 100,
		},
	}
}

func TestConsole_Notify_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	arbs := []domain.Arb{makeArb("Alcaraz vs Sinner", 0.036005, true)}

	err := n.Notify(context.Background(), arbs)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Alcaraz vs Sinner")
	assert.Contains(t, out, "Bet365")
	assert.Contains(t, out, "Pinnacle")
	// Edge% con 3 decimales, importes con 2
	assert.Contains(t, out, "3.600")
	assert.Contains(t, out, "49.40")
	assert.Contains(t, out, "50.60")
	assert.Contains(t, out, "3.60")
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	arbs := []domain.Arb{
		makeArb("Alcaraz vs Sinner", 0.036, true),
		makeArb("Djokovic vs Zverev", 0.012, true),
	}

	err := n.Notify(context.Background(), arbs)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2 arbs")
	assert.Contains(t, out, "Alcaraz vs Sinner")
}

func TestConsole_Notify_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	err := n.Notify(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no arbs found")
}

func TestConsole_Notify_LabelMismatchMarked(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	arbs := []domain.Arb{makeArb("Alcaraz vs Sinner", 0.02, false)}

	err := n.Notify(context.Background(), arbs)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "?")
}

func TestConsole_Notify_LongMatchTruncated(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	longMatch := strings.Repeat("A", 50)
	arbs := []domain.Arb{makeArb(longMatch, 0.02, true)}

	err := n.Notify(context.Background(), arbs)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "...")
}
