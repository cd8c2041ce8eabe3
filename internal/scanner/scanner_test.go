package scanner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
	"github.com/Sorck29/tennis-arb/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockOddsProvider struct {
	events []domain.Event
	err    error
	calls  int
}

func (m *mockOddsProvider) FetchOdds(_ context.Context, _ string, _ []string) ([]domain.Event, error) {
	m.calls++
	return m.events, m.err
}

type mockNotifier struct {
	notified []domain.Arb
	err      error
}

func (m *mockNotifier) Notify(_ context.Context, arbs []domain.Arb) error {
	m.notified = arbs
	return m.err
}

type mockStorage struct {
	saved []domain.Arb
	err   error
}

func (m *mockStorage) SaveScan(_ context.Context, arbs []domain.Arb) error {
	m.saved = arbs
	return m.err
}

func (m *mockStorage) GetHistory(_ context.Context, _, _ time.Time) ([]domain.Arb, error) {
	return nil, nil
}

func (m *mockStorage) Close() error { return nil }

type mockExporter struct {
	exported []domain.Arb
}

func (m *mockExporter) Export(_ context.Context, arbs []domain.Arb) error {
	m.exported = arbs
	return nil
}

// --- helpers ---

func testConfig() scanner.Config {
	cfg := scanner.DefaultConfig()
	cfg.Filter.MinEdgePct = 1.0
	cfg.Once = true
	return cfg
}

// --- tests ---

func TestScanner_RunOnce_Success(t *testing.T) {
	ev := makeEvent("ev1",
		h2hBookmaker("booka", "Book A", fptr(2.10), nil),
		h2hBookmaker("bookb", "Book B", nil, fptr(2.05)),
	)

	odds := &mockOddsProvider{events: []domain.Event{ev}}
	s := scanner.New(testConfig(), odds, nil, &mockNotifier{}, nil)

	arbs, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, arbs, 1)
	assert.Equal(t, "ev1", arbs[0].EventID)
	assert.InDelta(t, 0.0360, arbs[0].Edge, 0.0005)
}

func TestScanner_RunOnce_FetchError(t *testing.T) {
	odds := &mockOddsProvider{err: errors.New("boom")}
	s := scanner.New(testConfig(), odds, nil, &mockNotifier{}, nil)

	_, err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch odds")
}

func TestScanner_RunOnce_MultipleEventsRankedGlobally(t *testing.T) {
	small := makeEvent("ev-small",
		h2hBookmaker("a", "A", fptr(2.04), nil),
		h2hBookmaker("b", "B", nil, fptr(2.04)), // edge ≈ 1.96%
	)
	big := makeEvent("ev-big",
		h2hBookmaker("c", "C", fptr(2.20), nil),
		h2hBookmaker("d", "D", nil, fptr(2.20)), // edge ≈ 9.09%
	)

	odds := &mockOddsProvider{events: []domain.Event{small, big}}
	s := scanner.New(testConfig(), odds, nil, &mockNotifier{}, nil)

	arbs, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, arbs, 2)

	// Ranking global por edge, no por evento
	assert.Equal(t, "ev-big", arbs[0].EventID)
	assert.Equal(t, "ev-small", arbs[1].EventID)
}

func TestScanner_Run_Once_NotifiesAndPersists(t *testing.T) {
	ev := makeEvent("ev1",
		h2hBookmaker("booka", "Book A", fptr(2.10), nil),
		h2hBookmaker("bookb", "Book B", nil, fptr(2.05)),
	)

	odds := &mockOddsProvider{events: []domain.Event{ev}}
	notifier := &mockNotifier{}
	store := &mockStorage{}
	exporter := &mockExporter{}

	s := scanner.New(testConfig(), odds, store, notifier, exporter)
	err := s.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.notified, 1)
	require.Len(t, store.saved, 1)
	require.Len(t, exporter.exported, 1)
	assert.Equal(t, 1, odds.calls)
}

func TestScanner_Run_Once_StorageErrorDoesNotFailCycle(t *testing.T) {
	ev := makeEvent("ev1",
		h2hBookmaker("booka", "Book A", fptr(2.10), nil),
		h2hBookmaker("bookb", "Book B", nil, fptr(2.05)),
	)

	odds := &mockOddsProvider{events: []domain.Event{ev}}
	store := &mockStorage{err: errors.New("disk full")}

	s := scanner.New(testConfig(), odds, store, &mockNotifier{}, nil)
	err := s.Run(context.Background())
	assert.NoError(t, err, "fallo de persistencia no debe tumbar el ciclo")
}

func TestScanner_Run_CancelledContext(t *testing.T) {
	cfg := testConfig()
	cfg.Once = false
	cfg.ScanInterval = 10 * time.Millisecond

	odds := &mockOddsProvider{events: nil}
	s := scanner.New(cfg, odds, nil, &mockNotifier{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, odds.calls, 2, "debe seguir ciclando hasta la cancelación")
}
