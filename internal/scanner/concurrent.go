package scanner

// concurrent.go — worker pool para análisis paralelo de eventos.
//
// Cada evento se procesa de forma totalmente independiente (snapshot puro,
// sin estado compartido), así que repartirlos entre workers no requiere más
// coordinación que recolectar los resultados.

import (
	"runtime"
	"sort"
	"sync"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

// analyzeEventsConcurrent analiza todos los eventos en paralelo y devuelve
// los arbitrajes de todo el snapshot ordenados por edge descendente.
//
// Si workers <= 0 usa runtime.NumCPU().
func analyzeEventsConcurrent(analyzer *Analyzer, events []domain.Event, workers int) []domain.Arb {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	workCh := make(chan domain.Event, len(events))
	resultCh := make(chan []domain.Arb, len(events))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range workCh {
				if arbs := analyzer.AnalyzeEvent(ev); len(arbs) > 0 {
					resultCh <- arbs
				}
			}
		}()
	}

	for _, ev := range events {
		workCh <- ev
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var all []domain.Arb
	for arbs := range resultCh {
		all = append(all, arbs...)
	}

	// Re-ordenar globalmente: la recolección concurrente pierde el orden
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Edge > all[j].Edge
	})
	return all
}
