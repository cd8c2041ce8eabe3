package scanner

import (
	"log/slog"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

const defaultBankroll = 100.0

// Analyzer procesa un evento: normaliza las cuotas, busca arbitrajes,
// filtra por edge mínimo y calcula los stakes para el bankroll configurado.
type Analyzer struct {
	bankroll float64
	distinct bool
	filter   *Filter
}

// NewAnalyzer crea un Analyzer con los parámetros dados.
func NewAnalyzer(bankroll float64, filterCfg FilterConfig) *Analyzer {
	if bankroll <= 0 {
		bankroll = defaultBankroll
	}
	return &Analyzer{
		bankroll: bankroll,
		distinct: filterCfg.RequireDistinctBooks,
		filter:   NewFilter(filterCfg),
	}
}

// AnalyzeEvent devuelve los arbitrajes de un evento con stakes calculados.
// Un evento sin mercados h2h válidos devuelve lista vacía, nunca error:
// los datos malformados del feed se excluyen, no interrumpen el ciclo.
func (a *Analyzer) AnalyzeEvent(ev domain.Event) []domain.Arb {
	quotes := domain.NormalizeQuotes(ev.Bookmakers)
	if len(quotes) == 0 {
		return nil
	}

	opps := a.filter.Apply(domain.FindOpportunities(quotes, a.distinct))
	if len(opps) == 0 {
		return nil
	}

	now := time.Now().UTC()
	arbs := make([]domain.Arb, 0, len(opps))
	for _, opp := range opps {
		stakes, err := domain.SplitStakes(opp.Price1, opp.Price2, a.bankroll)
		if err != nil {
			// No debería pasar: el engine ya filtró precios inválidos
			slog.Debug("stake split failed", "event", ev.ID, "err", err)
			continue
		}
		arbs = append(arbs, domain.Arb{
			EventID:      ev.ID,
			Match:        ev.Title(),
			CommenceTime: ev.CommenceTime,
			Opportunity:  opp,
			Stakes:       stakes,
			FoundAt:      now,
		})
	}
	return arbs
}
