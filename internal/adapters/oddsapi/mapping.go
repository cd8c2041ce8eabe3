package oddsapi

import (
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

// mapEvents convierte los DTOs de la API a domain.Event.
func mapEvents(raw []eventResponse) []domain.Event {
	events := make([]domain.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, mapEvent(r))
	}
	return events
}

// mapEvent convierte un eventResponse a domain.Event.
func mapEvent(r eventResponse) domain.Event {
	ev := domain.Event{
		ID:           r.ID,
		SportKey:     r.SportKey,
		SportTitle:   r.SportTitle,
		HomeTeam:     r.HomeTeam,
		AwayTeam:     r.AwayTeam,
		CommenceTime: parseCommence(r.CommenceTime),
	}

	ev.Bookmakers = make([]domain.Bookmaker, 0, len(r.Bookmakers))
	for _, bk := range r.Bookmakers {
		ev.Bookmakers = append(ev.Bookmakers, mapBookmaker(bk))
	}
	return ev
}

// mapBookmaker convierte una entrada de casa con todos sus mercados.
// Los pointers de precio se pasan tal cual: ausente sigue siendo ausente.
func mapBookmaker(bk bookmakerRaw) domain.Bookmaker {
	out := domain.Bookmaker{Key: bk.Key, Title: bk.Title}
	out.Markets = make([]domain.Market, 0, len(bk.Markets))
	for _, m := range bk.Markets {
		market := domain.Market{Key: m.Key}
		market.Outcomes = make([]domain.Outcome, 0, len(m.Outcomes))
		for _, o := range m.Outcomes {
			market.Outcomes = append(market.Outcomes, domain.Outcome{
				Name:  o.Name,
				Price: o.Price,
			})
		}
		out.Markets = append(out.Markets, market)
	}
	return out
}

// parseCommence parsea el commence_time ISO de la API.
// Intenta los formatos más comunes; si ninguno encaja devuelve zero time.
func parseCommence(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
