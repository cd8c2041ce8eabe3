package ports

import (
	"context"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

// OddsProvider obtiene el snapshot de eventos con cuotas h2h del proveedor
// upstream. Autenticación, rate limiting, caché y errores HTTP se resuelven
// dentro del adapter: al core solo le llega una estructura válida o un error
// total de retrieval.
type OddsProvider interface {
	// FetchOdds devuelve los próximos eventos del deporte dado con las cuotas
	// decimales de las casas de las regiones indicadas.
	FetchOdds(ctx context.Context, sportKey string, regions []string) ([]domain.Event, error)
}
