package ports

import (
	"context"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

// Exporter vuelca los arbitrajes de un ciclo a un destino externo (CSV).
type Exporter interface {
	Export(ctx context.Context, arbs []domain.Arb) error
}
