package ports

import (
	"context"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

// Storage persiste los resultados de cada ciclo de escaneo.
type Storage interface {
	// SaveScan persiste los arbitrajes encontrados en un ciclo.
	SaveScan(ctx context.Context, arbs []domain.Arb) error

	// GetHistory devuelve los arbitrajes registrados en el rango de tiempo dado.
	GetHistory(ctx context.Context, from, to time.Time) ([]domain.Arb, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
