package ports

import (
	"context"

	"github.com/Sorck29/tennis-arb/internal/domain"
)

// Notifier presenta los arbitrajes encontrados al usuario.
type Notifier interface {
	// Notify muestra los arbitrajes ordenados por edge descendente.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, arbs []domain.Arb) error
}
