package scanner

import "github.com/Sorck29/tennis-arb/internal/domain"

// FilterConfig contiene los parámetros configurables de filtrado.
type FilterConfig struct {
	// MinEdgePct descarta oportunidades con edge menor a este porcentaje.
	MinEdgePct float64
	// RequireDistinctBooks exige casas distintas para cada lado del arbitraje.
	// Recomendado para arbitraje real entre casas.
	RequireDistinctBooks bool
}

// DefaultFilterConfig devuelve la configuración de filtrado por defecto:
// 1% de edge mínimo y casas distintas obligatorias.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinEdgePct:           1.0,
		RequireDistinctBooks: true,
	}
}

// Filter aplica los filtros configurados sobre una lista de oportunidades.
type Filter struct {
	cfg FilterConfig
}

// NewFilter crea un Filter con la configuración dada.
func NewFilter(cfg FilterConfig) *Filter {
	return &Filter{cfg: cfg}
}

// Apply devuelve las oportunidades que pasan el umbral de edge.
// El input viene ordenado por edge desc y el filtro preserva el orden.
func (f *Filter) Apply(opps []domain.Opportunity) []domain.Opportunity {
	result := make([]domain.Opportunity, 0, len(opps))
	for _, opp := range opps {
		if opp.EdgePct() >= f.cfg.MinEdgePct {
			result = append(result, opp)
		}
	}
	return result
}
