package domain

import (
	"math"
	"time"
)

// Arb es el resultado final del análisis: una oportunidad con sus stakes
// calculados y el contexto del evento para reporting. Es lo que consumen
// el notifier, el exporter CSV y el storage.
type Arb struct {
	EventID      string
	Match        string
	CommenceTime time.Time

	Opportunity
	Stakes StakeAllocation

	FoundAt time.Time
}

// EdgePctRounded devuelve el edge en porcentaje redondeado a 3 decimales.
// Contrato de presentación: edge% con 3 decimales, importes con 2.
func (a Arb) EdgePctRounded() float64 {
	return math.Round(a.EdgePct()*1000) / 1000
}
