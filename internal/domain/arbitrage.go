package domain

import "sort"

// Opportunity es un par de cuotas cruzadas cuyas probabilidades implícitas
// suman menos de 1: beneficio garantizado caiga quien caiga.
// Invariante: 1/Price1 + 1/Price2 < 1 estricto; Edge = 1 - esa suma.
type Opportunity struct {
	BookOutcome1 string // casa que cubre el resultado 1
	BookOutcome2 string // casa que cubre el resultado 2
	Outcome1     string
	Price1       float64
	Outcome2     string
	Price2       float64
	Edge         float64 // tasa de retorno garantizada, en (0, 1)

	// LabelsMatch es false cuando las dos quotes no listan los mismos nombres
	// de resultado en el mismo orden. El emparejamiento es posicional (resultado
	// 1 de A contra resultado 2 de B), así que un mismatch marca la oportunidad
	// como sospechosa — se reporta, no se filtra.
	LabelsMatch bool
}

// FindOpportunities enumera todos los pares ordenados (A, B) de quotes donde
// A cubre el resultado 1 y B el resultado 2, y devuelve los que forman
// arbitraje, ordenados por Edge descendente (orden estable: los empates
// conservan el orden de aparición).
//
// Si requireDistinctBooks es true se salta el par de una quote consigo misma
// — identidad por posición en el slice, no por nombre de casa: dos entradas
// distintas con precios idénticos siguen siendo casas distintas.
//
// La comparación invSum < 1.0 es exacta, sin banda de tolerancia: aflojarla
// cambiaría en silencio qué oportunidades marginales se reportan.
//
// Nunca falla con input malformado: los precios ausentes o no positivos
// excluyen el par, no interrumpen el resto. O(n²) con n = casas que cubren
// un evento (decenas), sin poda.
func FindOpportunities(quotes []Quote, requireDistinctBooks bool) []Opportunity {
	var opps []Opportunity
	for i, a := range quotes {
		for j, b := range quotes {
			if requireDistinctBooks && i == j {
				continue
			}
			if a.Price1 == nil || *a.Price1 <= 0 {
				continue
			}
			if b.Price2 == nil || *b.Price2 <= 0 {
				continue
			}

			invSum := 1.0/(*a.Price1) + 1.0/(*b.Price2)
			if invSum < 1.0 {
				opps = append(opps, Opportunity{
					BookOutcome1: a.Bookmaker,
					BookOutcome2: b.Bookmaker,
					Outcome1:     a.Outcome1,
					Price1:       *a.Price1,
					Outcome2:     b.Outcome2,
					Price2:       *b.Price2,
					Edge:         1.0 - invSum,
					LabelsMatch:  a.Outcome1 == b.Outcome1 && a.Outcome2 == b.Outcome2,
				})
			}
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Edge > opps[j].Edge
	})
	return opps
}

// EdgePct devuelve el edge como porcentaje.
func (o Opportunity) EdgePct() float64 {
	return o.Edge * 100
}
