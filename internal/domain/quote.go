package domain

// Quote es la cuota de dos resultados de UNA casa para un evento.
// Se crea fresca en cada pasada de análisis y nunca se muta.
type Quote struct {
	Bookmaker string
	Outcome1  string
	Price1    *float64
	Outcome2  string
	Price2    *float64
}

// NormalizeQuotes aplana las entradas de bookmakers de un evento en una lista
// de Quotes de dos resultados.
//
// Solo considera mercados h2h con exactamente 2 outcomes; el resto (three-way,
// spreads, totals) se excluye en silencio — está fuera del dominio de arbitraje
// a dos resultados, no es un error. El orden de los outcomes se preserva tal
// cual lo da la casa: posición 0 → Outcome1, posición 1 → Outcome2.
//
// Transformación pura: sin efectos secundarios, determinista.
func NormalizeQuotes(bookmakers []Bookmaker) []Quote {
	var quotes []Quote
	for _, bk := range bookmakers {
		name := bk.Name()
		for _, m := range bk.Markets {
			if m.Key != MarketH2H {
				continue
			}
			if len(m.Outcomes) != 2 {
				continue
			}
			o1, o2 := m.Outcomes[0], m.Outcomes[1]
			quotes = append(quotes, Quote{
				Bookmaker: name,
				Outcome1:  o1.Name,
				Price1:    o1.Price,
				Outcome2:  o2.Name,
				Price2:    o2.Price,
			})
		}
	}
	return quotes
}
