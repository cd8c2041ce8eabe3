package domain

import (
	"strings"
	"time"
)

// MarketH2H es la clave del mercado head-to-head (moneyline, dos resultados).
// En tenis es el único mercado que analizamos.
const MarketH2H = "h2h"

// Event es un partido con las cuotas de todas las casas que lo cubren.
// Es un snapshot de solo lectura del proveedor de cuotas; el core nunca lo muta.
type Event struct {
	ID           string
	SportKey     string
	SportTitle   string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Bookmakers   []Bookmaker
}

// Bookmaker es la entrada de una casa de apuestas dentro de un evento.
type Bookmaker struct {
	Key     string
	Title   string
	Markets []Market
}

// Market es un mercado de apuesta de una casa (h2h, spreads, totals...).
type Market struct {
	Key      string
	Outcomes []Outcome
}

// Outcome es un resultado con su cuota decimal.
// Price es nil cuando la API no devuelve precio — se preserva como ausente
// para que el engine lo descarte explícitamente, nunca se coacciona a 0.
type Outcome struct {
	Name  string
	Price *float64
}

// Name devuelve el nombre visible de la casa: Title si existe, si no Key.
func (b Bookmaker) Name() string {
	if b.Title != "" {
		return b.Title
	}
	return b.Key
}

// Title devuelve el título del partido: "Jugador1 vs Jugador2".
// Si faltan los nombres usa el título del deporte como fallback.
func (e Event) Title() string {
	home := strings.TrimSpace(e.HomeTeam)
	away := strings.TrimSpace(e.AwayTeam)
	if home != "" && away != "" {
		return home + " vs " + away
	}
	if e.SportTitle != "" {
		return e.SportTitle
	}
	return e.ID
}
