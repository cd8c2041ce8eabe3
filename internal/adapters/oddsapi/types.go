package oddsapi

import (
	"encoding/json"
	"io"
)

// DTOs raw de The Odds API v4. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// eventResponse es un evento de GET /sports/{sport}/odds.
type eventResponse struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	SportTitle   string         `json:"sport_title"`
	CommenceTime string         `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []bookmakerRaw `json:"bookmakers"`
}

// bookmakerRaw es la entrada de una casa dentro de un evento.
type bookmakerRaw struct {
	Key        string      `json:"key"`
	Title      string      `json:"title"`
	LastUpdate string      `json:"last_update"`
	Markets    []marketRaw `json:"markets"`
}

// marketRaw es un mercado de una casa (h2h, spreads, totals...).
type marketRaw struct {
	Key      string       `json:"key"`
	Outcomes []outcomeRaw `json:"outcomes"`
}

// outcomeRaw es un resultado con su cuota decimal.
// Price es puntero: la API a veces omite el precio y lo preservamos como
// ausente en vez de coaccionarlo a 0.
type outcomeRaw struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

// decodeJSON decodifica el body JSON en out.
func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}
