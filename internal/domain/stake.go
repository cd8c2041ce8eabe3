package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidStakeInput señala una violación de precondición en SplitStakes:
// precio no finito o no positivo, o bankroll negativo. Es un error del caller
// (debió filtrar con FindOpportunities antes), no una condición del dominio.
var ErrInvalidStakeInput = errors.New("invalid stake input")

// StakeAllocation es el reparto de un bankroll entre los dos lados de una
// oportunidad tal que el pago es idéntico gane quien gane.
// Invariantes: Stake1+Stake2 == bankroll y Stake1*price1 == Stake2*price2
// (ambos módulo redondeo flotante); Profit == bankroll*Edge.
type StakeAllocation struct {
	Stake1 float64
	Stake2 float64
	Edge   float64
	Profit float64
}

// SplitStakes reparte el bankroll entre dos cuotas en proporción inversa al
// precio, igualando el pago de ambos resultados.
//
// Si denom = 1/price1 + 1/price2 >= 1 (el par no es arbitraje) el cálculo
// sigue siendo válido pero Profit <= 0 — se asume que el caller filtró antes
// con FindOpportunities.
func SplitStakes(price1, price2, bankroll float64) (StakeAllocation, error) {
	if !validPrice(price1) || !validPrice(price2) {
		return StakeAllocation{}, fmt.Errorf("domain.SplitStakes: prices %v/%v: %w", price1, price2, ErrInvalidStakeInput)
	}
	if bankroll < 0 || math.IsNaN(bankroll) || math.IsInf(bankroll, 0) {
		return StakeAllocation{}, fmt.Errorf("domain.SplitStakes: bankroll %v: %w", bankroll, ErrInvalidStakeInput)
	}

	inv1 := 1.0 / price1
	inv2 := 1.0 / price2
	denom := inv1 + inv2
	edge := 1.0 - denom

	return StakeAllocation{
		Stake1: bankroll * inv1 / denom,
		Stake2: bankroll * inv2 / denom,
		Edge:   edge,
		Profit: bankroll * edge,
	}, nil
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}
