package domain_test

import (
	"testing"

	"github.com/Sorck29/tennis-arb/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func makeBookmaker(key, title string, markets ...domain.Market) domain.Bookmaker {
	return domain.Bookmaker{Key: key, Title: title, Markets: markets}
}

func h2hMarket(outcomes ...domain.Outcome) domain.Market {
	return domain.Market{Key: domain.MarketH2H, Outcomes: outcomes}
}

func TestNormalizeQuotes_TwoOutcomeMarket(t *testing.T) {
	bks := []domain.Bookmaker{
		makeBookmaker("bet365", "Bet365", h2hMarket(
			domain.Outcome{Name: "Alcaraz", Price: fptr(1.85)},
			domain.Outcome{Name: "Sinner", Price: fptr(2.05)},
		)),
	}

	quotes := domain.NormalizeQuotes(bks)
	require.Len(t, quotes, 1)

	q := quotes[0]
	assert.Equal(t, "Bet365", q.Bookmaker)
	// El orden posicional se preserva tal cual lo da la casa
	assert.Equal(t, "Alcaraz", q.Outcome1)
	assert.Equal(t, "Sinner", q.Outcome2)
	require.NotNil(t, q.Price1)
	require.NotNil(t, q.Price2)
	assert.Equal(t, 1.85, *q.Price1)
	assert.Equal(t, 2.05, *q.Price2)
}

func TestNormalizeQuotes_SkipsThreeWayMarkets(t *testing.T) {
	bks := []domain.Bookmaker{
		makeBookmaker("pinnacle", "Pinnacle", h2hMarket(
			domain.Outcome{Name: "Home", Price: fptr(2.5)},
			domain.Outcome{Name: "Draw", Price: fptr(3.2)},
			domain.Outcome{Name: "Away", Price: fptr(2.8)},
		)),
	}

	quotes := domain.NormalizeQuotes(bks)
	assert.Empty(t, quotes, "mercado de 3 resultados debe excluirse en silencio")
}

func TestNormalizeQuotes_SkipsNonH2HMarkets(t *testing.T) {
	bks := []domain.Bookmaker{
		makeBookmaker("bet365", "Bet365",
			domain.Market{Key: "totals", Outcomes: []domain.Outcome{
				{Name: "Over 22.5", Price: fptr(1.9)},
				{Name: "Under 22.5", Price: fptr(1.9)},
			}},
			h2hMarket(
				domain.Outcome{Name: "Alcaraz", Price: fptr(1.85)},
				domain.Outcome{Name: "Sinner", Price: fptr(2.05)},
			),
		),
	}

	quotes := domain.NormalizeQuotes(bks)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Alcaraz", quotes[0].Outcome1)
}

func TestNormalizeQuotes_PreservesAbsentPrices(t *testing.T) {
	bks := []domain.Bookmaker{
		makeBookmaker("unibet", "Unibet", h2hMarket(
			domain.Outcome{Name: "Alcaraz", Price: nil},
			domain.Outcome{Name: "Sinner", Price: fptr(2.05)},
		)),
	}

	quotes := domain.NormalizeQuotes(bks)
	require.Len(t, quotes, 1)
	assert.Nil(t, quotes[0].Price1, "precio ausente se preserva como nil, no se coacciona")
	assert.NotNil(t, quotes[0].Price2)
}

func TestNormalizeQuotes_FallsBackToBookmakerKey(t *testing.T) {
	bks := []domain.Bookmaker{
		makeBookmaker("williamhill", "", h2hMarket(
			domain.Outcome{Name: "A", Price: fptr(2.0)},
			domain.Outcome{Name: "B", Price: fptr(2.0)},
		)),
	}

	quotes := domain.NormalizeQuotes(bks)
	require.Len(t, quotes, 1)
	assert.Equal(t, "williamhill", quotes[0].Bookmaker)
}

func TestNormalizeQuotes_EmptyInput(t *testing.T) {
	assert.Empty(t, domain.NormalizeQuotes(nil))
	assert.Empty(t, domain.NormalizeQuotes([]domain.Bookmaker{}))
}
