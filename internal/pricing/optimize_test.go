package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		Currency: "USD",
		Packs: []Pack{
			{ID: "small", Name: "60 Pack", Tokens: 60, FirstTimeX2: true, PriceCents: 100},
			{ID: "big", Name: "300 Pack", Tokens: 300, BonusTokens: 30, PriceCents: 500},
		},
	}
}

func TestCheapestFor(t *testing.T) {
	cat := testCatalog()

	t.Run("first-time bonus used once", func(t *testing.T) {
		plan, err := CheapestFor(cat, 450, nil)
		require.NoError(t, err)

		assert.Equal(t, 600, plan.TotalCents)
		assert.Equal(t, 450, plan.TotalTokens)
		require.Len(t, plan.Purchases, 2)
		assert.Equal(t, Purchase{PackID: "small", Name: "60 Pack", FirstTime: true, Qty: 1, UnitPrice: 100, UnitTokens: 120, Subtotal: 100}, plan.Purchases[0])
		assert.Equal(t, "big", plan.Purchases[1].PackID)
		assert.Equal(t, 1, plan.Purchases[1].Qty)
	})

	t.Run("bonus already claimed", func(t *testing.T) {
		plan, err := CheapestFor(cat, 450, FirstTimeState{})
		require.NoError(t, err)

		assert.Equal(t, 700, plan.TotalCents)
		assert.Equal(t, 450, plan.TotalTokens)
		require.Len(t, plan.Purchases, 2)
		assert.Equal(t, 2, plan.Purchases[0].Qty)
		assert.False(t, plan.Purchases[0].FirstTime)
	})

	t.Run("overshoot allowed", func(t *testing.T) {
		plan, err := CheapestFor(cat, 500, FirstTimeState{})
		require.NoError(t, err)

		assert.Equal(t, 800, plan.SubCents)
		assert.Equal(t, 510, plan.TotalTokens)
	})

	t.Run("tax", func(t *testing.T) {
		taxed := testCatalog()
		taxed.TaxRate = 0.13
		plan, err := CheapestFor(taxed, 450, nil)
		require.NoError(t, err)

		assert.Equal(t, 600, plan.SubCents)
		assert.Equal(t, 78, plan.TaxCents)
		assert.Equal(t, 678, plan.TotalCents)
	})

	t.Run("nothing to buy", func(t *testing.T) {
		plan, err := CheapestFor(cat, 0, nil)
		require.NoError(t, err)
		assert.Empty(t, plan.Purchases)
		assert.Zero(t, plan.TotalCents)
	})

	t.Run("empty shop", func(t *testing.T) {
		_, err := CheapestFor(Catalog{}, 10, nil)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestMostTokensFor(t *testing.T) {
	plan, err := MostTokensFor(testCatalog(), 700, FirstTimeState{})
	require.NoError(t, err)
	assert.Equal(t, 450, plan.TotalTokens)
	assert.LessOrEqual(t, plan.TotalCents, 700)

	taxed := testCatalog()
	taxed.TaxRate = 0.13
	plan, err = MostTokensFor(taxed, 700, FirstTimeState{})
	require.NoError(t, err)
	assert.Equal(t, 390, plan.TotalTokens)
	assert.Equal(t, 678, plan.TotalCents)

	plan, err = MostTokensFor(testCatalog(), 50, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Purchases)

	_, err = MostTokensFor(testCatalog(), MaxBudgetCents+1, nil)
	assert.ErrorIs(t, err, ErrBudgetTooLarge)
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name string
		cat  Catalog
	}{
		{"missing id", Catalog{Packs: []Pack{{Tokens: 1, PriceCents: 1}}}},
		{"duplicate id", Catalog{Packs: []Pack{{ID: "a", Tokens: 1, PriceCents: 1}, {ID: "a", Tokens: 2, PriceCents: 2}}}},
		{"no tokens", Catalog{Packs: []Pack{{ID: "a", PriceCents: 1}}}},
		{"free pack", Catalog{Packs: []Pack{{ID: "a", Tokens: 1}}}},
		{"negative tax", Catalog{TaxRate: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cat.Validate(), ErrInvalidCatalog)
		})
	}
	assert.NoError(t, testCatalog().Validate())
}

func TestClaimedState(t *testing.T) {
	st := testCatalog().ClaimedState([]string{"small"})
	assert.False(t, st.eligible("small"))
	assert.False(t, st.eligible("big"))

	st = testCatalog().ClaimedState(nil)
	assert.True(t, st.eligible("small"))
}
