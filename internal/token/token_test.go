package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokensForDraws(t *testing.T) {
	tok := Token{Name: "Oroberyl", PerDraw: 500, PerTenDraw: 4500}

	assert.Equal(t, 0, tok.TokensForDraws(0))
	assert.Equal(t, 0, tok.TokensForDraws(-3))
	assert.Equal(t, 4500, tok.TokensForDraws(10))
	assert.Equal(t, 4000, tok.TokensForDraws(8))
	assert.Equal(t, 4500*2+500*3, tok.TokensForDraws(23))

	flat := Token{PerDraw: 160}
	assert.Equal(t, 160*23, flat.TokensForDraws(23))
}

func TestSpent(t *testing.T) {
	tok := Token{PerDraw: 500, PerTenDraw: 4500}
	assert.Equal(t, 3*4500+2*500, tok.Spent(3, 2))

	flat := Token{PerDraw: 100}
	assert.Equal(t, 2000, flat.Spent(2, 0))
	assert.Equal(t, 0, flat.Spent(-1, 0))
}
