package token

// Token defines how much currency a pull costs.
type Token struct {
	Name       string `json:"name" yaml:"name"`               // e.g. "Oroberyl"
	PerDraw    int    `json:"perDraw" yaml:"per_draw"`        // currency per single pull
	PerTenDraw int    `json:"perTenDraw" yaml:"per_ten_draw"` // optional; 0 means 10 * PerDraw
}

// TokensForDraws returns the currency spent on n pulls, using ten-pull pricing
// for every full batch of ten.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 {
		tens, rem := n/10, n%10
		return tens*t.PerTenDraw + rem*t.PerDraw
	}
	return n * t.PerDraw
}

// Spent prices a session-based banner: each session at ten-pull cost plus
// singles at the single-pull price.
func (t Token) Spent(sessions, singles int) int {
	ten := t.PerTenDraw
	if ten <= 0 {
		ten = 10 * t.PerDraw
	}
	return max(0, sessions)*ten + max(0, singles)*t.PerDraw
}
