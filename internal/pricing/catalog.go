package pricing

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Pack is one purchasable top-up SKU.
type Pack struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Tokens      int    `json:"tokens" yaml:"tokens"`             // base tokens granted
	BonusTokens int    `json:"bonusTokens" yaml:"bonus_tokens"`  // extra tokens on every purchase
	FirstTimeX2 bool   `json:"firstTimeX2" yaml:"first_time_x2"` // first purchase doubles Tokens, not BonusTokens
	PriceCents  int    `json:"priceCents" yaml:"price_cents"`
}

// Catalog is a regional store listing.
type Catalog struct {
	Currency string  `json:"currency" yaml:"currency"`
	TaxRate  float64 `json:"taxRate" yaml:"tax_rate"` // applied to the subtotal; 0 for tax-inclusive prices
	Packs    []Pack  `json:"packs" yaml:"packs"`
}

// FirstTimeState maps pack id to whether its first-time bonus is still available.
// A nil state means every FirstTimeX2 pack is still eligible.
type FirstTimeState map[string]bool

func (f FirstTimeState) eligible(id string) bool {
	if f == nil {
		return true
	}
	return f[id]
}

// Purchase is one line of a plan.
type Purchase struct {
	PackID     string `json:"packId"`
	Name       string `json:"name,omitempty"`
	FirstTime  bool   `json:"firstTime,omitempty"`
	Qty        int    `json:"qty"`
	UnitPrice  int    `json:"unitPrice"`
	UnitTokens int    `json:"unitTokens"`
	Subtotal   int    `json:"subtotal"`
}

// Plan is a purchase plan with totals in minor currency units.
type Plan struct {
	Purchases   []Purchase `json:"purchases"`
	SubCents    int        `json:"subCents"`
	TaxCents    int        `json:"taxCents"`
	TotalCents  int        `json:"totalCents"`
	TotalTokens int        `json:"totalTokens"`
	Currency    string     `json:"currency"`
}

// Validate rejects packs that would make planning loop or divide by zero.
func (c Catalog) Validate() error {
	if c.TaxRate < 0 {
		return fmt.Errorf("%w: tax_rate must be >= 0", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.Packs))
	for i, p := range c.Packs {
		switch {
		case p.ID == "":
			return fmt.Errorf("%w: packs[%d].id is required", ErrInvalidCatalog, i)
		case seen[p.ID]:
			return fmt.Errorf("%w: packs[%d].id %q is duplicated", ErrInvalidCatalog, i, p.ID)
		case p.Tokens < 0 || p.BonusTokens < 0 || p.Tokens+p.BonusTokens == 0:
			return fmt.Errorf("%w: packs[%d] must grant tokens", ErrInvalidCatalog, i)
		case p.PriceCents <= 0:
			return fmt.Errorf("%w: packs[%d].price_cents must be >= 1", ErrInvalidCatalog, i)
		}
		seen[p.ID] = true
	}
	return nil
}

// variant is a pack as bought in a plan; a first-time pack contributes two
// variants, the doubled one usable at most once.
type variant struct {
	pack      Pack
	firstTime bool
	tokens    int
}

func (c Catalog) variants(first FirstTimeState) []variant {
	var out []variant
	for _, p := range c.Packs {
		if p.FirstTimeX2 && first.eligible(p.ID) {
			out = append(out, variant{pack: p, firstTime: true, tokens: p.Tokens*2 + p.BonusTokens})
		}
		out = append(out, variant{pack: p, tokens: p.Tokens + p.BonusTokens})
	}
	return out
}

func applyTax(sub int, taxRate float64) (tax, total int) {
	if taxRate <= 0 {
		return 0, sub
	}
	t := int(math.Round(float64(sub) * taxRate))
	return t, sub + t
}

// buildPlan turns per-variant quantities into a plan, in catalog order.
func (c Catalog) buildPlan(vs []variant, qty []int) Plan {
	plan := Plan{Currency: c.Currency, Purchases: []Purchase{}}
	for i, v := range vs {
		if qty[i] == 0 {
			continue
		}
		sub := v.pack.PriceCents * qty[i]
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     v.pack.ID,
			Name:       v.pack.Name,
			FirstTime:  v.firstTime,
			Qty:        qty[i],
			UnitPrice:  v.pack.PriceCents,
			UnitTokens: v.tokens,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalTokens += v.tokens * qty[i]
	}
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, c.TaxRate)
	return plan
}

// ClaimedState marks the listed packs' first-time bonus as used and every other
// FirstTimeX2 pack as still eligible.
func (c Catalog) ClaimedState(claimed []string) FirstTimeState {
	used := make(map[string]bool, len(claimed))
	for _, id := range claimed {
		used[id] = true
	}
	st := make(FirstTimeState, len(c.Packs))
	for _, p := range c.Packs {
		st[p.ID] = p.FirstTimeX2 && !used[p.ID]
	}
	return st
}
