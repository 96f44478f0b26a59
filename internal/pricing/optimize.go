package pricing

import "fmt"

// MaxBudgetCents bounds MostTokensFor; its tables grow linearly with the budget.
const MaxBudgetCents = 1_000_000

var ErrBudgetTooLarge = fmt.Errorf("budget exceeds %d cents", MaxBudgetCents)

// CheapestFor finds the minimum-cost purchase yielding at least targetTokens.
// Regular packs can be bought any number of times; a first-time doubled
// variant at most once.
func CheapestFor(cat Catalog, targetTokens int, first FirstTimeState) (Plan, error) {
	if err := cat.Validate(); err != nil {
		return Plan{}, err
	}
	if targetTokens <= 0 {
		return cat.buildPlan(nil, nil), nil
	}
	if len(cat.Packs) == 0 {
		return Plan{}, fmt.Errorf("%w: no packs to buy %d tokens with", ErrInvalidCatalog, targetTokens)
	}

	vs := cat.variants(first)
	reach := func(t, tok int) int { return max(0, t-tok) }

	// cost[t]: cheapest way to get at least t tokens from regular packs.
	cost := make([]int, targetTokens+1)
	pick := make([]int, targetTokens+1)
	for t := 1; t <= targetTokens; t++ {
		cost[t], pick[t] = -1, -1
		for i, v := range vs {
			if v.firstTime {
				continue
			}
			c := v.pack.PriceCents + cost[reach(t, v.tokens)]
			if cost[t] < 0 || c < cost[t] {
				cost[t], pick[t] = c, i
			}
		}
	}

	// layer each first-time variant in as a 0/1 choice
	var once []int
	for i, v := range vs {
		if v.firstTime {
			once = append(once, i)
		}
	}
	take := make([][]bool, len(once))
	for j, i := range once {
		v := vs[i]
		next := make([]int, targetTokens+1)
		take[j] = make([]bool, targetTokens+1)
		for t := range next {
			next[t] = cost[t]
			if c := v.pack.PriceCents + cost[reach(t, v.tokens)]; c < next[t] {
				next[t], take[j][t] = c, true
			}
		}
		cost = next
	}

	qty := make([]int, len(vs))
	t := targetTokens
	for j := len(once) - 1; j >= 0; j-- {
		if take[j][t] {
			qty[once[j]] = 1
			t = reach(t, vs[once[j]].tokens)
		}
	}
	for t > 0 {
		i := pick[t]
		qty[i]++
		t = reach(t, vs[i].tokens)
	}
	return cat.buildPlan(vs, qty), nil
}

// MostTokensFor finds the purchase granting the most tokens whose total,
// tax included, stays within budgetCents.
func MostTokensFor(cat Catalog, budgetCents int, first FirstTimeState) (Plan, error) {
	if err := cat.Validate(); err != nil {
		return Plan{}, err
	}
	if budgetCents > MaxBudgetCents {
		return Plan{}, ErrBudgetTooLarge
	}
	vs := cat.variants(first)
	pre := budgetCents
	if cat.TaxRate > 0 {
		pre = int(float64(budgetCents) / (1 + cat.TaxRate))
	}
	for ; pre > 0; pre-- {
		plan := mostTokensPreTax(cat, vs, pre)
		if plan.TotalCents <= budgetCents {
			return plan, nil
		}
	}
	return cat.buildPlan(nil, nil), nil
}

func mostTokensPreTax(cat Catalog, vs []variant, budget int) Plan {
	// best[c]: most tokens for a subtotal of at most c using regular packs.
	best := make([]int, budget+1)
	pick := make([]int, budget+1)
	for c := range best {
		pick[c] = -1
		if c > 0 {
			best[c] = best[c-1]
		}
		for i, v := range vs {
			if v.firstTime || v.pack.PriceCents > c {
				continue
			}
			if got := v.tokens + best[c-v.pack.PriceCents]; got > best[c] {
				best[c], pick[c] = got, i
			}
		}
	}

	var once []int
	for i, v := range vs {
		if v.firstTime {
			once = append(once, i)
		}
	}
	take := make([][]bool, len(once))
	for j, i := range once {
		v := vs[i]
		next := make([]int, budget+1)
		take[j] = make([]bool, budget+1)
		for c := range next {
			next[c] = best[c]
			if v.pack.PriceCents <= c {
				if got := v.tokens + best[c-v.pack.PriceCents]; got > next[c] {
					next[c], take[j][c] = got, true
				}
			}
		}
		best = next
	}

	qty := make([]int, len(vs))
	c := budget
	for j := len(once) - 1; j >= 0; j-- {
		if take[j][c] {
			qty[once[j]] = 1
			c -= vs[once[j]].pack.PriceCents
		}
	}
	for c > 0 {
		if i := pick[c]; i >= 0 {
			qty[i]++
			c -= vs[i].pack.PriceCents
			continue
		}
		c--
	}
	return cat.buildPlan(vs, qty)
}
