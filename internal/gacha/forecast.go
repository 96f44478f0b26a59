package gacha

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Easing specifies how the rare chance ramps up between soft and hard pity.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseOutQuad    Easing = "easeOutQuad"
	EaseInOutCubic Easing = "easeInOutCubic"
)

var ErrForecastParams = errors.New("invalid forecast params")

// ForecastParams is the probability model used to project the next rare.
// Example: Soft=65, Hard=80, Target=0.5 → from pull #66 to #79 the chance ramps to 0.5,
// pull #80 always hits.
type ForecastParams struct {
	BaseProb   float64    `json:"baseProb"`   // chance per pull before soft pity
	TargetProb float64    `json:"targetProb"` // chance on the last pull before hard pity
	UpProb     float64    `json:"upProb"`     // chance a rare is the up item
	Easing     Easing     `json:"easing"`
	Thresholds Thresholds `json:"thresholds"`
}

func DefaultForecastParams() ForecastParams {
	return ForecastParams{
		BaseProb:   0.008,
		TargetProb: 0.5,
		UpProb:     0.5,
		Easing:     EaseLinear,
		Thresholds: DefaultThresholds(),
	}
}

// Validate checks probabilities and thresholds.
func (p ForecastParams) Validate() error {
	if err := p.Thresholds.Validate(); err != nil {
		return err
	}
	for i, v := range []float64{p.BaseProb, p.TargetProb, p.UpProb} {
		if err := validateProb(v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrForecastParams, [...]string{"base_prob", "target_prob", "up_prob"}[i], err)
		}
	}
	if p.TargetProb < p.BaseProb {
		return fmt.Errorf("%w: target_prob must be >= base_prob", ErrForecastParams)
	}
	switch p.Easing {
	case "", EaseLinear, EaseOutQuad, EaseInOutCubic:
	default:
		return fmt.Errorf("%w: unknown easing %q", ErrForecastParams, p.Easing)
	}
	return nil
}

// probAt is the chance of a rare on the next pull, given count pulls since the last one.
func (p ForecastParams) probAt(count int) float64 {
	hard, soft := p.Thresholds.HardPity, p.Thresholds.SoftPity
	if count+1 >= hard {
		return 1
	}
	if count < soft {
		return p.BaseProb
	}
	// target is reached on the last pull before hard pity (count == hard-2)
	length := float64(hard - 2 - soft)
	if length <= 0 {
		return p.BaseProb
	}
	t := math.Min(1, math.Max(0, float64(count-soft)/length))
	switch p.Easing {
	case EaseOutQuad:
		t = 1 - (1-t)*(1-t)
	case EaseInOutCubic:
		if t < 0.5 {
			t = 4 * t * t * t
		} else {
			t = 1 - (-2*t+2)*(-2*t+2)*(-2*t+2)/2
		}
	}
	// stay below 1 so only hard pity guarantees
	return math.Min(p.BaseProb+(p.TargetProb-p.BaseProb)*t, 0.999999999999)
}

// Stats summarizes integer samples.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples for callers that want histograms
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return float64(cp[n-1])
		}
		f := pos - float64(i)
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Count:   n,
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// ForecastResult holds the simulated pulls until the next rare and next up rare.
type ForecastResult struct {
	Trials   int   `json:"trials"`
	ToRare   Stats `json:"toRare"`
	ToUpRare Stats `json:"toUpRare"`
}

// Forecast runs Monte Carlo trials starting from the banner's current status.
// An off-banner last rare makes the next rare a guaranteed up.
func Forecast(st PityStatus, p ForecastParams, trials int, rng RandomSource) (ForecastResult, error) {
	if err := p.Validate(); err != nil {
		return ForecastResult{}, err
	}
	if trials <= 0 {
		return ForecastResult{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	start := min(max(st.PullsSinceLastRare, 0), p.Thresholds.HardPity-1)
	guaranteed := st.LastRareWasUp != nil && !*st.LastRareWasUp

	toRare := make([]int, trials)
	toUp := make([]int, trials)
	for i := range trials {
		r, u, err := simulateOne(p, start, guaranteed, rng)
		if err != nil {
			return ForecastResult{}, err
		}
		toRare[i], toUp[i] = r, u
	}
	return ForecastResult{Trials: trials, ToRare: calcStats(toRare), ToUpRare: calcStats(toUp)}, nil
}

// simulateOne pulls until an up rare lands and reports when the first rare
// and the first up rare arrived.
func simulateOne(p ForecastParams, count int, guaranteed bool, rng RandomSource) (int, int, error) {
	first := 0
	for pulls := 1; ; pulls++ {
		hit, err := bernoulli(p.probAt(count), rng)
		if err != nil {
			return 0, 0, err
		}
		if !hit {
			count++
			continue
		}
		count = 0
		if first == 0 {
			first = pulls
		}
		up := guaranteed
		if !up {
			if up, err = bernoulli(p.UpProb, rng); err != nil {
				return 0, 0, err
			}
		}
		if up {
			return first, pulls, nil
		}
		guaranteed = true
	}
}
