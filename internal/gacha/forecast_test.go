package gacha

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBernoulliBounds(t *testing.T) {
	got, err := bernoulli(0, NewSeededRNG(1))
	require.NoError(t, err)
	assert.False(t, got)

	got, err = bernoulli(1, NewSeededRNG(1))
	require.NoError(t, err)
	assert.True(t, got)

	_, err = bernoulli(-0.1, nil)
	assert.ErrorIs(t, err, ErrInvalidProb)
	_, err = bernoulli(math.NaN(), nil)
	assert.ErrorIs(t, err, ErrInvalidProb)
}

func TestProbAtRamp(t *testing.T) {
	p := DefaultForecastParams()

	assert.Equal(t, p.BaseProb, p.probAt(0))
	assert.Equal(t, p.BaseProb, p.probAt(64))
	assert.Equal(t, p.BaseProb, p.probAt(65)) // ramp starts at t=0
	assert.InDelta(t, p.TargetProb, p.probAt(78), 1e-9)
	assert.Equal(t, 1.0, p.probAt(79))

	mid := p.probAt(71)
	assert.Greater(t, mid, p.BaseProb)
	assert.Less(t, mid, p.TargetProb)

	p.Easing = EaseOutQuad
	assert.Greater(t, p.probAt(71), mid)
}

func TestForecastParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultForecastParams().Validate())

	p := DefaultForecastParams()
	p.UpProb = 1.5
	assert.ErrorIs(t, p.Validate(), ErrForecastParams)

	p = DefaultForecastParams()
	p.Thresholds = Thresholds{SoftPity: 90, HardPity: 80}
	assert.ErrorIs(t, p.Validate(), ErrInvalidThresholds)

	p = DefaultForecastParams()
	p.Easing = "bounce"
	assert.ErrorIs(t, p.Validate(), ErrForecastParams)
}

func TestForecastAtHardPity(t *testing.T) {
	off := false
	st := PityStatus{PullsSinceLastRare: 79, LastRareWasUp: &off}

	res, err := Forecast(st, DefaultForecastParams(), 200, NewSeededRNG(42))

	require.NoError(t, err)
	assert.Equal(t, 200, res.Trials)
	// next pull is certain and guaranteed up
	assert.Equal(t, 1.0, res.ToRare.Mean)
	assert.Equal(t, 1.0, res.ToUpRare.Mean)
}

func TestForecastBounds(t *testing.T) {
	p := DefaultForecastParams()

	res, err := Forecast(PityStatus{}, p, 2000, NewSeededRNG(7))

	require.NoError(t, err)
	assert.LessOrEqual(t, res.ToRare.P99, float64(p.Thresholds.HardPity))
	assert.GreaterOrEqual(t, res.ToUpRare.Mean, res.ToRare.Mean)
	// an off rare forces the next one up, so two cycles at most
	assert.LessOrEqual(t, res.ToUpRare.P99, float64(2*p.Thresholds.HardPity))
}

func TestForecastDeterministicWithSeed(t *testing.T) {
	st := PityStatus{PullsSinceLastRare: 30}
	a, err := Forecast(st, DefaultForecastParams(), 500, NewSeededRNG(9))
	require.NoError(t, err)
	b, err := Forecast(st, DefaultForecastParams(), 500, NewSeededRNG(9))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestForecastZeroTrials(t *testing.T) {
	res, err := Forecast(PityStatus{}, DefaultForecastParams(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, ForecastResult{}, res)
}
