// resolve.go
package game

import (
	"slices"

	"github.com/xtding233/gacha-tracker/internal/gacha"
	"github.com/xtding233/gacha-tracker/internal/token"
)

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Resolve validates a merged RawConfig and fills in defaults for every
// unset field, producing the params the analytics run with.
func Resolve(raw RawConfig) (EngineParams, error) {
	if err := ValidateRaw(raw); err != nil {
		return EngineParams{}, err
	}

	th := gacha.DefaultThresholds()
	th.SoftPity = orDefault(raw.Pity.Soft, th.SoftPity)
	th.HardPity = orDefault(raw.Pity.Hard, th.HardPity)
	if err := th.Validate(); err != nil {
		// soft alone can still exceed the default hard
		return EngineParams{}, err
	}

	fc := gacha.DefaultForecastParams()
	fc.Thresholds = th
	fc.BaseProb = orDefault(raw.Pity.BaseProb, fc.BaseProb)
	fc.TargetProb = orDefault(raw.Pity.TargetProb, fc.TargetProb)
	fc.UpProb = orDefault(raw.Pity.UpProb, fc.UpProb)
	if raw.Pity.Easing != "" {
		fc.Easing = gacha.Easing(raw.Pity.Easing)
	}
	if err := fc.Validate(); err != nil {
		return EngineParams{}, err
	}

	sess := gacha.DefaultSessionOptions()
	sth := gacha.DefaultSessionThresholds()
	if s := raw.Session; s != nil {
		sess.Size = orDefault(s.Size, sess.Size)
		sth.RareWindow = orDefault(s.RareWindow, sth.RareWindow)
		sth.UpWindow = orDefault(s.UpWindow, sth.UpWindow)
	}
	if r := raw.Reward; r != nil {
		sess.Schedule.BoxStart = orDefault(r.BoxStart, sess.Schedule.BoxStart)
		sess.Schedule.UpStart = orDefault(r.UpStart, sess.Schedule.UpStart)
		sess.Schedule.Period = orDefault(r.Period, sess.Schedule.Period)
	}

	var tok token.Token
	if t := raw.Tokens; t != nil {
		tok = token.Token{Name: t.Name, PerDraw: orDefault(t.PerDraw, 0), PerTenDraw: orDefault(t.PerTenDraw, 0)}
	}

	p := EngineParams{
		Version:           raw.Version,
		Thresholds:        th,
		Forecast:          fc,
		Session:           sess,
		SessionThresholds: sth,
		Token:             tok,
		Banners:           make(map[string]Banner, len(raw.Banners)),
		Pools:             make(map[string][]string),
	}
	if raw.Shop != nil {
		p.Shop = *raw.Shop
	}
	for _, b := range raw.Banners {
		kind := b.Kind
		if kind == "" {
			kind = KindPull
		}
		p.Banners[b.ID] = Banner{ID: b.ID, Name: b.Name, UpItem: b.UpItem, Kind: kind, Pool: b.Pool}
		if b.Pool != "" {
			p.Pools[b.Pool] = append(p.Pools[b.Pool], b.ID)
		}
	}
	for _, ids := range p.Pools {
		slices.Sort(ids)
	}
	return p, nil
}

// Banner implements gacha.BannerLookup.
func (p EngineParams) Banner(bannerID string) (gacha.BannerConfig, bool) {
	b, ok := p.Banners[bannerID]
	if !ok {
		return gacha.BannerConfig{}, false
	}
	return b.Config(), true
}

// KindOf returns the configured kind, pull for unknown banners.
func (p EngineParams) KindOf(bannerID string) BannerKind {
	if b, ok := p.Banners[bannerID]; ok {
		return b.Kind
	}
	return KindPull
}

// Defaults returns params with no config files at all.
func Defaults() EngineParams {
	p, _ := Resolve(RawConfig{})
	return p
}
