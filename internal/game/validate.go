package game

import (
	"fmt"
	"strings"

	"github.com/xtding233/gacha-tracker/internal/gacha"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// pity
	if cfg.Pity.Hard != nil && *cfg.Pity.Hard <= 0 {
		errs = append(errs, "pity.hard must be >= 1")
	}
	if cfg.Pity.Soft != nil && *cfg.Pity.Soft < 0 {
		errs = append(errs, "pity.soft must be >= 0")
	}
	if cfg.Pity.Soft != nil && cfg.Pity.Hard != nil && *cfg.Pity.Soft > *cfg.Pity.Hard {
		errs = append(errs, "pity.soft must satisfy soft <= hard")
	}
	probs := []struct {
		name string
		p    *float64
	}{
		{"pity.base_prob", cfg.Pity.BaseProb},
		{"pity.target_prob", cfg.Pity.TargetProb},
		{"pity.up_prob", cfg.Pity.UpProb},
	}
	for _, pr := range probs {
		if pr.p != nil && (*pr.p < 0 || *pr.p > 1) {
			errs = append(errs, pr.name+" must be in [0,1]")
		}
	}
	switch gacha.Easing(cfg.Pity.Easing) {
	case "", gacha.EaseLinear, gacha.EaseOutQuad, gacha.EaseInOutCubic:
	default:
		errs = append(errs, "pity.easing must be one of: linear, easeOutQuad, easeInOutCubic")
	}

	// session
	if s := cfg.Session; s != nil {
		if s.Size != nil && *s.Size < 1 {
			errs = append(errs, "session.size must be >= 1")
		}
		if s.RareWindow != nil && *s.RareWindow < 1 {
			errs = append(errs, "session.rare_window must be >= 1")
		}
		if s.UpWindow != nil && *s.UpWindow < 1 {
			errs = append(errs, "session.up_window must be >= 1")
		}
	}

	// reward
	if r := cfg.Reward; r != nil {
		if r.Period != nil && *r.Period < 0 {
			errs = append(errs, "reward.period must be >= 0 (0 disables the schedule)")
		}
		if r.BoxStart != nil && *r.BoxStart < 1 {
			errs = append(errs, "reward.box_start must be >= 1")
		}
		if r.UpStart != nil && *r.UpStart < 1 {
			errs = append(errs, "reward.up_start must be >= 1")
		}
	}

	// tokens (optional)
	if cfg.Tokens != nil {
		if cfg.Tokens.PerDraw != nil && *cfg.Tokens.PerDraw < 0 {
			errs = append(errs, "tokens.per_draw must be >= 0")
		}
		if cfg.Tokens.PerTenDraw != nil && *cfg.Tokens.PerTenDraw < 0 {
			errs = append(errs, "tokens.per_ten_draw must be >= 0")
		}
	}

	if cfg.Shop != nil {
		if err := cfg.Shop.Validate(); err != nil {
			errs = append(errs, "shop: "+err.Error())
		}
	}

	// banners
	seen := make(map[string]bool, len(cfg.Banners))
	for i, b := range cfg.Banners {
		if b.ID == "" {
			errs = append(errs, fmt.Sprintf("banners[%d].id is required", i))
			continue
		}
		if seen[b.ID] {
			errs = append(errs, fmt.Sprintf("banners[%d].id %q is duplicated", i, b.ID))
		}
		seen[b.ID] = true
		switch b.Kind {
		case "", KindPull, KindSession:
		default:
			errs = append(errs, fmt.Sprintf("banners[%d].kind must be pull or session", i))
		}
		if b.Kind == KindSession && b.Pool != "" {
			errs = append(errs, fmt.Sprintf("banners[%d]: session banners cannot join a shared pool", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
