// types.go
package game

import (
	"github.com/xtding233/gacha-tracker/internal/gacha"
	"github.com/xtding233/gacha-tracker/internal/pricing"
	"github.com/xtding233/gacha-tracker/internal/token"
)

// Raw config loaded from YAML; every scalar is optional so files can be layered.
type RawConfig struct {
	Version string           `yaml:"version"`
	Pity    PityCfg          `yaml:"pity"`
	Session *SessionCfg      `yaml:"session,omitempty"`
	Reward  *RewardCfg       `yaml:"reward,omitempty"`
	Tokens  *TokenConfig     `yaml:"tokens,omitempty"`
	Shop    *pricing.Catalog `yaml:"shop,omitempty"` // replaced wholesale when layered
	Banners []BannerCfg      `yaml:"banners,omitempty"`
	Notes   string           `yaml:"notes,omitempty"`
}

type PityCfg struct {
	Soft       *int     `yaml:"soft"`
	Hard       *int     `yaml:"hard"`
	BaseProb   *float64 `yaml:"base_prob,omitempty"`
	TargetProb *float64 `yaml:"target_prob,omitempty"`
	UpProb     *float64 `yaml:"up_prob,omitempty"`
	Easing     string   `yaml:"easing,omitempty"`
}

type SessionCfg struct {
	Size       *int `yaml:"size"`
	RareWindow *int `yaml:"rare_window"`
	UpWindow   *int `yaml:"up_window"`
}

type RewardCfg struct {
	BoxStart *int `yaml:"box_start"`
	UpStart  *int `yaml:"up_start"`
	Period   *int `yaml:"period"`
}

type TokenConfig struct {
	Name       string `yaml:"name,omitempty"`
	PerDraw    *int   `yaml:"per_draw"`
	PerTenDraw *int   `yaml:"per_ten_draw"`
}

// BannerKind selects pull-based or session-based analytics.
type BannerKind string

const (
	KindPull    BannerKind = "pull"
	KindSession BannerKind = "session"
)

type BannerCfg struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name,omitempty"`
	UpItem string     `yaml:"up_item,omitempty"`
	Kind   BannerKind `yaml:"kind,omitempty"` // default pull
	Pool   string     `yaml:"pool,omitempty"` // shared pity pool, optional
}

// Banner is a resolved banner entry.
type Banner struct {
	ID     string     `json:"id"`
	Name   string     `json:"name,omitempty"`
	UpItem string     `json:"upItem,omitempty"`
	Kind   BannerKind `json:"kind"`
	Pool   string     `json:"pool,omitempty"`
}

// Config returns the engine view of the banner.
func (b Banner) Config() gacha.BannerConfig {
	return gacha.BannerConfig{BannerID: b.ID, UpItemName: b.UpItem}
}

// Normalized engine params used by internal/gacha and internal/stats.
// Treated as immutable once resolved.
type EngineParams struct {
	Version           string
	Thresholds        gacha.Thresholds
	Forecast          gacha.ForecastParams
	Session           gacha.SessionOptions
	SessionThresholds gacha.SessionThresholds
	Token             token.Token
	Shop              pricing.Catalog
	Banners           map[string]Banner   // by banner id
	Pools             map[string][]string // pool name -> sorted banner ids
}
