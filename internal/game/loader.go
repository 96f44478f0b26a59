package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/game files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) GamesDir() string {
	return filepath.Join(p.BaseDir, "games")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.GamesDir(), "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.GamesDir(), game+".yaml")
}

// Loader reads YAML configs and merges default → game.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: game name
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → game. The game file is optional.
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(game string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[game]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	var gameCfg RawConfig
	if game != "" {
		if gameCfg, err = readYAML(l.paths.GamePath(game)); err != nil {
			return RawConfig{}, fmt.Errorf("read game %q: %w", game, err)
		}
	}
	merged := mergeRaw(defCfg, gameCfg)

	l.mu.Lock()
	l.cache[game] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func override[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// mergeRaw layers b over a: every field set in b wins.
// Banners are merged by id, b's entry replacing a's.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	// top-level scalars
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// pity
	override(&out.Pity.Soft, b.Pity.Soft)
	override(&out.Pity.Hard, b.Pity.Hard)
	override(&out.Pity.BaseProb, b.Pity.BaseProb)
	override(&out.Pity.TargetProb, b.Pity.TargetProb)
	override(&out.Pity.UpProb, b.Pity.UpProb)
	if b.Pity.Easing != "" {
		out.Pity.Easing = b.Pity.Easing
	}

	// session
	if b.Session != nil {
		s := SessionCfg{}
		if a.Session != nil {
			s = *a.Session
		}
		override(&s.Size, b.Session.Size)
		override(&s.RareWindow, b.Session.RareWindow)
		override(&s.UpWindow, b.Session.UpWindow)
		out.Session = &s
	}

	// reward
	if b.Reward != nil {
		r := RewardCfg{}
		if a.Reward != nil {
			r = *a.Reward
		}
		override(&r.BoxStart, b.Reward.BoxStart)
		override(&r.UpStart, b.Reward.UpStart)
		override(&r.Period, b.Reward.Period)
		out.Reward = &r
	}

	// tokens
	if b.Tokens != nil {
		t := TokenConfig{}
		if a.Tokens != nil {
			t = *a.Tokens
		}
		if b.Tokens.Name != "" {
			t.Name = b.Tokens.Name
		}
		override(&t.PerDraw, b.Tokens.PerDraw)
		override(&t.PerTenDraw, b.Tokens.PerTenDraw)
		out.Tokens = &t
	}

	if b.Shop != nil {
		shop := *b.Shop
		out.Shop = &shop
	}

	// banners
	if len(b.Banners) > 0 {
		idx := make(map[string]int, len(a.Banners))
		out.Banners = append([]BannerCfg(nil), a.Banners...)
		for i, bn := range out.Banners {
			idx[bn.ID] = i
		}
		for _, bn := range b.Banners {
			if i, ok := idx[bn.ID]; ok {
				out.Banners[i] = bn
				continue
			}
			idx[bn.ID] = len(out.Banners)
			out.Banners = append(out.Banners, bn)
		}
	}

	return out
}
