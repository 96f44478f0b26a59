package game

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/xtding233/gacha-tracker/internal/gacha"
)

// Store holds the resolved params of one game and swaps them on reload.
type Store struct {
	loader *Loader
	game   string
	logger *slog.Logger

	mu     sync.RWMutex
	params EngineParams
}

// NewStore loads the game's config once; a broken config fails here.
func NewStore(loader *Loader, game string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{loader: loader, game: game, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Params returns the current snapshot.
func (s *Store) Params() EngineParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Banner implements gacha.BannerLookup over the current snapshot.
func (s *Store) Banner(bannerID string) (gacha.BannerConfig, bool) {
	return s.Params().Banner(bannerID)
}

// Reload re-reads the files. On error the previous params stay in place.
func (s *Store) Reload() error {
	s.loader.Invalidate()
	raw, err := s.loader.LoadMerged(s.game)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	p, err := Resolve(raw)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	s.mu.Lock()
	s.params = p
	s.mu.Unlock()

	s.logger.Info("config loaded",
		"game", s.game,
		"version", p.Version,
		"banners", len(p.Banners),
		"pools", len(p.Pools))
	return nil
}

// Watch reloads whenever a YAML file in the games directory changes, until ctx ends.
func (s *Store) Watch(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	dir := s.loader.Paths().GamesDir()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	s.logger.Debug("watching config", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("config reload failed, keeping previous", "file", event.Name, "err", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watcher error", "err", werr)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ext := filepath.Ext(ev.Name); ext != ".yaml" && ext != ".yml" {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
