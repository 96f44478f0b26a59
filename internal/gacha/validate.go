package gacha

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidThresholds = errors.New("invalid pity thresholds")

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// Validate checks 0 <= soft <= hard and hard >= 1.
func (t Thresholds) Validate() error {
	if t.HardPity < 1 {
		return fmt.Errorf("%w: hard pity must be >= 1, got %d", ErrInvalidThresholds, t.HardPity)
	}
	if t.SoftPity < 0 || t.SoftPity > t.HardPity {
		return fmt.Errorf("%w: soft pity must satisfy 0 <= soft <= hard, got %d", ErrInvalidThresholds, t.SoftPity)
	}
	return nil
}

// Validate checks both windows are positive.
func (t SessionThresholds) Validate() error {
	if t.RareWindow < 1 || t.UpWindow < 1 {
		return fmt.Errorf("%w: session windows must be >= 1, got %d/%d", ErrInvalidThresholds, t.RareWindow, t.UpWindow)
	}
	return nil
}
