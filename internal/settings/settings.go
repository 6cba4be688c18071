// Package settings holds per-user playback preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/kvstore"
)

const (
	VolumeKey     = "audioVolume"
	DefaultVolume = 50
	MinVolume     = 0
	MaxVolume     = 100
)

// ErrVolumeOutOfRange is returned by SetVolume for values outside 0..100.
var ErrVolumeOutOfRange = fmt.Errorf("volume must be between %d and %d", MinVolume, MaxVolume)

type Settings struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Settings {
	return &Settings{store: store}
}

// Volume returns the stored volume, or DefaultVolume when none has been
// stored or the stored value is unreadable.
func (s *Settings) Volume(ctx context.Context) (int, error) {
	raw, err := s.store.Get(ctx, VolumeKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return DefaultVolume, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading volume: %w", err)
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < MinVolume || v > MaxVolume {
		return DefaultVolume, nil
	}
	return v, nil
}

func (s *Settings) SetVolume(ctx context.Context, volume int) error {
	if volume < MinVolume || volume > MaxVolume {
		return ErrVolumeOutOfRange
	}
	if err := s.store.Set(ctx, VolumeKey, strconv.Itoa(volume)); err != nil {
		return fmt.Errorf("storing volume: %w", err)
	}
	return nil
}
