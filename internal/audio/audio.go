// Package audio serves the mindfulness prompts that play at a fixed cadence
// while a user is on the trail.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

var ErrEmptyCatalog = errors.New("audio catalog is empty")

// Intervals are the prompt cadences a client may pick.
var Intervals = map[string]time.Duration{
	"30s": 30 * time.Second,
	"1m":  time.Minute,
	"2m":  2 * time.Minute,
}

// ParseInterval accepts one of the keys of Intervals.
func ParseInterval(s string) (time.Duration, error) {
	d, ok := Intervals[s]
	if !ok {
		return 0, fmt.Errorf("unsupported interval %q (use 30s, 1m or 2m)", s)
	}
	return d, nil
}

// Prompt is one clip to play.
type Prompt struct {
	URL string `json:"url"`
}

// Service picks prompts uniformly at random from its catalog.
type Service struct {
	catalog []string
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService copies catalog. A nil rng seeds one from the clock.
func NewService(catalog []string, rng *rand.Rand, logger *slog.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog: append([]string(nil), catalog...),
		rng:     rng,
		logger:  logger,
	}
}

func (s *Service) Next() (Prompt, error) {
	if len(s.catalog) == 0 {
		return Prompt{}, ErrEmptyCatalog
	}

	s.mu.Lock()
	i := s.rng.Intn(len(s.catalog))
	s.mu.Unlock()

	s.logger.Debug("audio prompt selected", slog.Int("index", i))
	return Prompt{URL: s.catalog[i]}, nil
}

// Len reports the catalog size.
func (s *Service) Len() int {
	return len(s.catalog)
}
