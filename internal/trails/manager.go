// Package trails keeps the trail catalog in sync with the National Park
// Service "things to do" feed.
package trails

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

// ImportStats describes the most recent import.
type ImportStats struct {
	Source      string    `json:"source"`
	IsLocalFile bool      `json:"isLocalFile"`
	Imported    int       `json:"imported"`
	Existing    int       `json:"existing"`
	Skipped     int       `json:"skipped"`
	Images      int       `json:"images"`
	Total       int       `json:"total"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Manager imports trails into the trail database and, for remote sources,
// refreshes them periodically until Shutdown.
type Manager struct {
	config Config
	db     *traildb.Client
	logger *slog.Logger

	statsMu sync.RWMutex
	stats   ImportStats

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager runs the first import synchronously and starts the refresh loop
// when the source is a URL.
func InitManager(ctx context.Context, config Config, db *traildb.Client, logger *slog.Logger) (*Manager, error) {
	config = config.withDefaults()

	manager := &Manager{
		config:       config,
		db:           db,
		logger:       logging.Component(logger, "trail_import"),
		shutdownChan: make(chan struct{}),
	}

	if err := manager.Reload(ctx); err != nil {
		return nil, err
	}

	if !config.isLocalFile() {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Reload fetches the source once and stores any new trails.
func (manager *Manager) Reload(ctx context.Context) error {
	start := time.Now()

	payload, err := manager.rawTrailData(ctx)
	if err != nil {
		return err
	}

	parsed, skipped, err := parseThingsToDo(payload)
	if err != nil {
		return err
	}

	result, err := manager.db.StoreTrails(ctx, parsed)
	if err != nil {
		return fmt.Errorf("error storing trails: %w", err)
	}

	total, err := manager.db.Queries.CountTrails(ctx)
	if err != nil {
		return fmt.Errorf("error counting trails: %w", err)
	}
	manager.config.Metrics.SetTrailCount(total)

	stats := ImportStats{
		Source:      manager.config.Source,
		IsLocalFile: manager.config.isLocalFile(),
		Imported:    result.Created,
		Existing:    result.Existing,
		Skipped:     skipped,
		Images:      result.Images,
		Total:       total,
		LastUpdated: time.Now(),
	}
	manager.statsMu.Lock()
	manager.stats = stats
	manager.statsMu.Unlock()

	logging.LogOperation(manager.logger, "trails_imported",
		slog.String("source", stats.Source),
		slog.Int("imported", stats.Imported),
		slog.Int("existing", stats.Existing),
		slog.Int("skipped", stats.Skipped),
		slog.Int("total", stats.Total),
		slog.Duration("duration", time.Since(start)))

	return nil
}

func (manager *Manager) rawTrailData(ctx context.Context) ([]byte, error) {
	if manager.config.isLocalFile() {
		b, err := os.ReadFile(manager.config.Source)
		if err != nil {
			return nil, fmt.Errorf("error reading local trail file: %w", err)
		}
		return b, nil
	}

	u, err := url.Parse(manager.config.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid trail source: %w", err)
	}
	q := u.Query()
	q.Set("parkCode", manager.config.ParkCode)
	q.Set("limit", strconv.Itoa(manager.config.Limit))
	if manager.config.APIKey != "" {
		q.Set("api_key", manager.config.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := manager.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading trail data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, manager.logger, "nps_response")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading trail data: unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading trail data: %w", err)
	}
	return b, nil
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			err := manager.Reload(ctx)
			cancel()

			if err != nil {
				logging.LogError(manager.logger, "error refreshing trails", err,
					slog.String("source", manager.config.Source))
			}
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down trail refresh")
			return
		}
	}
}

// Stats returns a copy of the most recent import summary.
func (manager *Manager) Stats() ImportStats {
	manager.statsMu.RLock()
	defer manager.statsMu.RUnlock()
	return manager.stats
}

// Shutdown stops the refresh loop. It is safe to call more than once and does
// not close the trail database.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}
