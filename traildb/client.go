package traildb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
)

// Client owns the SQLite handle and the typed queries over it.
type Client struct {
	config        Config
	logger        *slog.Logger
	DB            *sql.DB
	Queries       *Queries
	importRuntime time.Duration
}

// NewClient opens the database described by config and applies the schema.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	logger = logging.Component(logger, "trail_db")

	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create trail database: %w", err)
	}
	if config.verbose {
		logger.Debug("trail database ready", slog.String("path", config.DBPath))
	}

	return &Client{
		config:  config,
		logger:  logger,
		DB:      db,
		Queries: New(db),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// NewTrail is one normalized trail with its images, ready to store.
type NewTrail struct {
	UpsertTrailParams
	Images []NewTrailImage
}

type NewTrailImage struct {
	URL     string
	Caption string
}

// ImportResult summarizes a StoreTrails call.
type ImportResult struct {
	Created  int
	Existing int
	Images   int
}

// StoreTrails get-or-creates every trail in one transaction. Images are only
// attached to trails created by this call.
func (c *Client) StoreTrails(ctx context.Context, trails []NewTrail) (result ImportResult, err error) {
	start := time.Now()
	defer func() {
		c.importRuntime = time.Since(start)
	}()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "store_trails")

	qtx := c.Queries.WithTx(tx)
	for _, nt := range trails {
		trail, created, err := qtx.UpsertTrail(ctx, nt.UpsertTrailParams)
		if err != nil {
			return ImportResult{}, err
		}
		if !created {
			result.Existing++
			continue
		}
		result.Created++

		for _, img := range nt.Images {
			if img.URL == "" {
				continue
			}
			err := qtx.InsertTrailImage(ctx, InsertTrailImageParams{
				TrailID: trail.ID,
				URL:     img.URL,
				Caption: img.Caption,
			})
			if err != nil {
				return ImportResult{}, fmt.Errorf("inserting image for %q: %w", trail.Name, err)
			}
			result.Images++
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("error committing transaction: %w", err)
	}
	return result, nil
}

// ImportRuntime reports how long the last StoreTrails call took.
func (c *Client) ImportRuntime() time.Duration {
	return c.importRuntime
}
