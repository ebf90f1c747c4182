package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitesearch.ItemCache = (*ItemCache)(nil)

// ItemCache implements sitesearch.ItemCache using SQLite.
//
// Several sites can share one database. Every row belongs to the site the
// cache was created for, so page paths, pruning and build history of one
// site never affect another.
type ItemCache struct {
	db   *DB
	site string
}

// NewItemCache creates an ItemCache for site, a key identifying the project
// such as the absolute path of its config file.
func NewItemCache(db *DB, site string) *ItemCache {
	return &ItemCache{db: db, site: site}
}

// FindItems retrieves the cached items of the page at path.
func (c *ItemCache) FindItems(ctx context.Context, path, hash string) ([]sitesearch.SearchItem, error) {
	var storedHash, data string
	err := c.db.QueryRowContext(ctx, `
		SELECT hash, items FROM pages WHERE site = ? AND path = ?
	`, c.site, path).Scan(&storedHash, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "items not found")
	}
	if err != nil {
		return nil, err
	}
	if storedHash != hash {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "items out of date")
	}

	var items []sitesearch.SearchItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// SaveItems stores the items of the page at path.
func (c *ItemCache) SaveItems(ctx context.Context, path, hash string, items []sitesearch.SearchItem) error {
	if path == "" {
		return sitesearch.Errorf(sitesearch.EINVALID, "path required")
	}
	if items == nil {
		items = []sitesearch.SearchItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO pages (site, path, hash, items, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(site, path) DO UPDATE SET hash = excluded.hash, items = excluded.items, updated_at = excluded.updated_at
	`, c.site, path, hash, string(data), timestamp(time.Now()))
	return err
}

// RecordBuild stores a build summary with a generated ID and timestamp.
func (c *ItemCache) RecordBuild(ctx context.Context, build *sitesearch.Build) error {
	build.ID = uuid.New().String()
	build.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO builds (id, site, pages, items, failed, cached, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, build.ID, c.site, build.Pages, build.Items, build.Failed, build.Cached, timestamp(build.CreatedAt))
	return err
}

// FindBuilds retrieves the build summaries of the site, most recent first.
func (c *ItemCache) FindBuilds(ctx context.Context, filter sitesearch.BuildFilter) ([]*sitesearch.Build, error) {
	var query strings.Builder
	args := []any{c.site}

	query.WriteString("SELECT id, pages, items, failed, cached, created_at FROM builds WHERE site = ? ORDER BY created_at DESC, rowid DESC")
	appendBuildPage(&query, &args, filter)

	rows, err := c.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	builds := []*sitesearch.Build{}
	for rows.Next() {
		var b sitesearch.Build
		var createdAt string
		if err := rows.Scan(&b.ID, &b.Pages, &b.Items, &b.Failed, &b.Cached, &createdAt); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
			return nil, err
		}
		builds = append(builds, &b)
	}
	return builds, rows.Err()
}

// PrunePages removes the site's cached pages whose path is not in keep and
// returns the number of removed pages.
func (c *ItemCache) PrunePages(ctx context.Context, keep []string) (int, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT path FROM pages WHERE site = ?", c.site)
	if err != nil {
		return 0, err
	}
	var stale []string
	live := make(map[string]bool, len(keep))
	for _, p := range keep {
		live[p] = true
	}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return 0, err
		}
		if !live[p] {
			stale = append(stale, p)
		}
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, p := range stale {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM pages WHERE site = ? AND path = ?", c.site, p); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}
