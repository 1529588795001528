// Package store persists window layout between runs in a small sqlite
// key/value table.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	serr "photocull/internal/errors"
	"photocull/internal/log"
)

// Setting keys.
const (
	keyPreviewPercent = "layout.preview_percent"
	keyThumbWidth     = "layout.thumb_width"
	keyWindowWidth    = "window.width"
	keyWindowHeight   = "window.height"
	keyLastFolder     = "session.last_folder"
)

// Accepted layout ranges. Stored values outside them are ignored.
const (
	MinPreviewPercent = 10
	MaxPreviewPercent = 80
	MinThumbWidth     = 4
	MaxThumbWidth     = 64
)

// Layout is the persisted presentation state.
type Layout struct {
	PreviewPercent int    // Preview panel width as a share of the window
	ThumbWidth     int    // Grid tile width in cells
	WindowWidth    int    // Last terminal size
	WindowHeight   int
	LastFolder     string // Folder to reopen when none is given
}

// DefaultLayout is used for missing or invalid settings.
func DefaultLayout() Layout {
	return Layout{PreviewPercent: 35, ThumbWidth: 16}
}

// DB wraps the sqlite connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open initializes the database connection and schema
func Open(ctx context.Context, dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, serr.NewStoreError("failed to create store directory", "open", serr.StoreOpenFailed, err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, serr.NewStoreError("failed to open store", "open", serr.StoreOpenFailed, err)
	}

	// WAL mode allows simultaneous readers and writers
	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;"} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, serr.NewStoreError("failed to configure store", "open", serr.StoreOpenFailed, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, serr.NewStoreError("failed to create schema", "open", serr.StoreOpenFailed, err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Path returns the database file location.
func (d *DB) Path() string { return d.path }

// Settings returns every stored key/value pair.
func (d *DB) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, serr.NewStoreError("failed to read settings", "load", serr.StoreQueryFailed, err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, serr.NewStoreError("failed to scan setting", "load", serr.StoreQueryFailed, err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, serr.NewStoreError("failed to read settings", "load", serr.StoreQueryFailed, err)
	}
	return settings, nil
}

// SaveSettings upserts the given pairs in one transaction.
func (d *DB) SaveSettings(ctx context.Context, settings map[string]string) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return serr.NewStoreError("failed to begin transaction", "save", serr.StoreQueryFailed, err)
	}
	defer tx.Rollback()

	for key, value := range settings {
		if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
			return serr.NewStoreError("failed to save setting "+key, "save", serr.StoreQueryFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return serr.NewStoreError("failed to commit settings", "save", serr.StoreQueryFailed, err)
	}
	return nil
}

// Load reads the layout. Missing keys take defaults; unparseable values
// are logged and ignored.
func (d *DB) Load(ctx context.Context) (Layout, error) {
	return d.LoadWithDefaults(ctx, DefaultLayout())
}

// LoadWithDefaults is Load with caller supplied defaults.
func (d *DB) LoadWithDefaults(ctx context.Context, layout Layout) (Layout, error) {
	settings, err := d.Settings(ctx)
	if err != nil {
		return layout, err
	}

	readInt := func(key string, lo, hi int, dst *int) {
		raw, ok := settings[key]
		if !ok {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < lo || v > hi {
			log.LogWithFields(log.F("key", key), log.F("value", raw)).Warn("Ignoring invalid layout setting")
			return
		}
		*dst = v
	}
	readInt(keyPreviewPercent, MinPreviewPercent, MaxPreviewPercent, &layout.PreviewPercent)
	readInt(keyThumbWidth, MinThumbWidth, MaxThumbWidth, &layout.ThumbWidth)
	readInt(keyWindowWidth, 0, 10000, &layout.WindowWidth)
	readInt(keyWindowHeight, 0, 10000, &layout.WindowHeight)
	layout.LastFolder = settings[keyLastFolder]

	return layout, nil
}

// Save writes every layout field.
func (d *DB) Save(ctx context.Context, layout Layout) error {
	return d.SaveSettings(ctx, map[string]string{
		keyPreviewPercent: strconv.Itoa(layout.PreviewPercent),
		keyThumbWidth:     strconv.Itoa(layout.ThumbWidth),
		keyWindowWidth:    strconv.Itoa(layout.WindowWidth),
		keyWindowHeight:   strconv.Itoa(layout.WindowHeight),
		keyLastFolder:     layout.LastFolder,
	})
}

// Close releases the connection.
func (d *DB) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
