// Package session wires the in-memory model to the filesystem: it loads
// folders, moves discards, keeps the model in step with files that vanish
// and remembers the layout between runs.
//
// Methods other than Scan and RunMove mutate the model and must be called
// from a single goroutine (the UI loop).
package session

import (
	"context"
	"path/filepath"

	"photocull/internal/collection"
	"photocull/internal/config"
	serr "photocull/internal/errors"
	"photocull/internal/log"
	"photocull/internal/organize"
	"photocull/internal/scan"
	"photocull/internal/selection"
	"photocull/internal/store"
	"photocull/internal/thumbnail"
	"photocull/internal/watch"
	"photocull/pkg/types"
)

// Summary counts the outcome of a move batch.
type Summary struct {
	Moved   int
	DryRun  int // Photos a dry run would have moved
	Skipped int
	Failed  int
	Errors  []error
}

// Session owns one triage run.
type Session struct {
	cfg *config.Config

	photos    *collection.Collection
	selection *selection.Controller
	thumbs    *thumbnail.Cache

	scanner *scan.Scanner
	mover   organize.Mover
	db      *store.DB
	watcher *watch.Watcher
	watch   bool

	folder string
	layout store.Layout
}

// Option configures a Session.
type Option func(*Session)

// WithMover replaces the organize engine.
func WithMover(m organize.Mover) Option {
	return func(s *Session) { s.mover = m }
}

// WithStore persists the layout in db. The session closes it.
func WithStore(db *store.DB) Option {
	return func(s *Session) { s.db = db }
}

// WithoutWatcher disables filesystem notifications.
func WithoutWatcher() Option {
	return func(s *Session) { s.watch = false }
}

// New builds a session from cfg. The layout is read from the store when
// one is given.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	scanner, err := scan.New(scan.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	photos := collection.New()
	s := &Session{
		cfg:       cfg,
		photos:    photos,
		selection: selection.New(photos),
		thumbs:    thumbnail.NewCache(cfg.Thumbnails.CacheEntries),
		scanner:   scanner,
		watch:     true,
		layout:    store.DefaultLayout(),
	}
	s.layout.ThumbWidth = cfg.Thumbnails.GridWidth
	for _, opt := range opts {
		opt(s)
	}
	if s.mover == nil {
		s.mover = organize.NewWithConfig(cfg)
	}

	if s.db != nil {
		layout, err := s.db.LoadWithDefaults(ctx, s.layout)
		if err != nil {
			log.LogWithError(err).Warn("Using default layout")
		} else {
			s.layout = layout
		}
	}
	return s, nil
}

// Photos returns the collection.
func (s *Session) Photos() *collection.Collection { return s.photos }

// Selection returns the selection controller.
func (s *Session) Selection() *selection.Controller { return s.selection }

// Thumbnails returns the thumbnail cache.
func (s *Session) Thumbnails() *thumbnail.Cache { return s.thumbs }

// Config returns the effective configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Folder returns the loaded folder, or "".
func (s *Session) Folder() string { return s.folder }

// Layout returns the current layout.
func (s *Session) Layout() store.Layout { return s.layout }

// SetLayout replaces the layout; it is written on Close.
func (s *Session) SetLayout(l store.Layout) { s.layout = l }

// Scan lists folder without touching the model. Safe to call from any
// goroutine.
func (s *Session) Scan(ctx context.Context, folder string) ([]types.PhotoRecord, error) {
	return s.scanner.Scan(ctx, folder)
}

// Apply replaces the model with records scanned from folder: the
// selection resets, thumbnails are dropped and the watcher follows the
// new folder.
func (s *Session) Apply(folder string, records []types.PhotoRecord) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		abs = filepath.Clean(folder)
	}

	s.photos.Load(records)
	s.selection.Reset()
	s.thumbs.Clear()
	s.folder = abs
	s.layout.LastFolder = abs

	s.restartWatcher()
	log.LogWithFields(log.F("folder", abs), log.F("photos", s.photos.Len())).Info("Folder loaded")
}

// LoadFolder scans folder and applies the result. On error the current
// model is left untouched.
func (s *Session) LoadFolder(ctx context.Context, folder string) error {
	records, err := s.Scan(ctx, folder)
	if err != nil {
		return err
	}
	s.Apply(folder, records)
	return nil
}

func (s *Session) restartWatcher() {
	s.stopWatcher()
	if !s.watch || s.folder == "" {
		return
	}

	w, err := watch.New()
	if err != nil {
		log.LogWithError(err).Warn("Folder watching disabled")
		return
	}
	if err := w.AddDirectory(s.folder); err != nil {
		log.LogWithError(err).Warn("Folder watching disabled")
		w.Stop()
		return
	}
	if err := w.Start(); err != nil {
		log.LogWithError(err).Warn("Folder watching disabled")
		w.Stop()
		return
	}
	s.watcher = w
}

func (s *Session) stopWatcher() {
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
}

// Removals returns the removal channel of the current watcher, or nil when
// nothing is watched. The channel is replaced on every folder load.
func (s *Session) Removals() <-chan watch.Removal {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Removals()
}

// HandleRemoval drops the photo at path, if it is loaded. It reports
// whether the model changed.
func (s *Session) HandleRemoval(path string) bool {
	id, ok := s.photos.IDForPath(path)
	if !ok {
		return false
	}
	s.photos.Remove(id)
	s.thumbs.Invalidate(id)
	s.selection.Reconcile()
	log.LogWithFields(log.F("path", path)).Info("Photo removed outside photocull")
	return true
}

// DiscardPlan returns the records to move and where they go.
func (s *Session) DiscardPlan() ([]types.PhotoRecord, string, error) {
	if s.folder == "" {
		return nil, "", serr.New("no folder loaded")
	}
	return s.photos.RecordsWithStatus(types.Discard), s.mover.DiscardDir(s.folder), nil
}

// DryRun reports whether moves are only simulated.
func (s *Session) DryRun() bool { return s.mover.IsDryRun() }

// RunMove moves records into dest. It does not touch the model and may
// run on a background goroutine.
func (s *Session) RunMove(ctx context.Context, records []types.PhotoRecord, dest string) []types.MoveResult {
	return s.mover.MoveAll(ctx, records, dest)
}

// ApplyMoveResults removes every moved photo from the model, then
// reconciles the selection. Failed and skipped photos stay loaded with
// their status intact.
func (s *Session) ApplyMoveResults(results []types.MoveResult) Summary {
	var sum Summary
	for _, r := range results {
		switch {
		case r.Error != nil:
			sum.Failed++
			sum.Errors = append(sum.Errors, r.Error)
			log.LogWithError(r.Error).Warn("Photo not moved")
		case r.Skipped:
			sum.Skipped++
		case r.DryRun:
			sum.DryRun++
		case r.Moved:
			sum.Moved++
			s.photos.Remove(r.ID)
			s.thumbs.Invalidate(r.ID)
		}
	}
	s.selection.Reconcile()
	return sum
}

// MoveDiscarded moves every Discard photo into the discard folder and
// applies the results.
func (s *Session) MoveDiscarded(ctx context.Context) (Summary, error) {
	records, dest, err := s.DiscardPlan()
	if err != nil {
		return Summary{}, err
	}
	if len(records) == 0 {
		return Summary{}, nil
	}
	return s.ApplyMoveResults(s.RunMove(ctx, records, dest)), nil
}

// TileWidth returns the tile width in cells for pane.
func (s *Session) TileWidth(pane types.Pane) int {
	if pane == types.Grid {
		return s.layout.ThumbWidth
	}
	return s.cfg.Thumbnails.SideWidth
}

// Close stops the watcher and saves the layout.
func (s *Session) Close(ctx context.Context) error {
	s.stopWatcher()
	if s.db == nil {
		return nil
	}
	err := s.db.Save(ctx, s.layout)
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
