// Package scan lists the photos of a folder in display order.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"photocull/internal/config"
	serr "photocull/internal/errors"
	log "photocull/internal/log"
	"photocull/internal/metadata"
	"photocull/pkg/types"
)

// Options controls what a Scanner lists and how it orders it.
type Options struct {
	Extensions    string
	Order         string
	Recursive     bool
	IncludeHidden bool
	DiscardDir    string
}

// OptionsFromConfig pulls scanner options out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Extensions:    cfg.Scan.Extensions,
		Order:         cfg.Scan.Order,
		Recursive:     cfg.Scan.Recursive,
		IncludeHidden: cfg.Scan.IncludeHidden,
		DiscardDir:    cfg.Move.DiscardDir,
	}
}

// Scanner walks folders for image files.
type Scanner struct {
	opts  Options
	match glob.Glob
}

// New compiles the extension glob. Matching is case-insensitive.
func New(opts Options) (*Scanner, error) {
	if opts.Extensions == "" {
		opts.Extensions = config.DefaultExtensions
	}
	if opts.Order == "" {
		opts.Order = config.OrderName
	}
	g, err := glob.Compile(strings.ToLower(opts.Extensions))
	if err != nil {
		return nil, serr.NewConfigError("invalid extension pattern", "scan.extensions", serr.InvalidConfig, err)
	}
	return &Scanner{opts: opts, match: g}, nil
}

// Matches reports whether a file name would be listed.
func (s *Scanner) Matches(name string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
		return false
	}
	return s.match.Match(strings.ToLower(name))
}

type entry struct {
	record  types.PhotoRecord
	modTime time.Time
}

// Scan returns the photos in folder, each with a fresh id and status
// Unclassified, sorted by the configured order.
func (s *Scanner) Scan(ctx context.Context, folder string) ([]types.PhotoRecord, error) {
	logger := log.LogWithFields(log.F("folder", folder), log.F("order", s.opts.Order))

	root, err := filepath.Abs(folder)
	if err != nil {
		return nil, serr.NewFileError("invalid folder path", folder, serr.InvalidPath, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, serr.FromOS("failed to open folder", root, err)
	}
	if !info.IsDir() {
		return nil, serr.NewFileError("not a directory", root, serr.NotADirectory, nil)
	}

	var (
		mu      sync.Mutex
		entries []entry
	)
	discard := filepath.Join(root, s.opts.DiscardDir)

	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			logger.Debugf("walk error at %s: %v", path, walkErr)
			return nil
		}
		path = filepath.Clean(path)
		if path == root {
			return nil
		}

		if d.IsDir() {
			if !s.opts.Recursive || path == discard {
				return fastwalk.SkipDir
			}
			if !s.opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
				return fastwalk.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !s.Matches(d.Name()) {
			return nil
		}

		fi, err := fastwalk.StatDirEntry(path, d)
		if err != nil {
			logger.Debugf("skipping %s: %v", path, err)
			return nil
		}

		taken := fi.ModTime()
		if s.opts.Order == config.OrderTaken {
			if t, _, err := metadata.TakenAt(path); err == nil {
				taken = t
			}
		}

		mu.Lock()
		entries = append(entries, entry{
			record: types.PhotoRecord{
				ID:         types.PhotoID(uuid.NewString()),
				SourcePath: path,
				Status:     types.Unclassified,
				Taken:      taken,
				Size:       fi.Size(),
			},
			modTime: fi.ModTime(),
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, serr.NewFileError("failed to scan folder", root, serr.FileAccessDenied, err)
	}

	s.sort(root, entries)

	records := make([]types.PhotoRecord, len(entries))
	for i, e := range entries {
		records[i] = e.record
	}
	logger.Infof("Scanned %d photos", len(records))
	return records, nil
}

func (s *Scanner) sort(root string, entries []entry) {
	byName := func(a, b entry) int {
		an := strings.ToLower(relName(root, a.record.SourcePath))
		bn := strings.ToLower(relName(root, b.record.SourcePath))
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return strings.Compare(a.record.SourcePath, b.record.SourcePath)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var ta, tb time.Time
		switch s.opts.Order {
		case config.OrderModTime:
			ta, tb = a.modTime, b.modTime
		case config.OrderTaken:
			ta, tb = a.record.Taken, b.record.Taken
		default:
			return byName(a, b) < 0
		}
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return byName(a, b) < 0
	})
}

func relName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
