package organize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"photocull/internal/config"
	serr "photocull/internal/errors"
	"photocull/internal/log"
	"photocull/pkg/types"
)

// maxRenameAttempts bounds the name_(n).ext search.
const maxRenameAttempts = 1000

// Engine relocates photo files on disk.
type Engine struct {
	dryRun     bool
	collision  string
	workers    int
	discardDir string
	mu         sync.Mutex // Serializes collision checks with the rename that follows
}

// New creates an engine with default settings.
func New() *Engine {
	return NewWithConfig(config.New())
}

// NewWithConfig creates an engine from the move section of cfg.
func NewWithConfig(cfg *config.Config) *Engine {
	e := &Engine{}
	e.SetConfig(cfg)
	return e
}

// SetConfig applies the move section of cfg.
func (e *Engine) SetConfig(cfg *config.Config) {
	e.dryRun = cfg.Move.DryRun
	e.collision = cfg.Move.Collision
	e.workers = cfg.Move.Workers
	e.discardDir = cfg.Move.DiscardDir
	if e.workers < 1 {
		e.workers = 1
	}
}

// SetDryRun sets whether operations should be performed or just simulated
func (e *Engine) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// IsDryRun returns whether the engine is in dry run mode
func (e *Engine) IsDryRun() bool {
	return e.dryRun
}

// DiscardDir returns the folder discards from folder are moved into.
func (e *Engine) DiscardDir(folder string) string {
	return filepath.Join(folder, e.discardDir)
}

// MoveFile moves src to dest, resolving collisions with the configured
// strategy. It returns the path the file ended up at, or "" when the move
// was skipped. In dry run mode nothing is touched and the would-be
// destination is returned.
func (e *Engine) MoveFile(src, dest string) (string, error) {
	cleanSrc := filepath.Clean(src)
	cleanDest := filepath.Clean(dest)

	if cleanSrc == cleanDest {
		log.Debugf("Source and destination are the same, skipping: %s", src)
		return "", nil
	}

	srcInfo, err := os.Stat(cleanSrc)
	if err != nil {
		return "", serr.NewMoveError("source file error", cleanSrc, cleanDest, serr.MoveFailed, err)
	}
	if srcInfo.IsDir() {
		return "", serr.NewMoveError("cannot move directory as file", cleanSrc, cleanDest, serr.MoveFailed, nil)
	}

	if e.dryRun {
		log.Infof("Would move %s -> %s", cleanSrc, cleanDest)
		return cleanDest, nil
	}

	if err := os.MkdirAll(filepath.Dir(cleanDest), 0755); err != nil {
		return "", serr.NewMoveError("failed to create destination directory", cleanSrc, cleanDest, serr.MoveFailed, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	finalDest, err := e.handleCollision(cleanSrc, cleanDest)
	if err != nil {
		return "", err
	}
	if finalDest == "" {
		return "", nil
	}

	log.Debugf("Moving %s to %s", cleanSrc, finalDest)
	if err := os.Rename(cleanSrc, finalDest); err != nil {
		return "", serr.NewMoveError("failed to move file", cleanSrc, finalDest, serr.MoveFailed, err)
	}

	log.Infof("Moved %s -> %s", cleanSrc, finalDest)
	return finalDest, nil
}

// handleCollision implements collision resolution strategies.
// It returns the final destination path and an error if any.
// If the file should be skipped, it returns an empty string and nil error.
func (e *Engine) handleCollision(src, dest string) (string, error) {
	_, err := os.Stat(dest)
	if os.IsNotExist(err) {
		return dest, nil
	}
	if err != nil {
		return "", serr.NewMoveError("error checking destination", src, dest, serr.MoveFailed, err)
	}

	log.Warnf("Destination file %s already exists. Handling collision with strategy: %s", dest, e.collision)

	switch e.collision {
	case config.CollisionSkip:
		log.Infof("Skipping move for %s due to collision (strategy: skip)", src)
		return "", nil

	case config.CollisionOverwrite:
		log.Warnf("Overwriting %s (strategy: overwrite)", dest)
		return dest, nil

	case config.CollisionRename, "":
		return e.findUniqueDestName(src, dest)

	default:
		return "", serr.NewMoveError(fmt.Sprintf("unknown collision strategy %q", e.collision), src, dest, serr.MoveCollision, nil)
	}
}

// findUniqueDestName finds a unique filename by adding counter to the basename
func (e *Engine) findUniqueDestName(src, originalPath string) (string, error) {
	ext := filepath.Ext(originalPath)
	base := strings.TrimSuffix(originalPath, ext)

	for counter := 1; counter <= maxRenameAttempts; counter++ {
		newName := fmt.Sprintf("%s_(%d)%s", base, counter, ext)
		if _, err := os.Stat(newName); os.IsNotExist(err) {
			log.Infof("Renaming destination to %s due to collision (strategy: rename)", newName)
			return newName, nil
		}
	}

	return "", serr.NewMoveError("failed to find unique name", src, originalPath, serr.MoveCollision, nil)
}

// MoveAll moves every record into destDir concurrently. Each record is
// independent: a failure is recorded in its result and the rest carry
// on. Results come back in input order. A cancelled ctx marks the records
// not yet started as failed.
func (e *Engine) MoveAll(ctx context.Context, records []types.PhotoRecord, destDir string) []types.MoveResult {
	results := make([]types.MoveResult, len(records))
	logger := log.LogWithFields(log.F("destination", destDir), log.F("count", len(records)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, record := range records {
		results[i] = types.MoveResult{
			ID:              record.ID,
			SourcePath:      record.SourcePath,
			DestinationPath: filepath.Join(destDir, filepath.Base(record.SourcePath)),
		}
		g.Go(func() error {
			res := &results[i]
			if err := ctx.Err(); err != nil {
				res.Error = err
				return nil
			}
			final, err := e.MoveFile(res.SourcePath, res.DestinationPath)
			switch {
			case err != nil:
				res.Error = err
			case final == "":
				res.Skipped = true
			default:
				res.DestinationPath = final
				res.Moved = !e.dryRun
				res.DryRun = e.dryRun
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}
	logger.Infof("Move batch finished with %d failures", failed)
	return results
}
