package organize

import (
	"context"

	"photocull/internal/config"
	"photocull/pkg/types"
)

// Mover defines the file relocation operations the session depends on.
// This allows for dependency injection in tests and other parts of the application
type Mover interface {
	// SetConfig applies the move settings
	SetConfig(cfg *config.Config)

	// SetDryRun sets whether operations should be performed or just simulated
	SetDryRun(dryRun bool)

	// IsDryRun reports whether moves are only simulated
	IsDryRun() bool

	// MoveFile moves one file with collision handling
	MoveFile(src, dest string) (string, error)

	// MoveAll moves records into destDir, one result per record
	MoveAll(ctx context.Context, records []types.PhotoRecord, destDir string) []types.MoveResult

	// DiscardDir returns the discard folder for a loaded folder
	DiscardDir(folder string) string
}

// Ensure Engine implements the Mover interface
var _ Mover = (*Engine)(nil)
