package types

// MoveResult holds the outcome of relocating a single photo
type MoveResult struct {
	ID              PhotoID `json:"id"`
	SourcePath      string  `json:"source_path"`
	DestinationPath string  `json:"destination_path"`
	Moved           bool    `json:"moved"`
	Skipped         bool    `json:"skipped,omitempty"`
	DryRun          bool    `json:"dry_run,omitempty"` // Would have moved; nothing touched
	Error           error   `json:"-"`
}
