package domain

import "time"

// MergeStats holds statistics about a merge operation.
type MergeStats struct {
	Existing   int
	Candidates int
	Added      int
	Skipped    int
	Archived   int
	Published  int
	Errors     int
	Duration   time.Duration
}

// SyncStats holds statistics about a remote sync operation.
type SyncStats struct {
	Posts    int
	Bytes    int
	Duration time.Duration
}

// CatalogState tracks archive bookkeeping for the catalog.
type CatalogState struct {
	ID           int64     `db:"id"`
	LastMergedAt time.Time `db:"last_merged_at"`
	TotalAdded   int64     `db:"total_added"`
}
