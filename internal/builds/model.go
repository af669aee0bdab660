package builds

import "time"

// Build is one stored artifact of a build run. Artifacts that were produced
// together share a BuildID.
type Build struct {
	ID          string
	BuildID     string
	Language    string
	Profiles    string
	Format      string
	StorageKey  string
	ContentType string
	SizeBytes   int64
	Checksum    string
	CreatedAt   time.Time
}
