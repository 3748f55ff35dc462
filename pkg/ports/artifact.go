package ports

import (
	"context"
	"io"
	"time"
)

// Artifact describes a rendered deck persisted in the output directory.
type Artifact struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// ArtifactStore persists rendered decks under unique, timestamped names.
type ArtifactStore interface {
	// Save writes src under a fresh name with the given extension ("pptx", "pdf").
	Save(ctx context.Context, ext string, src io.Reader) (Artifact, error)

	// Open returns a reader for a previously saved artifact.
	// Unknown or malformed names never reach the filesystem.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, Artifact, error)

	// List returns the stored artifacts, newest first.
	List(ctx context.Context) ([]Artifact, error)
}
