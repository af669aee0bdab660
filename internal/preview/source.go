package preview

import (
	"context"

	"cv-forge/internal/shared/util"
	"cv-forge/resume/model"
)

// Snapshot is a decoded source together with the checksum of its bytes.
type Snapshot struct {
	Document model.Document
	Checksum string
}

// Source provides the current resume source.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// FileSource re-reads a YAML file on every load, so edits show up without a restart.
type FileSource struct {
	Path string
}

// Load reads and decodes the file.
func (s FileSource) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	doc, raw, err := model.LoadFile(s.Path)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Document: doc, Checksum: util.Checksum(raw)}, nil
}

// StaticSource serves a fixed document.
type StaticSource struct {
	Snapshot Snapshot
}

// NewStaticSource fingerprints raw and wraps doc.
func NewStaticSource(doc model.Document, raw []byte) StaticSource {
	return StaticSource{Snapshot: Snapshot{Document: doc, Checksum: util.Checksum(raw)}}
}

// Load returns the fixed snapshot.
func (s StaticSource) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot, nil
}
