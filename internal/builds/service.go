package builds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cv-forge/internal/extract"
	"cv-forge/internal/shared/storage/object"
)

// List bounds.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service contains business logic for build records.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store, Now: time.Now}
}

// Record validates build and stores it, filling ID and CreatedAt when empty.
func (s *Service) Record(ctx context.Context, build Build) (Build, error) {
	if s.Repo == nil {
		return Build{}, errors.New("missing dependencies")
	}
	if err := validate(build); err != nil {
		return Build{}, err
	}
	if build.ID == "" {
		build.ID = uuid.NewString()
	}
	if build.CreatedAt.IsZero() {
		build.CreatedAt = s.now().UTC()
	}
	if err := s.Repo.Create(ctx, build); err != nil {
		return Build{}, fmt.Errorf("record build %s: %w", build.StorageKey, err)
	}
	return build, nil
}

// Get returns a build record by ID.
func (s *Service) Get(ctx context.Context, id string) (Build, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Build{}, fmt.Errorf("%w: malformed id", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns build records ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Build, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.Repo.List(ctx, limit, offset)
}

// ListByBuild returns the artifacts of one build run.
func (s *Service) ListByBuild(ctx context.Context, buildID string) ([]Build, error) {
	if _, err := uuid.Parse(buildID); err != nil {
		return nil, fmt.Errorf("%w: malformed build id", ErrInvalidInput)
	}
	return s.Repo.ListByBuild(ctx, buildID)
}

// Open returns the record and a reader over its stored artifact.
func (s *Service) Open(ctx context.Context, id string) (Build, io.ReadCloser, error) {
	if s.Store == nil {
		return Build{}, nil, errors.New("missing dependencies")
	}
	build, err := s.Get(ctx, id)
	if err != nil {
		return Build{}, nil, err
	}
	reader, err := s.Store.Open(ctx, build.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Build{}, nil, ErrNotFound
		}
		return Build{}, nil, err
	}
	return build, reader, nil
}

// Text extracts the plain text of a stored artifact.
func (s *Service) Text(ctx context.Context, id string) (string, error) {
	if s.Store == nil {
		return "", errors.New("missing dependencies")
	}
	build, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	text, err := extract.ExtractText(ctx, s.Store, build.StorageKey, build.ContentType, FileName(build))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return text, nil
}

// FileName is the last segment of the storage key.
func FileName(build Build) string {
	key := build.StorageKey
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func validate(build Build) error {
	var missing []string
	if _, err := uuid.Parse(build.BuildID); err != nil {
		missing = append(missing, "build_id")
	}
	if build.ID != "" {
		if _, err := uuid.Parse(build.ID); err != nil {
			missing = append(missing, "id")
		}
	}
	for name, value := range map[string]string{
		"language":     build.Language,
		"format":       build.Format,
		"storage_key":  build.StorageKey,
		"content_type": build.ContentType,
		"checksum":     build.Checksum,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if build.SizeBytes < 0 {
		missing = append(missing, "size_bytes")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

var _ Recorder = (*Service)(nil)
