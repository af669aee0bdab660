package builds

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores build records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Build
	ordered []Build
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Build)}
}

// Create stores the build record.
func (r *MemoryRepo) Create(ctx context.Context, build Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[build.ID]; exists {
		return ErrInvalidInput
	}
	r.byID[build.ID] = build
	r.ordered = append(r.ordered, build)
	return nil
}

// GetByID returns a build record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Build, error) {
	if err := ctx.Err(); err != nil {
		return Build{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	build, ok := r.byID[id]
	if !ok {
		return Build{}, ErrNotFound
	}
	return build, nil
}

// List returns build records newest first, with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Build, len(r.ordered))
	copy(all, r.ordered)
	r.mu.RUnlock()

	if offset >= len(all) {
		return []Build{}, nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// ListByBuild returns the records of one build in creation order.
func (r *MemoryRepo) ListByBuild(ctx context.Context, buildID string) ([]Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Build{}
	for _, build := range r.ordered {
		if build.BuildID == buildID {
			out = append(out, build)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
