package builds

import "context"

// Repo defines persistence operations for build records.
type Repo interface {
	Create(ctx context.Context, build Build) error
	GetByID(ctx context.Context, id string) (Build, error)
	List(ctx context.Context, limit, offset int) ([]Build, error)
	ListByBuild(ctx context.Context, buildID string) ([]Build, error)
}

// Recorder stores a freshly produced artifact record.
type Recorder interface {
	Record(ctx context.Context, build Build) (Build, error)
}
