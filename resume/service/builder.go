package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cv-forge/internal/builds"
	"cv-forge/internal/shared/metrics"
	"cv-forge/internal/shared/util"
	"cv-forge/resume/contract"
	"cv-forge/resume/model"
	"cv-forge/resume/render"
	"cv-forge/resume/resolve"
)

// DefaultConcurrency bounds the number of targets built at once.
const DefaultConcurrency = 4

// ErrDuplicateTarget is returned when two targets would write the same artifacts.
var ErrDuplicateTarget = errors.New("duplicate build target")

// ArtifactSaver persists rendered artifacts.
type ArtifactSaver interface {
	SaveWithKey(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
}

// Verifier checks that an artifact contains the expected text.
type Verifier interface {
	Verify(ctx context.Context, art render.Artifact, want ...string) error
}

// Options are per-build settings.
type Options struct {
	JobTitle string
	// BuildID groups the artifacts; a uuid is generated when empty.
	BuildID string
	// DryRun resolves and renders without touching the store or registry.
	DryRun bool
}

// Result describes one produced artifact.
type Result struct {
	BuildID    string
	RecordID   string
	Target     Target
	Format     render.Format
	Name       string
	StorageKey string
	SizeBytes  int64
	Checksum   string
}

// Builder renders targets and stores their artifacts.
type Builder struct {
	Renderers   *render.Registry
	Store       ArtifactSaver
	Registry    builds.Recorder
	Verifier    Verifier
	Logger      zerolog.Logger
	Concurrency int
}

// Build checks doc against the content contract, then builds every target.
// The first failure cancels the remaining work. Results follow target order,
// formats in the order each target lists them.
func (b *Builder) Build(ctx context.Context, doc model.Document, opts Options, targets []Target) ([]Result, error) {
	if b.Renderers == nil {
		return nil, errors.New("build: no renderers configured")
	}
	if !opts.DryRun && b.Store == nil {
		return nil, errors.New("build: no artifact store configured")
	}
	if err := contract.Enforce(doc); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if _, dup := seen[t.String()]; dup {
			return nil, fmt.Errorf("build %s: %w", t, ErrDuplicateTarget)
		}
		seen[t.String()] = struct{}{}
		if !t.Language.Supported() {
			return nil, &model.UnsupportedLanguageError{Lang: string(t.Language)}
		}
		for _, f := range t.Formats {
			if _, err := b.Renderers.Get(f); err != nil {
				return nil, fmt.Errorf("build %s: %w", t, err)
			}
		}
	}

	buildID := opts.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	} else if _, err := uuid.Parse(buildID); err != nil {
		return nil, fmt.Errorf("build: malformed build id %q: %w", buildID, err)
	}
	logger := b.Logger.With().Str("build_id", buildID).Logger()
	started := time.Now()

	limit := b.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	slots := make([][]Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results, err := b.buildTarget(gctx, doc, buildID, opts, target, logger)
			if err != nil {
				return fmt.Errorf("build %s: %w", target, err)
			}
			slots[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("build failed")
		return nil, err
	}

	var out []Result
	for _, results := range slots {
		out = append(out, results...)
	}
	logger.Info().
		Int("targets", len(targets)).
		Int("artifacts", len(out)).
		Dur("elapsed", time.Since(started)).
		Bool("dry_run", opts.DryRun).
		Msg("build finished")
	return out, nil
}

func (b *Builder) buildTarget(ctx context.Context, doc model.Document, buildID string, opts Options, target Target, logger zerolog.Logger) ([]Result, error) {
	resume, err := resolve.Resolve(doc, target.Language, target.Profiles)
	if err != nil {
		return nil, err
	}
	renderOpts := render.Options{
		Language: target.Language,
		JobTitle: opts.JobTitle,
		Profiles: target.Profiles.String(),
	}

	results := make([]Result, 0, len(target.Formats))
	for _, f := range target.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		art, err := b.render(ctx, f, resume, renderOpts)
		if err != nil {
			return nil, err
		}
		if f == render.FormatPDF && b.Verifier != nil {
			if err := b.Verifier.Verify(ctx, art, resume.FullName()); err != nil {
				return nil, fmt.Errorf("verify %s: %w", art.Name, err)
			}
		}

		res := Result{
			BuildID:    buildID,
			Target:     target,
			Format:     f,
			Name:       art.Name,
			StorageKey: StorageKey(buildID, target, art.Name),
			SizeBytes:  int64(len(art.Data)),
			Checksum:   util.Checksum(art.Data),
		}
		if !opts.DryRun {
			if err := b.store(ctx, &res, art); err != nil {
				return nil, err
			}
		}
		logger.Debug().
			Str("key", res.StorageKey).
			Int64("size", res.SizeBytes).
			Msg("artifact ready")
		results = append(results, res)
	}
	return results, nil
}

func (b *Builder) render(ctx context.Context, f render.Format, resume model.Resume, opts render.Options) (render.Artifact, error) {
	metrics.IncRenderStarted()
	start := time.Now()
	art, err := b.Renderers.Render(ctx, f, resume, opts)
	metrics.ObserveRenderSince(start)
	if err != nil {
		metrics.IncRenderFailed()
		return render.Artifact{}, err
	}
	metrics.IncRenderCompleted()
	return art, nil
}

func (b *Builder) store(ctx context.Context, res *Result, art render.Artifact) error {
	size, err := b.Store.SaveWithKey(ctx, res.StorageKey, art.ContentType, bytes.NewReader(art.Data))
	if err != nil {
		return fmt.Errorf("save key=%s: %w", res.StorageKey, err)
	}
	res.SizeBytes = size
	if b.Registry == nil {
		return nil
	}
	record, err := b.Registry.Record(ctx, builds.Build{
		BuildID:     res.BuildID,
		Language:    string(res.Target.Language),
		Profiles:    res.Target.Profiles.String(),
		Format:      string(res.Format),
		StorageKey:  res.StorageKey,
		ContentType: art.ContentType,
		SizeBytes:   size,
		Checksum:    res.Checksum,
	})
	if err != nil {
		return err
	}
	res.RecordID = record.ID
	return nil
}
