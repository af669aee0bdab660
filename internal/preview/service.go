package preview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cv-forge/internal/shared/metrics"
	"cv-forge/internal/shared/telemetry"
	"cv-forge/internal/shared/util"
	"cv-forge/resume/contract"
	"cv-forge/resume/model"
	"cv-forge/resume/render"
	"cv-forge/resume/resolve"
)

// Request selects one preview.
type Request struct {
	Language model.Language
	Profiles resolve.ProfileSet
	Format   render.Format
	JobTitle string
}

// Service resolves and renders previews, caching the rendered bytes.
type Service struct {
	Source    Source
	Renderers *render.Registry
	Cache     Cache
	TTL       time.Duration
	JobTitle  string

	mu           sync.Mutex
	lastChecksum string
	lastErr      error
}

// Resolve returns the resolved resume for lang and profiles.
func (s *Service) Resolve(ctx context.Context, lang model.Language, profiles resolve.ProfileSet) (model.Resume, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return model.Resume{}, err
	}
	return resolve.Resolve(snap.Document, lang, profiles)
}

// load reads the source and checks it against the content contract. The
// outcome is remembered for the current source checksum.
func (s *Service) load(ctx context.Context) (Snapshot, error) {
	snap, err := s.Source.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load source: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Checksum == "" || snap.Checksum != s.lastChecksum {
		s.lastErr = contract.Enforce(snap.Document)
		s.lastChecksum = snap.Checksum
	}
	if s.lastErr != nil {
		return Snapshot{}, s.lastErr
	}
	return snap, nil
}

// Render returns the artifact for req, serving it from the cache when possible.
func (s *Service) Render(ctx context.Context, req Request) (Entry, error) {
	if !req.Language.Supported() {
		return Entry{}, &model.UnsupportedLanguageError{Lang: string(req.Language)}
	}
	if _, err := s.Renderers.Get(req.Format); err != nil {
		return Entry{}, err
	}
	if req.JobTitle == "" {
		req.JobTitle = s.JobTitle
	}

	snap, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}
	key := CacheKey(snap.Checksum, req)

	if s.Cache != nil {
		entry, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			telemetry.Warn("preview.cache.get_failed", map[string]any{"error": err.Error()})
		case ok:
			metrics.IncPreviewCache(true)
			return entry, nil
		}
		metrics.IncPreviewCache(false)
	}

	resume, err := resolve.Resolve(snap.Document, req.Language, req.Profiles)
	if err != nil {
		return Entry{}, err
	}

	metrics.IncRenderStarted()
	start := time.Now()
	art, err := s.Renderers.Render(ctx, req.Format, resume, render.Options{
		Language: req.Language,
		JobTitle: req.JobTitle,
		Profiles: req.Profiles.String(),
	})
	metrics.ObserveRenderSince(start)
	if err != nil {
		metrics.IncRenderFailed()
		return Entry{}, err
	}
	metrics.IncRenderCompleted()

	entry := Entry{Name: art.Name, ContentType: art.ContentType, Data: art.Data}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, entry, s.TTL); err != nil && !errors.Is(err, context.Canceled) {
			telemetry.Warn("preview.cache.set_failed", map[string]any{"error": err.Error()})
		}
	}
	return entry, nil
}

// CacheKey identifies a preview by source content and request.
func CacheKey(checksum string, req Request) string {
	return util.HashKey(checksum, string(req.Language), req.Profiles.String(), string(req.Format), req.JobTitle)
}
