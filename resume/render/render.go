// Package render turns a resolved resume into output artifacts: Markdown,
// HTML, JSON Resume, LaTeX, PDF and DOCX.
package render

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cv-forge/resume/model"
)

// Options carries the per-target values that are not part of the resume itself.
type Options struct {
	Language model.Language
	JobTitle string
	// Profiles is the canonical profile key of the target, informational only.
	Profiles string
}

// Artifact is one rendered file.
type Artifact struct {
	Name        string
	Format      Format
	ContentType string
	Data        []byte
}

// Renderer produces one format.
type Renderer interface {
	Render(ctx context.Context, resume model.Resume, opts Options) (Artifact, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, resume model.Resume, opts Options) (Artifact, error)

func (f RendererFunc) Render(ctx context.Context, resume model.Resume, opts Options) (Artifact, error) {
	return f(ctx, resume, opts)
}

// Registry maps formats to renderers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[Format]Renderer
}

// NewRegistry registers the built-in renderers. compiler may be nil, in which
// case PDF is not available.
func NewRegistry(compiler PDFCompiler) *Registry {
	r := &Registry{renderers: make(map[Format]Renderer)}
	r.Register(FormatMarkdown, MarkdownRenderer{})
	r.Register(FormatHTML, HTMLRenderer{})
	r.Register(FormatJSONResume, JSONResumeRenderer{})
	r.Register(FormatLaTeX, LaTeXRenderer{})
	r.Register(FormatDOCX, DOCXRenderer{})
	if compiler != nil {
		r.Register(FormatPDF, PDFRenderer{Compiler: compiler})
	}
	return r
}

// Register installs or replaces the renderer for f.
func (r *Registry) Register(f Format, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[f] = renderer
}

// Get returns the renderer for f.
func (r *Registry) Get(f Format) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[f]
	if !ok {
		return nil, fmt.Errorf("%w: no renderer for %q", ErrUnknownFormat, f)
	}
	return renderer, nil
}

// Formats lists the registered formats in AllFormats order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.renderers))
	for f := range r.renderers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return formatRank(out[i]) < formatRank(out[j]) })
	return out
}

// Render looks up the renderer for f and runs it.
func (r *Registry) Render(ctx context.Context, f Format, resume model.Resume, opts Options) (Artifact, error) {
	renderer, err := r.Get(f)
	if err != nil {
		return Artifact{}, err
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	artifact, err := renderer.Render(ctx, resume, opts)
	if err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", f, err)
	}
	return artifact, nil
}

func formatRank(f Format) int {
	for i, known := range AllFormats {
		if known == f {
			return i
		}
	}
	return len(AllFormats)
}

func newArtifact(resume model.Resume, opts Options, f Format, data []byte) Artifact {
	return Artifact{
		Name:        FileName(resume, opts, f),
		Format:      f,
		ContentType: f.ContentType(),
		Data:        data,
	}
}
