package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cv-forge/resume/model"
)

// DefaultPDFCommand is the LaTeX engine used when none is configured.
const DefaultPDFCommand = "pdflatex"

// ErrPDFCompile wraps failures of the external LaTeX engine.
var ErrPDFCompile = errors.New("pdf compile failed")

// PDFCompiler turns LaTeX source into a PDF document.
type PDFCompiler interface {
	Compile(ctx context.Context, tex []byte) ([]byte, error)
}

// ExecCompiler runs a LaTeX engine in a scratch directory.
type ExecCompiler struct {
	// Command is split on whitespace; the first word is the program.
	Command string
	// TempDir is the parent of scratch directories; empty means os.TempDir.
	TempDir string
}

// Compile writes tex to cv.tex, runs the engine and returns cv.pdf.
func (c ExecCompiler) Compile(ctx context.Context, tex []byte) ([]byte, error) {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		fields = []string{DefaultPDFCommand}
	}

	dir, err := os.MkdirTemp(c.TempDir, "cv-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "cv.tex"), tex, 0o600); err != nil {
		return nil, err
	}

	args := append(fields[1:], "-interaction=nonstopmode", "-halt-on-error", "cv.tex")
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Dir = dir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v\n%s", ErrPDFCompile, fields[0], err, tail(output.String(), 20))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "cv.pdf"))
	if err != nil {
		return nil, fmt.Errorf("%w: no output: %v", ErrPDFCompile, err)
	}
	return pdf, nil
}

// PDFRenderer renders LaTeX and compiles it.
type PDFRenderer struct {
	Compiler PDFCompiler
}

func (r PDFRenderer) Render(ctx context.Context, resume model.Resume, opts Options) (Artifact, error) {
	if r.Compiler == nil {
		return Artifact{}, fmt.Errorf("%w: no compiler configured", ErrPDFCompile)
	}
	tex, err := renderLaTeX(resume, opts)
	if err != nil {
		return Artifact{}, err
	}
	pdf, err := r.Compiler.Compile(ctx, tex)
	if err != nil {
		return Artifact{}, err
	}
	return newArtifact(resume, opts, FormatPDF, pdf), nil
}

func tail(text string, count int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > count {
		lines = lines[len(lines)-count:]
	}
	return strings.Join(lines, "\n")
}
