package main

// Render the bundled sample resume in every available format:
//   go run ./cmd/renderdemo --out ./out --lang en --profiles teamlead

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"cv-forge/internal/extract"
	"cv-forge/resume/contract"
	"cv-forge/resume/model"
	"cv-forge/resume/render"
	"cv-forge/resume/resolve"
)

//go:embed sample.yaml
var sampleSource []byte

func main() {
	outDir := pflag.StringP("out", "o", "./out", "output directory for rendered artifacts")
	lang := pflag.StringP("lang", "l", "en", "language to render")
	profiles := pflag.StringP("profiles", "p", "", "comma separated profile tags")
	jobTitle := pflag.StringP("job-title", "t", "Java developer", "job title")
	pflag.Parse()

	written, err := renderSample(context.Background(), *outDir, *lang, *profiles, *jobTitle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("OK: wrote %s\n", path)
	}
}

func renderSample(ctx context.Context, outDir, rawLang, rawProfiles, jobTitle string) ([]string, error) {
	lang, err := model.ParseLanguage(rawLang)
	if err != nil {
		return nil, err
	}
	doc, err := model.DecodeBytes(sampleSource)
	if err != nil {
		return nil, err
	}
	if err := contract.Enforce(doc); err != nil {
		return nil, err
	}
	resume, err := resolve.Resolve(doc, lang, resolve.ParseProfiles(rawProfiles))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	modelPath := filepath.Join(outDir, "resolved_"+string(lang)+".json")
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(modelPath, payload, 0o644); err != nil {
		return nil, err
	}
	written = append(written, modelPath)

	registry := render.NewRegistry(nil)
	opts := render.Options{Language: lang, JobTitle: jobTitle}
	verifier := extract.Verifier{}
	for _, f := range registry.Formats() {
		art, err := registry.Render(ctx, f, resume, opts)
		if err != nil {
			return nil, err
		}
		if err := validateArtifact(ctx, verifier, art, resume.FullName()); err != nil {
			return nil, fmt.Errorf("%s validation failed: %w", f, err)
		}
		path := filepath.Join(outDir, art.Name)
		if err := os.WriteFile(path, art.Data, 0o644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func validateArtifact(ctx context.Context, verifier extract.Verifier, art render.Artifact, fullName string) error {
	text := string(art.Data)
	switch art.Format {
	case render.FormatDOCX:
		if err := verifier.Verify(ctx, art, fullName); err != nil {
			return err
		}
		extracted, err := extract.ExtractTextFromBytes(ctx, art.Data, art.ContentType, art.Name)
		if err != nil {
			return err
		}
		text = extracted
	case render.FormatLaTeX:
		// LaTeX braces nest legitimately; its template uses << >> delimiters.
		for _, token := range []string{"<<", ">>"} {
			if idx := strings.Index(text, token); idx != -1 {
				return fmt.Errorf("unresolved template tokens near: %s", snippetAround(text, idx, 200))
			}
		}
		return nil
	}
	if pos := tokenIndex(text); pos != -1 {
		return fmt.Errorf("unresolved template tokens near: %s", snippetAround(text, pos, 200))
	}
	return nil
}

func tokenIndex(text string) int {
	if idx := strings.Index(text, "{{"); idx != -1 {
		return idx
	}
	if idx := strings.Index(text, "}}"); idx != -1 {
		return idx
	}
	return -1
}

func snippetAround(text string, pos, maxLen int) string {
	if pos < 0 {
		return ""
	}
	start := pos - maxLen/2
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
