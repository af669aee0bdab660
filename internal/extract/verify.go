package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"cv-forge/resume/render"
)

// ErrTextMissing is returned when a rendered document lacks expected text.
var ErrTextMissing = errors.New("expected text missing from document")

// Verifier checks that rendered artifacts carry the text they should.
type Verifier struct {
	// MinPages rejects PDFs with fewer pages. Zero means one.
	MinPages int
}

// Verify extracts the artifact text and checks that every want string occurs
// in it. Comparison ignores case and whitespace, which PDF extraction does not preserve.
func (v Verifier) Verify(ctx context.Context, art render.Artifact, want ...string) error {
	if art.Format == render.FormatPDF {
		info, err := Inspect(art.Data)
		if err != nil {
			return fmt.Errorf("verify %s: %w", art.Name, err)
		}
		minPages := v.MinPages
		if minPages <= 0 {
			minPages = 1
		}
		if info.Pages < minPages {
			return fmt.Errorf("verify %s: %d pages, want at least %d", art.Name, info.Pages, minPages)
		}
		return checkText(art.Name, info.Text, want)
	}

	text, err := ExtractTextFromBytes(ctx, art.Data, art.ContentType, art.Name)
	if err != nil {
		return fmt.Errorf("verify %s: %w", art.Name, err)
	}
	return checkText(art.Name, text, want)
}

func checkText(name, text string, want []string) error {
	haystack := squash(text)
	for _, w := range want {
		if !strings.Contains(haystack, squash(w)) {
			return fmt.Errorf("verify %s: %w: %q", name, ErrTextMissing, w)
		}
	}
	return nil
}

func squash(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
