package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"cv-forge/resume/model"
	"cv-forge/resume/render"
)

// minimalPDF builds a one-page PDF showing text in Helvetica with a correct xref table.
func minimalPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestInspectCountsPages(t *testing.T) {
	info, err := Inspect(minimalPDF("Ivan Petrov"))
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if info.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", info.Pages)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := Inspect([]byte("not a pdf")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Inspect(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestVerifierChecksPDFText(t *testing.T) {
	art := render.Artifact{Name: "cv.pdf", Format: render.FormatPDF, ContentType: "application/pdf", Data: minimalPDF("Ivan Petrov")}

	if err := (Verifier{}).Verify(context.Background(), art, "Ivan Petrov"); err != nil {
		t.Fatalf("expected name to be found: %v", err)
	}
	err := (Verifier{}).Verify(context.Background(), art, "Grace Hopper")
	if !errors.Is(err, ErrTextMissing) {
		t.Fatalf("expected ErrTextMissing, got %v", err)
	}
	if err := (Verifier{MinPages: 2}).Verify(context.Background(), art); err == nil {
		t.Fatal("expected page count error")
	}
}

func TestVerifierChecksDOCXText(t *testing.T) {
	resume := model.Resume{
		Language: model.LangEN,
		Personal: model.ResumePersonal{Name: "Ada", Surname: "Lovelace"},
	}
	art, err := render.DOCXRenderer{}.Render(context.Background(), resume, render.Options{Language: model.LangEN})
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}

	if err := (Verifier{}).Verify(context.Background(), art, "Ada Lovelace"); err != nil {
		t.Fatalf("expected docx text to verify: %v", err)
	}

	text, err := ExtractTextFromBytes(context.Background(), art.Data, "application/zip", "cv.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if !strings.Contains(text, "Ada Lovelace") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("# Ivan"), "text/markdown; charset=utf-8", "cv.md")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "# Ivan" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytes_HTML(t *testing.T) {
	resume := model.Resume{
		Language: model.LangEN,
		Personal: model.ResumePersonal{Name: "Ada", Surname: "Lovelace"},
	}
	art, err := render.HTMLRenderer{}.Render(context.Background(), resume, render.Options{Language: model.LangEN, JobTitle: "Analyst"})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	text, err := ExtractTextFromBytes(context.Background(), art.Data, "text/html; charset=utf-8", "index.html")
	if err != nil {
		t.Fatalf("extract html: %v", err)
	}
	if !strings.Contains(text, "Ada Lovelace") || !strings.Contains(text, "Analyst") {
		t.Fatalf("expected name and title in %q", text)
	}
	for _, markup := range []string{"<h1", "{", "<!DOCTYPE"} {
		if strings.Contains(text, markup) {
			t.Fatalf("expected markup %q to be stripped from %q", markup, text)
		}
	}
}

func TestExtractTextFromBytes_HTMLByExtension(t *testing.T) {
	page := `<html><head><title>x</title><script>var a = 1;</script></head><body><p>Hello <b>world</b></p><ul><li>one</li><li>two</li></ul></body></html>`
	text, err := ExtractTextFromBytes(context.Background(), []byte(page), "", "index.html")
	if err != nil {
		t.Fatalf("extract html: %v", err)
	}
	if text != "Hello world\none\ntwo" {
		t.Fatalf("unexpected text %q", text)
	}
}
