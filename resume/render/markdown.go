package render

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	"text/template"

	"cv-forge/resume/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	markdownTemplate = template.Must(template.ParseFS(templateFS, "templates/cv.md.tmpl"))
	htmlTemplate     = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/cv.html.tmpl"))
)

// MarkdownRenderer renders the resume as a Markdown document.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(_ context.Context, resume model.Resume, opts Options) (Artifact, error) {
	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, newView(resume, opts)); err != nil {
		return Artifact{}, err
	}
	buf.WriteByte('\n')
	return newArtifact(resume, opts, FormatMarkdown, buf.Bytes()), nil
}
