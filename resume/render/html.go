package render

import (
	"bytes"
	"context"
	"html/template"

	"cv-forge/resume/model"
)

// HTMLRenderer renders a standalone HTML page with inline styles.
type HTMLRenderer struct{}

type htmlContact struct {
	Label string
	Value string
	URL   template.URL
}

type htmlView struct {
	view
	Contacts []htmlContact
	CSS      template.CSS
}

func (HTMLRenderer) Render(_ context.Context, resume model.Resume, opts Options) (Artifact, error) {
	v := newView(resume, opts)
	data := htmlView{view: v, CSS: template.CSS(StyleSheet())}
	for _, c := range v.Contacts {
		// URLs are built from fixed schemes in contactLines.
		data.Contacts = append(data.Contacts, htmlContact{Label: c.Label, Value: c.Value, URL: template.URL(c.URL)})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return Artifact{}, err
	}
	return newArtifact(resume, opts, FormatHTML, buf.Bytes()), nil
}
