package render

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"cv-forge/resume/model"
)

var latexTemplate = template.Must(
	template.New("cv.tex.tmpl").
		Delims("<<", ">>").
		Funcs(template.FuncMap{"esc": EscapeLaTeX, "escURL": escapeLaTeXURL}).
		ParseFS(templateFS, "templates/cv.tex.tmpl"),
)

var babelNames = map[model.Language]string{
	model.LangRU: "russian",
	model.LangEN: "english",
}

type latexView struct {
	view
	Babel      string
	OtherBabel string
}

// LaTeXRenderer writes a self-contained LaTeX article.
type LaTeXRenderer struct{}

func (LaTeXRenderer) Render(_ context.Context, resume model.Resume, opts Options) (Artifact, error) {
	data, err := renderLaTeX(resume, opts)
	if err != nil {
		return Artifact{}, err
	}
	return newArtifact(resume, opts, FormatLaTeX, data), nil
}

func renderLaTeX(resume model.Resume, opts Options) ([]byte, error) {
	v := newView(resume, opts)
	lv := latexView{view: v, Babel: babelNames[model.LangEN], OtherBabel: babelNames[model.LangRU]}
	if v.Lang == string(model.LangRU) {
		lv.Babel, lv.OtherBabel = lv.OtherBabel, lv.Babel
	}
	var buf bytes.Buffer
	if err := latexTemplate.Execute(&buf, lv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`%`, `\%`,
)

// EscapeLaTeX escapes the characters LaTeX treats specially.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

var latexURLReplacer = strings.NewReplacer(`\`, ``, `{`, ``, `}`, ``, `#`, `\#`, `%`, `\%`)

func escapeLaTeXURL(s string) string {
	return latexURLReplacer.Replace(s)
}
