package render

import (
	"strings"

	"cv-forge/internal/shared/util"
	"cv-forge/resume/i18n"
	"cv-forge/resume/model"
)

// HTMLFileName is the fixed name of HTML artifacts; the language lives in the directory.
const HTMLFileName = "index.html"

// FileName builds <Name>_<Surname>[_<JobTitle>]_<CV suffix>.<ext>.
func FileName(resume model.Resume, opts Options, f Format) string {
	if f == FormatHTML {
		return HTMLFileName
	}
	lang := opts.Language
	if lang == "" {
		lang = resume.Language
	}
	parts := make([]string, 0, 4)
	for _, part := range []string{
		resume.Personal.Name,
		resume.Personal.Surname,
		opts.JobTitle,
		i18n.New(lang).CVSuffix(),
	} {
		if slug := util.Slug(part); slug != "" {
			parts = append(parts, slug)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "cv")
	}
	return strings.Join(parts, "_") + "." + f.Extension()
}
