package render

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies an output representation of a resolved resume.
type Format string

const (
	FormatMarkdown   Format = "md"
	FormatHTML       Format = "html"
	FormatJSONResume Format = "json"
	FormatLaTeX      Format = "tex"
	FormatPDF        Format = "pdf"
	FormatDOCX       Format = "docx"
)

// AllFormats lists every format in build order.
var AllFormats = []Format{FormatMarkdown, FormatHTML, FormatJSONResume, FormatLaTeX, FormatPDF, FormatDOCX}

// ErrUnknownFormat is returned for formats outside AllFormats.
var ErrUnknownFormat = errors.New("unknown format")

var contentTypes = map[Format]string{
	FormatMarkdown:   "text/markdown; charset=utf-8",
	FormatHTML:       "text/html; charset=utf-8",
	FormatJSONResume: "application/json",
	FormatLaTeX:      "application/x-tex",
	FormatPDF:        "application/pdf",
	FormatDOCX:       "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ParseFormat normalizes raw and checks it against AllFormats.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
	return f, nil
}

// ParseFormats parses a comma separated list. "all" selects every format.
func ParseFormats(raw string) ([]Format, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		return append([]Format(nil), AllFormats...), nil
	}
	var out []Format
	seen := make(map[Format]struct{})
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out, nil
}

// ContentType returns the MIME type of artifacts in format f.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Extension is the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

func (f Format) String() string {
	return string(f)
}
