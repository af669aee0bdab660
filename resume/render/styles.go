package render

import (
	"fmt"
	"sort"
	"strings"
)

// RunStyle captures the inline run formatting shared by the DOCX and HTML
// renderers. Size is in half-points, as WordprocessingML expects.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	HeadingSize  = 24
	NameSize     = 32
	BodySize     = 21
)

// Style names used as StyleMap keys.
const (
	StyleName           = "name"
	StyleSectionHeading = "sectionHeading"
	StyleRoleLine       = "roleLine"
	StyleMeta           = "meta"
)

// StyleMap centralizes the formatting for key resume elements.
var StyleMap = map[string]RunStyle{
	StyleName: {
		Bold:  true,
		Size:  NameSize,
		Color: NameColor,
	},
	StyleSectionHeading: {
		Bold:  true,
		Size:  HeadingSize,
		Color: HeadingColor,
	},
	StyleRoleLine: {
		Bold: true,
	},
	StyleMeta: {
		Italic: true,
	},
}

// cssSelectors maps style names to the HTML elements they apply to.
var cssSelectors = map[string]string{
	StyleName:           "h1.name",
	StyleSectionHeading: "h2",
	StyleRoleLine:       "h3.role",
	StyleMeta:           ".meta",
}

func (s RunStyle) css() string {
	var decls []string
	if s.Bold {
		decls = append(decls, "font-weight:bold")
	} else {
		decls = append(decls, "font-weight:normal")
	}
	if s.Italic {
		decls = append(decls, "font-style:italic")
	}
	if s.Size > 0 {
		decls = append(decls, fmt.Sprintf("font-size:%gpt", float64(s.Size)/2))
	}
	if s.Color != "" {
		decls = append(decls, "color:#"+s.Color)
	}
	return strings.Join(decls, ";")
}

// StyleSheet renders StyleMap as CSS rules.
func StyleSheet() string {
	names := make([]string, 0, len(StyleMap))
	for name := range StyleMap {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "body{font-family:Georgia,serif;font-size:%gpt;max-width:48em;margin:2em auto;color:#222}", float64(BodySize)/2)
	b.WriteString("ul.contacts{list-style:none;padding:0}")
	for _, name := range names {
		selector, ok := cssSelectors[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s{%s}", selector, StyleMap[name].css())
	}
	return b.String()
}
