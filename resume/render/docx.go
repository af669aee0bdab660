package render

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cv-forge/resume/model"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// DOCXRenderer builds a minimal WordprocessingML package without a template.
type DOCXRenderer struct{}

func (DOCXRenderer) Render(_ context.Context, resume model.Resume, opts Options) (Artifact, error) {
	documentXML := buildDocumentXML(newView(resume, opts))
	if err := validateDocumentXMLStructure(documentXML); err != nil {
		return Artifact{}, err
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/document.xml", documentXML},
	}
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, []byte(part.content)); err != nil {
			return Artifact{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return Artifact{}, err
	}
	return newArtifact(resume, opts, FormatDOCX, output.Bytes()), nil
}

type documentBuilder struct {
	b strings.Builder
}

func buildDocumentXML(v view) string {
	d := &documentBuilder{}
	d.b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	d.b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)

	d.paragraph(StyleMap[StyleName], v.FullName)
	if v.JobTitle != "" {
		d.paragraph(StyleMap[StyleRoleLine], v.JobTitle)
	}
	for _, c := range v.Contacts {
		d.paragraph(RunStyle{}, c.Label+": "+c.Value)
	}

	if v.About != "" {
		d.heading(v.Headings.AboutMe)
		d.paragraph(RunStyle{}, v.About)
	}

	if len(v.Work) > 0 {
		d.heading(v.Headings.WorkExperience)
		for _, job := range v.Work {
			d.paragraph(StyleMap[StyleRoleLine], job.Title)
			if job.Period != "" {
				d.paragraph(StyleMap[StyleMeta], job.Period)
			}
			for _, bullet := range job.Bullets {
				d.paragraph(RunStyle{}, "• "+bullet)
			}
			if job.Skills != "" {
				d.paragraph(RunStyle{}, v.Headings.KeySkills+": "+job.Skills)
			}
		}
	}

	if len(v.Education) > 0 {
		d.heading(v.Headings.Education)
		for _, edu := range v.Education {
			d.paragraph(StyleMap[StyleRoleLine], edu.Title)
			if edu.Period != "" {
				d.paragraph(StyleMap[StyleMeta], edu.Period)
			}
			if edu.Speciality != "" {
				d.paragraph(RunStyle{}, edu.Speciality)
			}
		}
	}

	d.b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	d.b.WriteString(`</w:body></w:document>`)
	return d.b.String()
}

func (d *documentBuilder) heading(text string) {
	d.paragraph(StyleMap[StyleSectionHeading], text)
}

func (d *documentBuilder) paragraph(style RunStyle, text string) {
	d.b.WriteString(`<w:p><w:r>`)
	d.runProperties(style)
	d.b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(&d.b, []byte(text))
	d.b.WriteString(`</w:t></w:r></w:p>`)
}

func (d *documentBuilder) runProperties(style RunStyle) {
	if style == (RunStyle{}) {
		return
	}
	d.b.WriteString(`<w:rPr>`)
	if style.Bold {
		d.b.WriteString(`<w:b/>`)
	}
	if style.Italic {
		d.b.WriteString(`<w:i/>`)
	}
	if style.Color != "" {
		d.b.WriteString(`<w:color w:val="` + style.Color + `"/>`)
	}
	if style.Size > 0 {
		d.b.WriteString(`<w:sz w:val="` + strconv.Itoa(style.Size) + `"/>`)
	}
	d.b.WriteString(`</w:rPr>`)
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	// Fixed timestamp so identical input yields identical archives.
	header.Modified = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

// validateDocumentXMLStructure rejects nested paragraphs and run properties
// that follow run text, both of which Word refuses to open.
func validateDocumentXMLStructure(xmlText string) error {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	var stack []xml.Name
	type runState struct {
		seenText bool
	}
	var runs []runState

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w\n%s", err, firstLines(xmlText, 5))
		}
		switch t := token.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name)
			if isWmlElement(t.Name, "p") {
				for i := len(stack) - 2; i >= 0; i-- {
					if isWmlElement(stack[i], "p") {
						return fmt.Errorf("document.xml has nested <w:p>\n%s", firstLines(xmlText, 5))
					}
				}
			}
			if isWmlElement(t.Name, "r") {
				runs = append(runs, runState{})
			}
			if isWmlElement(t.Name, "t") && len(runs) > 0 {
				runs[len(runs)-1].seenText = true
			}
			if isWmlElement(t.Name, "rPr") && len(runs) > 0 && runs[len(runs)-1].seenText {
				return fmt.Errorf("document.xml has <w:rPr> after <w:t> in a run\n%s", firstLines(xmlText, 5))
			}
		case xml.EndElement:
			if isWmlElement(t.Name, "r") && len(runs) > 0 {
				runs = runs[:len(runs)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return nil
}

func isWmlElement(name xml.Name, local string) bool {
	return name.Local == local && name.Space == wmlNamespace
}

func firstLines(text string, count int) string {
	if count <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > count {
		lines = lines[:count]
	}
	return strings.Join(lines, "\n")
}
