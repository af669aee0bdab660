package contract

import (
	"fmt"
	"strings"

	"cv-forge/resume/model"
)

// MissingFieldsError lists every field that failed the contract, as dotted paths.
type MissingFieldsError struct {
	Fields []string
}

func (e MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Enforce checks that required text is translated into every supported
// language and that work dates are consistent. All problems are reported at once.
func Enforce(doc model.Document) error {
	c := &collector{}

	c.localized("personal.name", doc.Personal.Name)
	c.localized("personal.surname", doc.Personal.Surname)

	if doc.AboutMe != nil {
		c.sequence("about_me.text_parts", doc.AboutMe.TextParts)
	}

	for i, edu := range doc.Education {
		prefix := fmt.Sprintf("education[%d]", i)
		c.localized(prefix+".university", edu.University)
		c.localized(prefix+".faculty", edu.Faculty)
		c.localized(prefix+".speciality", edu.Speciality)
	}

	for i, work := range doc.WorkExperience {
		prefix := fmt.Sprintf("work_experience[%d]", i)
		c.localized(prefix+".organisation.name", work.Organisation.Name)
		c.localized(prefix+".position", work.Position)
		c.sequence(prefix+".bullets", work.Bullets)
		c.sequence(prefix+".technologies", work.Technologies)
		if work.FromDate == nil {
			c.add(prefix + ".from_date")
		}
		if work.Current && work.ToDate != nil {
			c.add(prefix + ".to_date (must be empty when current is set)")
		}
		if work.FromDate != nil && work.ToDate != nil && work.ToDate.Before(work.FromDate.Time) {
			c.add(prefix + ".to_date (before from_date)")
		}
	}

	if len(c.fields) > 0 {
		return MissingFieldsError{Fields: c.fields}
	}
	return nil
}

type collector struct {
	fields []string
}

func (c *collector) add(field string) {
	c.fields = append(c.fields, field)
}

func (c *collector) localized(path string, s model.LocalizedString) {
	for _, lang := range s.Missing() {
		c.add(path + "." + string(lang))
	}
}

func (c *collector) sequence(path string, seq model.Sequence) {
	for i, n := range seq {
		item := fmt.Sprintf("%s[%d]", path, i)
		switch v := n.(type) {
		case model.LocalizedString:
			c.localized(item, v)
		case model.ProfiledLocalizedString:
			c.localized(item, v.Text)
		case model.Scalar:
			if !hasValue(string(v)) {
				c.add(item)
			}
		case model.ProfiledString:
			if !hasValue(v.Value) {
				c.add(item + ".value")
			}
		}
	}
}

func hasValue(value string) bool {
	return strings.TrimSpace(value) != ""
}
