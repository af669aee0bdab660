// Package resolve projects a raw resume Document onto one language and one
// profile set. Resolution is a pure function: the source is never mutated and
// the result shares no slices with it, so one Document may be resolved for
// many targets concurrently.
package resolve

import (
	"fmt"

	"cv-forge/resume/model"
)

// Resolve reduces every localized field of doc to lang and drops fragments
// hidden by profiles. The language is checked before anything is produced.
func Resolve(doc model.Document, lang model.Language, profiles ProfileSet) (model.Resume, error) {
	if !lang.Supported() {
		return model.Resume{}, &model.UnsupportedLanguageError{Lang: string(lang)}
	}
	if profiles == nil {
		profiles = ProfileSet{}
	}
	r := resolver{lang: lang, profiles: profiles}

	out := model.Resume{
		Language: lang,
		Personal: model.ResumePersonal{
			Name:    r.text(doc.Personal.Name),
			Surname: r.text(doc.Personal.Surname),
		},
		Contacts: r.contacts(doc.Contacts),
	}

	if doc.AboutMe != nil {
		about, err := r.sequence(doc.AboutMe.TextParts, "about_me.text_parts")
		if err != nil {
			return model.Resume{}, err
		}
		out.AboutMe = about
	}

	out.Education = make([]model.ResumeEducation, 0, len(doc.Education))
	for _, edu := range doc.Education {
		out.Education = append(out.Education, r.education(edu))
	}

	out.WorkExperience = make([]model.ResumeExperience, 0, len(doc.WorkExperience))
	for i, work := range doc.WorkExperience {
		resolved, err := r.work(work, fmt.Sprintf("work_experience[%d]", i))
		if err != nil {
			return model.Resume{}, err
		}
		out.WorkExperience = append(out.WorkExperience, resolved)
	}
	return out, nil
}

type resolver struct {
	lang     model.Language
	profiles ProfileSet
}

func (r resolver) text(s model.LocalizedString) string {
	return s.In(r.lang)
}

// node resolves one fragment. keep is false when the fragment is hidden by
// the active profiles and must be dropped from its sequence.
func (r resolver) node(n model.Node, path string) (value string, keep bool, err error) {
	switch v := n.(type) {
	case model.Scalar:
		return string(v), true, nil
	case model.LocalizedString:
		return v.In(r.lang), true, nil
	case model.ProfiledLocalizedString:
		if !r.profiles.Visible(v.Profiles) {
			return "", false, nil
		}
		return v.Text.In(r.lang), true, nil
	case model.ProfiledString:
		if !r.profiles.Visible(v.Profiles) {
			return "", false, nil
		}
		return v.Value, true, nil
	default:
		return "", false, &UnsupportedNodeTypeError{Type: fmt.Sprintf("%T", n), Path: path}
	}
}

func (r resolver) sequence(seq model.Sequence, path string) ([]string, error) {
	out := make([]string, 0, len(seq))
	for i, n := range seq {
		value, keep, err := r.node(n, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, value)
		}
	}
	return out, nil
}

// contacts applies the exclude_<channel> rule. It is separate from the
// fragment rule: channel visibility depends only on exclude tags.
func (r resolver) contacts(in *model.Contacts) *model.Contacts {
	if in == nil {
		return nil
	}
	out := &model.Contacts{}
	for _, channel := range model.ContactChannels {
		if r.profiles.Excludes(channel) {
			continue
		}
		out.Set(channel, in.Get(channel))
	}
	return out
}

func (r resolver) education(in model.Education) model.ResumeEducation {
	return model.ResumeEducation{
		University: r.text(in.University),
		Faculty:    r.text(in.Faculty),
		Speciality: r.text(in.Speciality),
		FromDate:   copyDate(in.FromDate),
		ToDate:     copyDate(in.ToDate),
	}
}

func (r resolver) work(in model.WorkExperience, path string) (model.ResumeExperience, error) {
	bullets, err := r.sequence(in.Bullets, path+".bullets")
	if err != nil {
		return model.ResumeExperience{}, err
	}
	technologies, err := r.sequence(in.Technologies, path+".technologies")
	if err != nil {
		return model.ResumeExperience{}, err
	}
	return model.ResumeExperience{
		Organisation: model.ResumeOrganisation{Name: r.text(in.Organisation.Name)},
		Position:     r.text(in.Position),
		Bullets:      bullets,
		Technologies: technologies,
		FromDate:     copyDate(in.FromDate),
		ToDate:       copyDate(in.ToDate),
		Current:      in.Current,
	}, nil
}

func copyDate(d *model.Date) *model.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
