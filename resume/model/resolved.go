package model

import "strings"

// Resume is a resolved Document: every text field reduced to one language
// and every profile-excluded fragment removed. It is what renderers consume.
type Resume struct {
	Language       Language           `json:"language"`
	Personal       ResumePersonal     `json:"personal"`
	Contacts       *Contacts          `json:"contacts,omitempty"`
	AboutMe        []string           `json:"aboutMe,omitempty"`
	Education      []ResumeEducation  `json:"education"`
	WorkExperience []ResumeExperience `json:"workExperience"`
}

// ResumePersonal captures the owner's resolved name.
type ResumePersonal struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ResumeEducation represents a resolved education entry.
type ResumeEducation struct {
	University string `json:"university"`
	Faculty    string `json:"faculty"`
	Speciality string `json:"speciality"`
	FromDate   *Date  `json:"fromDate,omitempty"`
	ToDate     *Date  `json:"toDate,omitempty"`
}

// ResumeOrganisation represents a resolved employer.
type ResumeOrganisation struct {
	Name string `json:"name"`
}

// ResumeExperience represents a resolved work history entry.
type ResumeExperience struct {
	Organisation ResumeOrganisation `json:"organisation"`
	Position     string             `json:"position"`
	Bullets      []string           `json:"bullets"`
	Technologies []string           `json:"technologies"`
	FromDate     *Date              `json:"fromDate,omitempty"`
	ToDate       *Date              `json:"toDate,omitempty"`
	Current      bool               `json:"current"`
}

// FullName joins name and surname with a single space.
func (r Resume) FullName() string {
	return strings.TrimSpace(r.Personal.Name + " " + r.Personal.Surname)
}

// AboutText joins the about-me fragments into one paragraph.
func (r Resume) AboutText() string {
	parts := make([]string, 0, len(r.AboutMe))
	for _, p := range r.AboutMe {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// ContactsOrEmpty returns the contacts record or a zero one.
func (r Resume) ContactsOrEmpty() Contacts {
	if r.Contacts == nil {
		return Contacts{}
	}
	return *r.Contacts
}
