package render

import (
	"bytes"
	"context"
	"encoding/json"

	"cv-forge/resume/model"
)

// JSONResume is the subset of the jsonresume.org schema the converter fills.
type JSONResume struct {
	Basics    JSONBasics      `json:"basics"`
	Work      []JSONWork      `json:"work,omitempty"`
	Education []JSONEducation `json:"education,omitempty"`
}

type JSONBasics struct {
	Name     string        `json:"name,omitempty"`
	Label    string        `json:"label,omitempty"`
	Email    string        `json:"email,omitempty"`
	Phone    string        `json:"phone,omitempty"`
	URL      string        `json:"url,omitempty"`
	Summary  string        `json:"summary,omitempty"`
	Profiles []JSONProfile `json:"profiles,omitempty"`
}

type JSONProfile struct {
	Network  string `json:"network"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
}

// JSONWork sets both name and company; themes disagree on which one they read.
type JSONWork struct {
	Name       string      `json:"name"`
	Company    string      `json:"company"`
	Position   string      `json:"position"`
	StartDate  *model.Date `json:"startDate,omitempty"`
	EndDate    *model.Date `json:"endDate,omitempty"`
	Highlights []string    `json:"highlights,omitempty"`
	Keywords   []string    `json:"keywords,omitempty"`
}

type JSONEducation struct {
	Institution string      `json:"institution"`
	Area        string      `json:"area,omitempty"`
	StudyType   string      `json:"studyType,omitempty"`
	StartDate   *model.Date `json:"startDate,omitempty"`
	EndDate     *model.Date `json:"endDate,omitempty"`
}

// ToJSONResume converts a resolved resume. Work and education are newest first.
func ToJSONResume(resume model.Resume, jobTitle string) JSONResume {
	contacts := resume.ContactsOrEmpty()
	out := JSONResume{
		Basics: JSONBasics{
			Name:    resume.FullName(),
			Label:   jobTitle,
			Email:   contacts.Email,
			Phone:   contacts.Phone,
			URL:     contacts.Site,
			Summary: resume.AboutText(),
		},
	}
	if contacts.Telegram != "" {
		out.Basics.Profiles = append(out.Basics.Profiles, JSONProfile{
			Network:  "Telegram",
			URL:      TelegramURL(contacts.Telegram),
			Username: contacts.Telegram,
		})
	}
	if contacts.GitHub != "" {
		out.Basics.Profiles = append(out.Basics.Profiles, JSONProfile{
			Network:  "GitHub",
			URL:      GitHubURL(contacts.GitHub),
			Username: contacts.GitHub,
		})
	}

	for i := len(resume.WorkExperience) - 1; i >= 0; i-- {
		job := resume.WorkExperience[i]
		out.Work = append(out.Work, JSONWork{
			Name:       job.Organisation.Name,
			Company:    job.Organisation.Name,
			Position:   job.Position,
			StartDate:  job.FromDate,
			EndDate:    job.ToDate,
			Highlights: trimAll(job.Bullets),
			Keywords:   job.Technologies,
		})
	}
	for i := len(resume.Education) - 1; i >= 0; i-- {
		edu := resume.Education[i]
		out.Education = append(out.Education, JSONEducation{
			Institution: edu.University,
			Area:        edu.Faculty,
			StudyType:   edu.Speciality,
			StartDate:   edu.FromDate,
			EndDate:     edu.ToDate,
		})
	}
	return out
}

// JSONResumeRenderer writes the JSON Resume document indented by four spaces.
type JSONResumeRenderer struct{}

func (JSONResumeRenderer) Render(_ context.Context, resume model.Resume, opts Options) (Artifact, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ToJSONResume(resume, opts.JobTitle)); err != nil {
		return Artifact{}, err
	}
	return newArtifact(resume, opts, FormatJSONResume, buf.Bytes()), nil
}
