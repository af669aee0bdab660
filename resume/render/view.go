package render

import (
	"strings"

	"cv-forge/resume/i18n"
	"cv-forge/resume/model"
)

// view is the flattened, display-ready form of a resume shared by the
// text-based templates. Work and education are newest first.
type view struct {
	Lang      string
	FullName  string
	JobTitle  string
	About     string
	Contacts  []contactLine
	Work      []workView
	Education []educationView
	Headings  headings
}

type headings struct {
	Contacts       string
	AboutMe        string
	WorkExperience string
	Education      string
	KeySkills      string
}

type contactLine struct {
	Label string
	Value string
	URL   string
}

type workView struct {
	Title        string
	Position     string
	Organisation string
	Period       string
	Bullets      []string
	Technologies []string
	Skills       string
}

type educationView struct {
	Title      string
	University string
	Faculty    string
	Speciality string
	Period     string
}

func newView(resume model.Resume, opts Options) view {
	lang := opts.Language
	if lang == "" {
		lang = resume.Language
	}
	tr := i18n.New(lang)

	v := view{
		Lang:     string(lang),
		FullName: resume.FullName(),
		JobTitle: strings.TrimSpace(opts.JobTitle),
		About:    resume.AboutText(),
		Contacts: contactLines(resume.ContactsOrEmpty(), tr),
		Headings: headings{
			Contacts:       tr.T(i18n.KeyContacts),
			AboutMe:        tr.T(i18n.KeyAboutMe),
			WorkExperience: tr.T(i18n.KeyWorkExperience),
			Education:      tr.T(i18n.KeyEducation),
			KeySkills:      tr.T(i18n.KeyKeySkills),
		},
	}

	for i := len(resume.WorkExperience) - 1; i >= 0; i-- {
		job := resume.WorkExperience[i]
		v.Work = append(v.Work, workView{
			Title:        tr.T(i18n.KeyPositionAt, job.Position, job.Organisation.Name),
			Position:     job.Position,
			Organisation: job.Organisation.Name,
			Period:       tr.Interval(job.FromDate, job.ToDate, job.Current),
			Bullets:      trimAll(job.Bullets),
			Technologies: job.Technologies,
			Skills:       strings.Join(job.Technologies, ", "),
		})
	}

	for i := len(resume.Education) - 1; i >= 0; i-- {
		edu := resume.Education[i]
		title := edu.University
		if edu.Faculty != "" {
			title += " - " + edu.Faculty
		}
		v.Education = append(v.Education, educationView{
			Title:      title,
			University: edu.University,
			Faculty:    edu.Faculty,
			Speciality: edu.Speciality,
			Period:     tr.Interval(edu.FromDate, edu.ToDate, false),
		})
	}
	return v
}

func contactLines(c model.Contacts, tr *i18n.Translator) []contactLine {
	var out []contactLine
	add := func(label, value, url string) {
		if value != "" {
			out = append(out, contactLine{Label: label, Value: value, URL: url})
		}
	}
	add(tr.T(i18n.KeyEmail), c.Email, "mailto:"+c.Email)
	add(tr.T(i18n.KeyPhone), c.Phone, "tel:"+strings.ReplaceAll(c.Phone, " ", ""))
	add("Telegram", c.Telegram, TelegramURL(c.Telegram))
	add(tr.T(i18n.KeySite), c.Site, SiteURL(c.Site))
	add("GitHub", c.GitHub, GitHubURL(c.GitHub))
	add("Skype", c.Skype, "skype:"+c.Skype+"?chat")
	return out
}

// TelegramURL returns the public profile link for a Telegram handle.
func TelegramURL(handle string) string {
	return "https://t.me/" + strings.TrimPrefix(handle, "@")
}

// SiteURL returns site as an http(s) link, defaulting to https.
func SiteURL(site string) string {
	lower := strings.ToLower(site)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return site
	}
	return "https://" + site
}

// GitHubURL returns the profile link for a GitHub user name.
func GitHubURL(user string) string {
	return "https://github.com/" + user
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
