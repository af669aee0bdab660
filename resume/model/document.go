package model

// Document is the raw resume source: every text field may carry one value per
// language and list fragments may be restricted to profiles.
type Document struct {
	Personal       Personal         `yaml:"personal"`
	Contacts       *Contacts        `yaml:"contacts,omitempty"`
	AboutMe        *AboutMe         `yaml:"about_me,omitempty"`
	Education      []Education      `yaml:"education"`
	WorkExperience []WorkExperience `yaml:"work_experience"`
}

// Personal holds the owner's name.
type Personal struct {
	Name    LocalizedString `yaml:"name"`
	Surname LocalizedString `yaml:"surname"`
}

// Contacts lists the contact channels. Channels are plain strings, not localized.
type Contacts struct {
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Site     string `yaml:"site,omitempty" json:"site,omitempty"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
	Telegram string `yaml:"telegram,omitempty" json:"telegram,omitempty"`
	Skype    string `yaml:"skype,omitempty" json:"skype,omitempty"`
}

// Contact channel names, as used by the exclude_<channel> profile tags.
const (
	ChannelPhone    = "phone"
	ChannelEmail    = "email"
	ChannelSite     = "site"
	ChannelGitHub   = "github"
	ChannelTelegram = "telegram"
	ChannelSkype    = "skype"
)

// ContactChannels is the fixed, ordered set of channels a Contacts record carries.
var ContactChannels = []string{
	ChannelPhone,
	ChannelEmail,
	ChannelSite,
	ChannelGitHub,
	ChannelTelegram,
	ChannelSkype,
}

// Get returns the value of the named channel, or "" for unknown names.
func (c Contacts) Get(channel string) string {
	switch channel {
	case ChannelPhone:
		return c.Phone
	case ChannelEmail:
		return c.Email
	case ChannelSite:
		return c.Site
	case ChannelGitHub:
		return c.GitHub
	case ChannelTelegram:
		return c.Telegram
	case ChannelSkype:
		return c.Skype
	default:
		return ""
	}
}

// Set assigns the named channel. Unknown names are ignored.
func (c *Contacts) Set(channel, value string) {
	switch channel {
	case ChannelPhone:
		c.Phone = value
	case ChannelEmail:
		c.Email = value
	case ChannelSite:
		c.Site = value
	case ChannelGitHub:
		c.GitHub = value
	case ChannelTelegram:
		c.Telegram = value
	case ChannelSkype:
		c.Skype = value
	}
}

// Empty reports whether no channel is set.
func (c Contacts) Empty() bool {
	for _, ch := range ContactChannels {
		if c.Get(ch) != "" {
			return false
		}
	}
	return true
}

// AboutMe is free text assembled from profiled fragments.
type AboutMe struct {
	TextParts Sequence `yaml:"text_parts"`
}

// Education is one education entry.
type Education struct {
	University LocalizedString `yaml:"university"`
	Faculty    LocalizedString `yaml:"faculty"`
	Speciality LocalizedString `yaml:"speciality"`
	FromDate   *Date           `yaml:"from_date,omitempty"`
	ToDate     *Date           `yaml:"to_date,omitempty"`
}

// Organisation is an employer.
type Organisation struct {
	Name LocalizedString `yaml:"name"`
}

// WorkExperience is one position held at an organisation.
type WorkExperience struct {
	Organisation Organisation    `yaml:"organisation"`
	Position     LocalizedString `yaml:"position"`
	Bullets      Sequence        `yaml:"bullets,omitempty"`
	Technologies Sequence        `yaml:"technologies,omitempty"`
	FromDate     *Date           `yaml:"from_date,omitempty"`
	ToDate       *Date           `yaml:"to_date,omitempty"`
	Current      bool            `yaml:"current,omitempty"`
}
