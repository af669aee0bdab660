// Package i18n holds the fixed UI strings of rendered resumes (headings,
// labels, month names) for every supported language.
package i18n

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"cv-forge/resume/model"
)

// Message keys. English keys double as the English text.
const (
	KeyCV             = "CV"
	KeyWorkExperience = "Work experience"
	KeyEducation      = "Education"
	KeyAboutMe        = "About me"
	KeyContacts       = "Contacts"
	KeyKeySkills      = "Key skills"
	KeyPresent        = "Present"
	KeyEmail          = "Email"
	KeyPhone          = "Phone"
	KeySite           = "Site"
	KeyPositionAt     = "%s at %s"
)

var russian = map[string]string{
	KeyCV:             "Резюме",
	KeyWorkExperience: "Опыт работы",
	KeyEducation:      "Образование",
	KeyAboutMe:        "Обо мне",
	KeyContacts:       "Контакты",
	KeyKeySkills:      "Ключевые навыки",
	KeyPresent:        "по настоящее время",
	KeyEmail:          "Эл. почта",
	KeyPhone:          "Телефон",
	KeySite:           "Сайт",
	KeyPositionAt:     "%s в %s",
}

var russianMonths = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range russian {
		mustSet(b, language.Russian, key, text)
		mustSet(b, language.English, key, key)
	}
	for m := time.January; m <= time.December; m++ {
		mustSet(b, language.Russian, m.String(), russianMonths[m-1])
		mustSet(b, language.English, m.String(), m.String())
	}
	return b
}

func mustSet(b *catalog.Builder, tag language.Tag, key, text string) {
	if err := b.SetString(tag, key, text); err != nil {
		panic("i18n: " + err.Error())
	}
}

// Translator renders catalog messages for one language.
type Translator struct {
	lang    model.Language
	printer *message.Printer
}

// New returns a Translator for lang. Unsupported languages fall back to English.
func New(lang model.Language) *Translator {
	return &Translator{
		lang:    lang,
		printer: message.NewPrinter(lang.Tag(), message.Catalog(messages)),
	}
}

// Language returns the language the translator was built for.
func (t *Translator) Language() model.Language {
	return t.lang
}

// T translates key and formats args into it.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Month returns the localized month name.
func (t *Translator) Month(m time.Month) string {
	return t.printer.Sprintf(m.String())
}

// Date formats d as "<Month> <year>".
func (t *Translator) Date(d model.Date) string {
	return t.Month(d.Month()) + " " + strconv.Itoa(d.Year())
}

// Interval formats a date range. A current range ends with "Present";
// a missing end date yields only the start.
func (t *Translator) Interval(from, to *model.Date, current bool) string {
	var parts []string
	if from != nil {
		parts = append(parts, t.Date(*from))
	}
	switch {
	case current:
		parts = append(parts, t.T(KeyPresent))
	case to != nil:
		parts = append(parts, t.Date(*to))
	}
	return strings.Join(parts, " – ")
}

// CVSuffix is the localized word used at the end of artifact file names.
func (t *Translator) CVSuffix() string {
	return t.T(KeyCV)
}
