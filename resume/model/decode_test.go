package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
personal:
  name:
    ru: Иван
    en: Ivan
  surname:
    ru: Петров
    en: Petrov
contacts:
  phone: "+7 900 000-00-00"
  email: ivan@example.com
  github: ivanpetrov
about_me:
  text_parts:
    - ru: Бэкенд-разработчик.
      en: Backend developer.
    - ru: Руководил командой.
      en: Led a team.
      profiles: [teamlead]
education:
  - university:
      ru: МГУ
      en: MSU
    faculty: ВМК
    speciality:
      ru: Прикладная математика
      en: Applied mathematics
    from_date: 2008-09-01
    to_date: 2013-06
work_experience:
  - organisation:
      name: Acme
    position:
      ru: Разработчик
      en: Developer
    bullets:
      - Wrote code.
      - ru: Проводил собеседования
        en: Ran interviews
        profiles: [teamlead]
    technologies:
      - Go
      - value: Kubernetes
        profiles: [devops]
    from_date: 2013-07
    current: true
`

func TestDecodeSampleSource(t *testing.T) {
	doc, err := DecodeBytes([]byte(sampleSource))
	require.NoError(t, err)

	assert.Equal(t, "Ivan", doc.Personal.Name.In(LangEN))
	assert.Equal(t, "Петров", doc.Personal.Surname.In(LangRU))
	require.NotNil(t, doc.Contacts)
	assert.Equal(t, "ivanpetrov", doc.Contacts.GitHub)

	require.NotNil(t, doc.AboutMe)
	require.Len(t, doc.AboutMe.TextParts, 2)
	assert.IsType(t, LocalizedString{}, doc.AboutMe.TextParts[0])
	tagged, ok := doc.AboutMe.TextParts[1].(ProfiledLocalizedString)
	require.True(t, ok)
	assert.Equal(t, []string{"teamlead"}, tagged.Profiles)

	require.Len(t, doc.Education, 1)
	edu := doc.Education[0]
	assert.Equal(t, "ВМК", edu.Faculty.In(LangEN), "scalar shorthand applies to every language")
	assert.Equal(t, "ВМК", edu.Faculty.In(LangRU))
	require.NotNil(t, edu.ToDate)
	assert.Equal(t, time.June, edu.ToDate.Month())
	assert.Equal(t, 1, edu.ToDate.Day())

	require.Len(t, doc.WorkExperience, 1)
	work := doc.WorkExperience[0]
	assert.True(t, work.Current)
	assert.Nil(t, work.ToDate)
	require.Len(t, work.Bullets, 2)
	assert.Equal(t, Scalar("Wrote code."), work.Bullets[0])
	require.Len(t, work.Technologies, 2)
	assert.Equal(t, ProfiledString{Value: "Kubernetes", Profiles: []string{"devops"}}, work.Technologies[1])
}

func TestDecodeRejectsUnknownLanguageKey(t *testing.T) {
	src := `
personal:
  name:
    fr: Jean
    en: John
  surname: Doe
`
	_, err := DecodeBytes([]byte(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestDecodeRejectsUnknownField(t *testing.T) {
	src := `
personal:
  name: John
  surname: Doe
hobbies: [chess]
`
	_, err := DecodeBytes([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hobbies")
}

func TestDecodeRejectsMixedFragment(t *testing.T) {
	src := `
personal:
  name: John
  surname: Doe
work_experience:
  - organisation:
      name: Acme
    position: Dev
    technologies:
      - value: Go
        en: Go
`
	_, err := DecodeBytes([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mixes value")
}

func TestDecodeEmptyDocument(t *testing.T) {
	_, err := DecodeBytes(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestLoadFileWrapsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personal: [broken"), 0o644))

	_, _, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path))

	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))
	doc, raw, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSource, string(raw))
	assert.Equal(t, "Ivan", doc.Personal.Name.In(LangEN))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage(" EN ")
	require.NoError(t, err)
	assert.Equal(t, LangEN, lang)

	_, err = ParseLanguage("fr")
	var langErr *UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
	assert.Equal(t, "fr", langErr.Lang)

	langs, err := ParseLanguages("ru, en,ru")
	require.NoError(t, err)
	assert.Equal(t, []Language{LangRU, LangEN}, langs)
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2021-03")
	require.NoError(t, err)
	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2021-03-01"`, string(out))
}
