package resolve

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-forge/resume/model"
)

func loc(ru, en string) model.LocalizedString {
	return model.LocalizedString{model.LangRU: ru, model.LangEN: en}
}

func sampleDocument() model.Document {
	return model.Document{
		Personal: model.Personal{Name: loc("Иван", "Ivan"), Surname: loc("Петров", "Petrov")},
		Contacts: &model.Contacts{
			Phone:    "+7 900 000-00-00",
			Email:    "ivan@example.com",
			GitHub:   "ivanpetrov",
			Telegram: "ivanp",
		},
		AboutMe: &model.AboutMe{TextParts: model.Sequence{
			loc("Бэкенд-разработчик.", "Backend developer."),
			model.ProfiledLocalizedString{Text: loc("Руководил командой.", "Led a team."), Profiles: []string{"teamlead"}},
		}},
		Education: []model.Education{{
			University: loc("МГУ", "MSU"),
			Faculty:    loc("ВМК", "CMC"),
			Speciality: loc("Прикладная математика", "Applied mathematics"),
			FromDate:   model.NewDate(2008, 9, 1),
			ToDate:     model.NewDate(2013, 6, 1),
		}},
		WorkExperience: []model.WorkExperience{{
			Organisation: model.Organisation{Name: loc("Акме", "Acme")},
			Position:     loc("Разработчик", "Developer"),
			Bullets: model.Sequence{
				model.Scalar("A"),
				model.ProfiledLocalizedString{Text: loc("Б", "B"), Profiles: []string{"teamlead"}},
			},
			Technologies: model.Sequence{
				model.Scalar("Go"),
				model.ProfiledString{Value: "Kubernetes", Profiles: []string{"devops", "sre"}},
				model.ProfiledString{Value: "PostgreSQL"},
			},
			FromDate: model.NewDate(2013, 7, 1),
			Current:  true,
		}},
	}
}

func TestResolveProfiledBullets(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()

	cases := []struct {
		name     string
		profiles ProfileSet
		want     []string
	}{
		{name: "no profiles", profiles: NewProfileSet(), want: []string{"A"}},
		{name: "nil profiles", profiles: nil, want: []string{"A"}},
		{name: "matching profile", profiles: NewProfileSet("teamlead"), want: []string{"A", "B"}},
		{name: "unrelated profile", profiles: NewProfileSet("devops"), want: []string{"A"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(doc, model.LangEN, tc.profiles)
			require.NoError(t, err)
			require.Len(t, got.WorkExperience, 1)
			assert.Equal(t, tc.want, got.WorkExperience[0].Bullets)
		})
	}
}

func TestResolvePicksLanguage(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()

	ru, err := Resolve(doc, model.LangRU, NewProfileSet("teamlead"))
	require.NoError(t, err)
	assert.Equal(t, model.LangRU, ru.Language)
	assert.Equal(t, "Иван Петров", ru.FullName())
	assert.Equal(t, []string{"Бэкенд-разработчик.", "Руководил командой."}, ru.AboutMe)
	assert.Equal(t, "МГУ", ru.Education[0].University)
	assert.Equal(t, "Акме", ru.WorkExperience[0].Organisation.Name)
	assert.Equal(t, []string{"A", "Б"}, ru.WorkExperience[0].Bullets)

	en, err := Resolve(doc, model.LangEN, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", en.FullName())
	assert.Equal(t, "Backend developer.", en.AboutText())
	assert.Equal(t, "Applied mathematics", en.Education[0].Speciality)
	assert.True(t, en.WorkExperience[0].Current)
	assert.Nil(t, en.WorkExperience[0].ToDate)
}

func TestResolveTechnologies(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()

	got, err := Resolve(doc, model.LangEN, NewProfileSet("sre"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL"}, got.WorkExperience[0].Technologies)

	got, err = Resolve(doc, model.LangEN, NewProfileSet())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.WorkExperience[0].Technologies)
}

func TestResolveExcludesContacts(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()

	got, err := Resolve(doc, model.LangEN, NewProfileSet("exclude_phone"))
	require.NoError(t, err)
	require.NotNil(t, got.Contacts)
	assert.Empty(t, got.Contacts.Phone)
	assert.Equal(t, "ivan@example.com", got.Contacts.Email)
	assert.Equal(t, "ivanpetrov", got.Contacts.GitHub)

	got, err = Resolve(doc, model.LangEN, NewProfileSet("exclude_phone", "exclude_email", "exclude_github", "exclude_telegram"))
	require.NoError(t, err)
	assert.True(t, got.Contacts.Empty())

	// exclude tags do not act as fragment profiles.
	assert.Equal(t, []string{"A"}, got.WorkExperience[0].Bullets)
}

func TestResolveWithoutOptionalSections(t *testing.T) {
	t.Parallel()
	doc := model.Document{Personal: model.Personal{Name: loc("Иван", "Ivan"), Surname: loc("Петров", "Petrov")}}

	got, err := Resolve(doc, model.LangEN, NewProfileSet("exclude_phone"))
	require.NoError(t, err)
	assert.Nil(t, got.Contacts)
	assert.Nil(t, got.AboutMe)
	assert.NotNil(t, got.Education)
	assert.Empty(t, got.Education)
	assert.Empty(t, got.WorkExperience)
}

func TestResolveRejectsUnsupportedLanguage(t *testing.T) {
	t.Parallel()
	_, err := Resolve(sampleDocument(), model.Language("fr"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnsupportedLanguage))
}

func TestResolveRejectsUnknownNode(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()
	doc.WorkExperience[0].Bullets = model.Sequence{model.Scalar("ok"), nil}

	_, err := Resolve(doc, model.LangEN, nil)
	require.ErrorIs(t, err, ErrUnsupportedNodeType)
	var nodeErr *UnsupportedNodeTypeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "work_experience[0].bullets[1]", nodeErr.Path)
}

func TestResolveDoesNotAliasSource(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()

	got, err := Resolve(doc, model.LangEN, NewProfileSet("teamlead"))
	require.NoError(t, err)

	got.WorkExperience[0].Bullets[0] = "changed"
	got.Contacts.Email = "changed"
	got.Education[0].FromDate.Time = got.Education[0].FromDate.AddDate(1, 0, 0)

	assert.Equal(t, model.Scalar("A"), doc.WorkExperience[0].Bullets[0])
	assert.Equal(t, "ivan@example.com", doc.Contacts.Email)
	assert.Equal(t, 2008, doc.Education[0].FromDate.Year())

	again, err := Resolve(doc, model.LangEN, NewProfileSet("teamlead"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, again.WorkExperience[0].Bullets)
}

func TestResolveConcurrentlyOnSharedDocument(t *testing.T) {
	t.Parallel()
	doc := sampleDocument()

	type variant struct {
		lang     model.Language
		profiles ProfileSet
	}
	variants := []variant{
		{model.LangEN, NewProfileSet()},
		{model.LangRU, NewProfileSet("teamlead", "exclude_phone")},
	}
	want := make([]model.Resume, len(variants))
	for i, v := range variants {
		got, err := Resolve(doc, v.lang, v.profiles)
		require.NoError(t, err)
		want[i] = got
	}

	const workers = 16
	results := make([]model.Resume, workers*len(variants))
	errs := make([]error, len(results))
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := variants[i%len(variants)]
			results[i], errs[i] = Resolve(doc, v.lang, v.profiles)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i%len(variants)], got, fmt.Sprintf("result %d", i))
	}
	assert.Equal(t, sampleDocument(), doc)
}

func TestProfileSetHelpers(t *testing.T) {
	t.Parallel()
	set := ParseProfiles(" teamlead, ,devops ")
	assert.Equal(t, []string{"devops", "teamlead"}, set.Sorted())
	assert.Equal(t, "devops,teamlead", set.String())
	assert.True(t, set.Intersects([]string{"x", "devops"}))
	assert.False(t, set.Intersects(nil))
	assert.True(t, set.Visible(nil))
	assert.False(t, set.Visible([]string{"x"}))
	assert.True(t, NewProfileSet("exclude_skype").Excludes(model.ChannelSkype))

	sets := ParseProfileSets("teamlead;devops,sre")
	require.Len(t, sets, 2)
	assert.Equal(t, "devops,sre", sets[1].String())

	sets = ParseProfileSets("")
	require.Len(t, sets, 1)
	assert.Empty(t, sets[0])

	sets = ParseProfileSets(";teamlead")
	require.Len(t, sets, 2)
	assert.Empty(t, sets[0])
	assert.Equal(t, "teamlead", sets[1].String())

	sets = ParseProfileSets("teamlead,devops;devops, teamlead;sre")
	require.Len(t, sets, 2)
	assert.Equal(t, "devops,teamlead", sets[0].String())
	assert.Equal(t, "sre", sets[1].String())
}
