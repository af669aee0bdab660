package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-forge/resume/model"
)

func both(text string) model.LocalizedString {
	return model.LocalizedString{model.LangRU: text, model.LangEN: text}
}

func validDocument() model.Document {
	return model.Document{
		Personal: model.Personal{Name: both("Ivan"), Surname: both("Petrov")},
		Education: []model.Education{{
			University: both("MSU"),
			Faculty:    both("CMC"),
			Speciality: both("Math"),
		}},
		WorkExperience: []model.WorkExperience{
			{
				Organisation: model.Organisation{Name: both("Acme")},
				Position:     both("Developer"),
				Bullets:      model.Sequence{model.Scalar("Wrote code")},
				FromDate:     model.NewDate(2015, 1, 1),
				ToDate:       model.NewDate(2018, 1, 1),
			},
			{
				Organisation: model.Organisation{Name: both("Initech")},
				Position:     both("Lead"),
				FromDate:     model.NewDate(2018, 2, 1),
				Current:      true,
			},
		},
	}
}

func TestEnforceAcceptsCompleteDocument(t *testing.T) {
	require.NoError(t, Enforce(validDocument()))
}

func TestEnforceReportsMissingTranslations(t *testing.T) {
	doc := validDocument()
	doc.WorkExperience[1].Position = model.LocalizedString{model.LangRU: "Руководитель"}
	doc.Personal.Surname = model.LocalizedString{}
	doc.WorkExperience[0].Bullets = append(doc.WorkExperience[0].Bullets, model.ProfiledLocalizedString{
		Text:     model.LocalizedString{model.LangEN: "Hired people"},
		Profiles: []string{"teamlead"},
	})

	err := Enforce(doc)
	var missing MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{
		"personal.surname.ru",
		"personal.surname.en",
		"work_experience[0].bullets[1].ru",
		"work_experience[1].position.en",
	}, missing.Fields)
	assert.Contains(t, err.Error(), "work_experience[1].position.en")
}

func TestEnforceChecksWorkDates(t *testing.T) {
	doc := validDocument()
	doc.WorkExperience[0].FromDate = nil
	doc.WorkExperience[1].ToDate = model.NewDate(2020, 1, 1)

	err := Enforce(doc)
	var missing MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{
		"work_experience[0].from_date",
		"work_experience[1].to_date (must be empty when current is set)",
	}, missing.Fields)
}

func TestEnforceRejectsReversedInterval(t *testing.T) {
	doc := validDocument()
	doc.WorkExperience[0].ToDate = model.NewDate(2014, 1, 1)

	err := Enforce(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work_experience[0].to_date (before from_date)")
}

func TestEnforceRejectsBlankFragments(t *testing.T) {
	doc := validDocument()
	doc.WorkExperience[1].Technologies = model.Sequence{model.Scalar("  "), model.ProfiledString{Profiles: []string{"devops"}}}

	err := Enforce(doc)
	var missing MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{
		"work_experience[1].technologies[0]",
		"work_experience[1].technologies[1].value",
	}, missing.Fields)
}
