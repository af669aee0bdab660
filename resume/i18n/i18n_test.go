package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cv-forge/resume/model"
)

func TestTranslatorHeadings(t *testing.T) {
	ru := New(model.LangRU)
	en := New(model.LangEN)

	assert.Equal(t, "Опыт работы", ru.T(KeyWorkExperience))
	assert.Equal(t, "Work experience", en.T(KeyWorkExperience))
	assert.Equal(t, "Резюме", ru.CVSuffix())
	assert.Equal(t, "CV", en.CVSuffix())
	assert.Equal(t, "Developer at Acme", en.T(KeyPositionAt, "Developer", "Acme"))
	assert.Equal(t, "Разработчик в Акме", ru.T(KeyPositionAt, "Разработчик", "Акме"))
}

func TestTranslatorInterval(t *testing.T) {
	en := New(model.LangEN)
	ru := New(model.LangRU)
	from := model.NewDate(2020, time.January, 1)
	to := model.NewDate(2022, time.March, 1)

	assert.Equal(t, "January 2020 – March 2022", en.Interval(from, to, false))
	assert.Equal(t, "January 2020 – Present", en.Interval(from, nil, true))
	assert.Equal(t, "Январь 2020 – Март 2022", ru.Interval(from, to, false))
	assert.Equal(t, "January 2020", en.Interval(from, nil, false))
	assert.Equal(t, "", en.Interval(nil, nil, false))
	assert.Equal(t, "Декабрь", ru.Month(time.December))
}
