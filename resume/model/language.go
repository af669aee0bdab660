package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language identifies one of the languages a resume source is written in.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
)

// SupportedLanguages lists every language a LocalizedString must carry.
var SupportedLanguages = []Language{LangRU, LangEN}

// ErrUnsupportedLanguage is the sentinel matched by UnsupportedLanguageError.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// UnsupportedLanguageError reports a language outside SupportedLanguages.
type UnsupportedLanguageError struct {
	Lang string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q, supported languages are %s", e.Lang, supportedList())
}

func (e *UnsupportedLanguageError) Unwrap() error {
	return ErrUnsupportedLanguage
}

// ParseLanguage normalizes raw and checks it against SupportedLanguages.
func ParseLanguage(raw string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(raw)))
	if !lang.Supported() {
		return "", &UnsupportedLanguageError{Lang: raw}
	}
	return lang, nil
}

// ParseLanguages parses a comma separated language list, keeping order and dropping duplicates.
func ParseLanguages(raw string) ([]Language, error) {
	var out []Language
	seen := make(map[Language]struct{})
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lang, err := ParseLanguage(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out, nil
}

// Supported reports whether l is one of SupportedLanguages.
func (l Language) Supported() bool {
	for _, s := range SupportedLanguages {
		if s == l {
			return true
		}
	}
	return false
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}

func (l Language) String() string {
	return string(l)
}

func supportedList() string {
	parts := make([]string, 0, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ", ")
}
