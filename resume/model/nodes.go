package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Node is a fragment of localized or profiled text inside a Sequence.
// The set of implementations is closed: Scalar, LocalizedString,
// ProfiledLocalizedString and ProfiledString.
type Node interface {
	node()
}

// Scalar is a bare string fragment, identical in every language and visible under every profile.
type Scalar string

// LocalizedString holds one value per supported language.
type LocalizedString map[Language]string

// ProfiledLocalizedString is a LocalizedString shown only under the listed profiles.
// An empty profile list means the fragment is always shown.
type ProfiledLocalizedString struct {
	Text     LocalizedString
	Profiles []string
}

// ProfiledString is a single, non-localized string shown only under the listed profiles.
type ProfiledString struct {
	Value    string
	Profiles []string
}

// Sequence is an ordered list of fragments such as bullets or technology tags.
type Sequence []Node

func (Scalar) node()                  {}
func (LocalizedString) node()         {}
func (ProfiledLocalizedString) node() {}
func (ProfiledString) node()          {}

// In returns the value stored for lang.
func (s LocalizedString) In(lang Language) string {
	return s[lang]
}

// Missing lists supported languages whose value is empty.
func (s LocalizedString) Missing() []Language {
	var out []Language
	for _, lang := range SupportedLanguages {
		if s[lang] == "" {
			out = append(out, lang)
		}
	}
	return out
}

// UnmarshalYAML accepts either a language mapping or a plain scalar that
// applies to every supported language.
func (s *LocalizedString) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		out := make(LocalizedString, len(SupportedLanguages))
		for _, lang := range SupportedLanguages {
			out[lang] = value.Value
		}
		*s = out
		return nil
	case yaml.MappingNode:
		out := make(LocalizedString, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			lang := Language(key.Value)
			if !lang.Supported() {
				return fmt.Errorf("line %d: %w", key.Line, &UnsupportedLanguageError{Lang: key.Value})
			}
			if val.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: value for %q must be a string", val.Line, key.Value)
			}
			out[lang] = val.Value
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("line %d: localized string must be a string or a language mapping", value.Line)
	}
}

// UnmarshalYAML decodes each element by shape: a scalar becomes Scalar, a
// mapping with a "value" key becomes ProfiledString, a mapping with a
// "profiles" key becomes ProfiledLocalizedString and any other mapping a LocalizedString.
func (s *Sequence) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list", value.Line)
	}
	out := make(Sequence, 0, len(value.Content))
	for _, item := range value.Content {
		n, err := decodeNode(item)
		if err != nil {
			return err
		}
		out = append(out, n)
	}
	*s = out
	return nil
}

func decodeNode(item *yaml.Node) (Node, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		if item.Tag == "!!null" {
			return nil, fmt.Errorf("line %d: empty list element", item.Line)
		}
		return Scalar(item.Value), nil
	case yaml.MappingNode:
		return decodeMappingNode(item)
	default:
		return nil, fmt.Errorf("line %d: list element must be a string or a mapping", item.Line)
	}
}

func decodeMappingNode(item *yaml.Node) (Node, error) {
	var (
		value     *string
		profiles  []string
		tagged    bool
		localized = make(LocalizedString)
	)
	for i := 0; i+1 < len(item.Content); i += 2 {
		key, val := item.Content[i], item.Content[i+1]
		switch key.Value {
		case "value":
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: value must be a string", val.Line)
			}
			v := val.Value
			value = &v
		case "profiles":
			if err := val.Decode(&profiles); err != nil {
				return nil, fmt.Errorf("line %d: profiles must be a list of strings: %w", val.Line, err)
			}
			tagged = true
		default:
			lang := Language(key.Value)
			if !lang.Supported() {
				return nil, fmt.Errorf("line %d: %w", key.Line, &UnsupportedLanguageError{Lang: key.Value})
			}
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: value for %q must be a string", val.Line, key.Value)
			}
			localized[lang] = val.Value
		}
	}

	if value != nil {
		if len(localized) > 0 {
			return nil, fmt.Errorf("line %d: fragment mixes value with language keys", item.Line)
		}
		return ProfiledString{Value: *value, Profiles: profiles}, nil
	}
	if len(localized) == 0 {
		return nil, fmt.Errorf("line %d: fragment has no text", item.Line)
	}
	if tagged {
		return ProfiledLocalizedString{Text: localized, Profiles: profiles}, nil
	}
	return localized, nil
}
