// Package service builds every requested (language, profile set, format)
// combination of a resume source and stores the artifacts.
package service

import (
	"strings"

	"cv-forge/internal/shared/util"
	"cv-forge/resume/model"
	"cv-forge/resume/render"
	"cv-forge/resume/resolve"
)

// DefaultProfileKey names the directory of targets built without profiles.
const DefaultProfileKey = "default"

// profileHashLen is the number of hex digits appended to lossy profile keys.
const profileHashLen = 12

// Target is one (language, profile set) combination and the formats built for it.
type Target struct {
	Language model.Language
	Profiles resolve.ProfileSet
	Formats  []render.Format
}

// ProfileKey is the storage path segment for the target's profile set.
// Tags that survive slugging unchanged are joined with "+". Any other set
// gets a "~<hash>" suffix, which Slug never emits, so distinct sets never
// share a key.
func (t Target) ProfileKey() string {
	if len(t.Profiles) == 0 {
		return DefaultProfileKey
	}
	tags := t.Profiles.Sorted()
	slugs := make([]string, 0, len(tags))
	lossless := true
	for _, tag := range tags {
		slug := util.Slug(tag)
		if slug != tag || slug == "" || strings.Contains(tag, "+") {
			lossless = false
		}
		if slug != "" {
			slugs = append(slugs, slug)
		}
	}
	key := strings.Join(slugs, "+")
	if lossless && key != DefaultProfileKey {
		return key
	}
	hash := util.HashKey(tags...)[:profileHashLen]
	if key == "" {
		return "~" + hash
	}
	return key + "~" + hash
}

func (t Target) String() string {
	return string(t.Language) + "/" + t.ProfileKey()
}

// Plan returns the cartesian product of langs and profileSets, language-major,
// each target carrying every format. An empty profileSets means one default set.
// Repeated languages or profile sets are planned once.
func Plan(langs []model.Language, profileSets []resolve.ProfileSet, formats []render.Format) []Target {
	if len(profileSets) == 0 {
		profileSets = []resolve.ProfileSet{resolve.NewProfileSet()}
	}
	profileSets = uniqueProfileSets(profileSets)
	targets := make([]Target, 0, len(langs)*len(profileSets))
	seenLang := make(map[model.Language]struct{}, len(langs))
	for _, lang := range langs {
		if _, dup := seenLang[lang]; dup {
			continue
		}
		seenLang[lang] = struct{}{}
		for _, profiles := range profileSets {
			targets = append(targets, Target{
				Language: lang,
				Profiles: profiles,
				Formats:  append([]render.Format(nil), formats...),
			})
		}
	}
	return targets
}

func uniqueProfileSets(sets []resolve.ProfileSet) []resolve.ProfileSet {
	seen := make(map[string]struct{}, len(sets))
	out := make([]resolve.ProfileSet, 0, len(sets))
	for _, set := range sets {
		id := util.HashKey(set.Sorted()...)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, set)
	}
	return out
}

// StorageKey is <build-id>/<lang>/<profiles|default>/<name>.
func StorageKey(buildID string, t Target, name string) string {
	return strings.Join([]string{buildID, string(t.Language), t.ProfileKey(), name}, "/")
}
