package resolve

import (
	"sort"
	"strings"
)

// ExcludePrefix marks a profile tag that hides a contact channel, e.g. exclude_phone.
const ExcludePrefix = "exclude_"

// ProfileSet is the set of active profile tags for one resolution.
type ProfileSet map[string]struct{}

// NewProfileSet builds a set from tags, dropping blanks.
func NewProfileSet(tags ...string) ProfileSet {
	set := make(ProfileSet, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}

// ParseProfiles splits a comma separated tag list.
func ParseProfiles(raw string) ProfileSet {
	return NewProfileSet(strings.Split(raw, ",")...)
}

// ParseProfileSets splits several profile sets separated by ";". An empty
// input yields a single empty set so the default variant is always built.
// A set repeated in the input, in any tag order, is kept once.
func ParseProfileSets(raw string) []ProfileSet {
	var out []ProfileSet
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ";") {
		if strings.TrimSpace(part) == "" && len(out) > 0 {
			continue
		}
		set := ParseProfiles(part)
		if _, dup := seen[set.String()]; dup {
			continue
		}
		seen[set.String()] = struct{}{}
		out = append(out, set)
	}
	if len(out) == 0 {
		out = append(out, ProfileSet{})
	}
	return out
}

// Has reports membership of tag.
func (p ProfileSet) Has(tag string) bool {
	_, ok := p[tag]
	return ok
}

// Intersects reports whether any of tags is in the set.
func (p ProfileSet) Intersects(tags []string) bool {
	for _, tag := range tags {
		if p.Has(tag) {
			return true
		}
	}
	return false
}

// Excludes reports whether the contact channel is hidden by an exclude_<channel> tag.
func (p ProfileSet) Excludes(channel string) bool {
	return p.Has(ExcludePrefix + channel)
}

// Sorted returns the tags in lexical order.
func (p ProfileSet) Sorted() []string {
	out := make([]string, 0, len(p))
	for tag := range p {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted tags with commas. The empty set renders as "".
func (p ProfileSet) String() string {
	return strings.Join(p.Sorted(), ",")
}

// Visible applies the fragment rule: untagged fragments are always shown,
// tagged ones only when a tag is active.
func (p ProfileSet) Visible(tags []string) bool {
	return len(tags) == 0 || p.Intersects(tags)
}
