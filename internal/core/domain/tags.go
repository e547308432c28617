package domain

import "slices"

// A TagSet is a set of tags that keeps insertion order,
// so anything built from it is deterministic.
type TagSet []string

func NewTagSet(tags ...string) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.Add(t)
	}
	return s
}

func (s TagSet) Add(tag string) TagSet {
	if tag == "" || s.Has(tag) {
		return s
	}
	return append(s, tag)
}

func (s TagSet) Has(tag string) bool {
	return slices.Contains(s, tag)
}

func (s TagSet) Len() int {
	return len(s)
}

// Intersect counts the tags of s present in tags.
func (s TagSet) Intersect(tags []string) int {
	n := 0
	for _, t := range s {
		if slices.Contains(tags, t) {
			n++
		}
	}
	return n
}
