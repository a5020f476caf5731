// Package fields provides the metadata field identifiers and the ordered,
// deduplicated field sets the resolver computes for each work type.
package fields

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Field names a metadata property, e.g. "title" or "date_created".
type Field string

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// IsValid reports whether the field name is a lower snake_case identifier.
func (f Field) IsValid() bool {
	return namePattern.MatchString(string(f))
}

// Set is an ordered list of fields. Order is significant: it is the render
// order for forms, facets and result lists.
type Set []Field

// ParseSet converts plain strings into a Set without validating it.
func ParseSet(names []string) Set {
	if names == nil {
		return nil
	}
	s := make(Set, len(names))
	for i, n := range names {
		s[i] = Field(strings.TrimSpace(n))
	}
	return s
}

// Canonical concatenates the lists, sorts the result by field name and
// removes duplicates.
func Canonical(lists ...Set) Set {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make(Set, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	// Adjacent duplicates only, the list is sorted.
	uniq := out[:0]
	for _, f := range out {
		if len(uniq) > 0 && uniq[len(uniq)-1] == f {
			continue
		}
		uniq = append(uniq, f)
	}
	return uniq
}

// Validate returns an error naming the first malformed or duplicated field.
func (s Set) Validate() error {
	seen := make(map[Field]bool, len(s))
	for _, f := range s {
		if !f.IsValid() {
			return fmt.Errorf("malformed field name %q", f)
		}
		if seen[f] {
			return fmt.Errorf("duplicate field %q", f)
		}
		seen[f] = true
	}
	return nil
}

// Contains reports whether f is in the set.
func (s Set) Contains(f Field) bool {
	for _, x := range s {
		if x == f {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every field of other is in s.
func (s Set) ContainsAll(other Set) bool {
	return len(other.Without(s)) == 0
}

// Intersect returns the fields of s that are also in other, in s order.
func (s Set) Intersect(other Set) Set {
	idx := other.index()
	var out Set
	for _, f := range s {
		if idx[f] {
			out = append(out, f)
		}
	}
	return out
}

// Without returns the fields of s that are not in other, in s order.
func (s Set) Without(other Set) Set {
	idx := other.index()
	var out Set
	for _, f := range s {
		if !idx[f] {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy that shares no storage with s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Strings returns the field names as plain strings.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = string(f)
	}
	return out
}

// Match returns the fields whose names match the glob pattern, e.g. "date_*"
// or "{aip,dip}_*". The order of s is kept.
func (s Set) Match(pattern string) (Set, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid field pattern %q", pattern)
	}
	var out Set
	for _, f := range s {
		ok, err := doublestar.Match(pattern, string(f))
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s Set) index() map[Field]bool {
	idx := make(map[Field]bool, len(s))
	for _, f := range s {
		idx[f] = true
	}
	return idx
}
