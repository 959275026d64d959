package binel

import (
	"fmt"
	"sort"
)

// Equal reports whether a and b are semantically equal: same name, same
// attribute set with identical kinds and values, and for every child name the
// same children in the same order. Relative order between children of
// different names is ignored.
func Equal(a, b *Element) bool {
	return Diff(a, b) == ""
}

// Diff describes the first difference between a and b as a path, or returns
// the empty string when they are equal.
func Diff(a, b *Element) string {
	if a == nil || b == nil {
		if a == b {
			return ""
		}

		return "/: one element is nil"
	}

	return diff("/"+a.Name, a, b)
}

func diff(here string, a, b *Element) string {
	if a.Name != b.Name {
		return fmt.Sprintf("%s: name %q != %q", here, a.Name, b.Name)
	}

	for _, k := range unionKeys(a.Attributes, b.Attributes) {
		va, okA := a.Attributes[k]
		vb, okB := b.Attributes[k]
		switch {
		case !okA:
			return fmt.Sprintf("%s.%s: missing on left", here, k)
		case !okB:
			return fmt.Sprintf("%s.%s: missing on right", here, k)
		case !va.Equal(vb):
			return fmt.Sprintf("%s.%s: %s(%s) != %s(%s)", here, k, va.Kind(), va, vb.Kind(), vb)
		}
	}

	for _, name := range unionKeys(a.groups, b.groups) {
		left, right := a.groups[name], b.groups[name]
		if len(left) != len(right) {
			return fmt.Sprintf("%s/%s: %d children != %d", here, name, len(left), len(right))
		}
		for i := range left {
			if d := diff(fmt.Sprintf("%s/%s[%d]", here, name, i), left[i], right[i]); d != "" {
				return d
			}
		}
	}

	return ""
}

func unionKeys[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	return keys
}
