// Package lookup builds the frequency-ranked string table of a map file.
//
// Every element name and attribute key of a tree is a candidate, as is every
// Text attribute value except innerText payloads. Candidates are ranked by
// how often they occur, most frequent first, so the strings referenced most
// often get the lowest indices.
//
// Strings with equal counts keep the order in which a depth-first walk first
// met them, visiting each element's name, then its attributes sorted by key,
// then its children in order. Two encodes of the same tree therefore always
// produce the same table.
package lookup

import (
	"slices"

	"github.com/rhelmot/arborio-sub001/binel"
)

// Table is an ordered string table with reverse lookup.
//
// A Table is immutable once built and safe for concurrent reads.
type Table struct {
	strings []string
	index   map[string]int
	counts  map[string]int
}

type candidate struct {
	s     string
	count int
}

// Build walks root and returns its lookup table.
func Build(root *binel.Element) *Table {
	c := &counter{
		counts: make(map[string]int),
	}
	if root != nil {
		c.walk(root)
	}

	candidates := make([]candidate, len(c.order))
	for i, s := range c.order {
		candidates[i] = candidate{s: s, count: c.counts[s]}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return b.count - a.count
	})

	t := &Table{
		strings: make([]string, len(candidates)),
		index:   make(map[string]int, len(candidates)),
		counts:  c.counts,
	}
	for i, cand := range candidates {
		t.strings[i] = cand.s
		t.index[cand.s] = i
	}

	return t
}

// FromStrings wraps an existing table, e.g. one read from a file. Occurrence
// counts are unknown and reported as zero. If a string repeats, Index returns
// its first position.
func FromStrings(strs []string) *Table {
	t := &Table{
		strings: strs,
		index:   make(map[string]int, len(strs)),
		counts:  map[string]int{},
	}
	for i, s := range strs {
		if _, ok := t.index[s]; !ok {
			t.index[s] = i
		}
	}

	return t
}

// Strings returns the table in index order. The slice must not be modified.
func (t *Table) Strings() []string {
	return t.strings
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.strings)
}

// Index returns the position of s in the table.
func (t *Table) Index(s string) (int, bool) {
	i, ok := t.index[s]
	return i, ok
}

// Contains reports whether s is in the table.
func (t *Table) Contains(s string) bool {
	_, ok := t.index[s]
	return ok
}

// Count returns how many times s occurred in the tree the table was built from.
func (t *Table) Count(s string) int {
	return t.counts[s]
}

type counter struct {
	counts map[string]int
	order  []string
}

func (c *counter) see(s string) {
	if _, ok := c.counts[s]; !ok {
		c.order = append(c.order, s)
	}
	c.counts[s]++
}

func (c *counter) walk(e *binel.Element) {
	c.see(e.Name)

	for _, k := range e.AttrKeys() {
		c.see(k)
		if k == binel.InnerTextKey {
			continue
		}
		if text, ok := e.Attributes[k].AsText(); ok {
			c.see(text)
		}
	}

	for child := range e.Children() {
		c.walk(child)
	}
}
