package binel

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// InnerTextKey is the attribute that holds an element's textual payload.
const InnerTextKey = "innerText"

// Element is a named node of a map tree.
//
// An element has at most one parent. Insert enforces this, so a tree built
// through this API is always acyclic.
type Element struct {
	// Name identifies the element. Use Rename once the element has been
	// inserted; assigning Name directly leaves the parent's index stale.
	Name string
	// Attributes maps attribute names to typed values.
	Attributes map[string]Attr

	parent *Element
	order  []*Element            // all children, insertion order
	groups map[string][]*Element // children by name, insertion order within a name
}

// New returns an empty element with the given name.
func New(name string) *Element {
	return &Element{
		Name:       name,
		Attributes: make(map[string]Attr),
	}
}

// Insert appends child to e. Children sharing a name keep their relative
// insertion order.
//
// Insert panics if child is nil, has an empty name, already has a parent, or
// is e or one of e's ancestors. Detach a child with Drain or RemoveAll
// before inserting it elsewhere.
func (e *Element) Insert(child *Element) {
	if child == nil {
		panic("binel: Insert of nil element")
	}
	if child.Name == "" {
		panic("binel: Insert of element with empty name")
	}
	if child.parent != nil {
		panic(fmt.Sprintf("binel: Insert of %q which already has a parent", child.Name))
	}
	for anc := e; anc != nil; anc = anc.parent {
		if anc == child {
			panic(fmt.Sprintf("binel: Insert of %q into its own subtree", child.Name))
		}
	}

	if e.groups == nil {
		e.groups = make(map[string][]*Element)
	}
	child.parent = e
	e.order = append(e.order, child)
	e.groups[child.Name] = append(e.groups[child.Name], child)
}

// Parent returns the element e was inserted into, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Rename changes e's name and moves it to the new name group of its parent,
// keeping its position among all children.
func (e *Element) Rename(name string) {
	if name == e.Name {
		return
	}
	if name == "" {
		panic("binel: Rename to empty name")
	}

	p := e.parent
	if p == nil {
		e.Name = name
		return
	}

	old := slices.DeleteFunc(p.groups[e.Name], func(c *Element) bool { return c == e })
	if len(old) == 0 {
		delete(p.groups, e.Name)
	} else {
		p.groups[e.Name] = old
	}

	e.Name = name
	var group []*Element
	for _, c := range p.order {
		if c.Name == name {
			group = append(group, c)
		}
	}
	p.groups[name] = group
}

// Get returns the children named name in insertion order. The returned slice
// belongs to e and must not be modified.
func (e *Element) Get(name string) []*Element {
	return e.groups[name]
}

// Children yields every child in insertion order.
func (e *Element) Children() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, child := range e.order {
			if !yield(child) {
				return
			}
		}
	}
}

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int {
	return len(e.order)
}

// ChildNames returns the distinct child names in order of first insertion.
func (e *Element) ChildNames() []string {
	names := make([]string, 0, len(e.groups))
	seen := make(map[string]struct{}, len(e.groups))
	for _, child := range e.order {
		if _, ok := seen[child.Name]; ok {
			continue
		}
		seen[child.Name] = struct{}{}
		names = append(names, child.Name)
	}

	return names
}

// Drain removes every child from e and returns them in insertion order.
// Ownership of the returned elements passes to the caller.
func (e *Element) Drain() []*Element {
	drained := e.order
	e.order = nil
	e.groups = nil
	for _, c := range drained {
		c.parent = nil
	}

	return drained
}

// RemoveAll removes the children named name and returns them.
func (e *Element) RemoveAll(name string) []*Element {
	removed, ok := e.groups[name]
	if !ok {
		return nil
	}
	delete(e.groups, name)
	e.order = slices.DeleteFunc(e.order, func(c *Element) bool { return c.Name == name })
	for _, c := range removed {
		c.parent = nil
	}

	return removed
}

// Attr returns the attribute stored under key.
func (e *Element) Attr(key string) (Attr, bool) {
	a, ok := e.Attributes[key]
	return a, ok
}

// SetAttr stores value under key, replacing any previous value.
func (e *Element) SetAttr(key string, value Attr) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]Attr)
	}
	e.Attributes[key] = value
}

// AttrKeys returns the attribute names in lexical order.
func (e *Element) AttrKeys() []string {
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Text returns the innerText attribute when it is present and of kind Text.
func (e *Element) Text() (string, bool) {
	a, ok := e.Attributes[InnerTextKey]
	if !ok {
		return "", false
	}

	return a.AsText()
}

// SetText stores s as the innerText attribute.
func (e *Element) SetText(s string) {
	e.SetAttr(InnerTextKey, Text(s))
}

// Clone returns a deep copy of e. The copy has no parent.
func (e *Element) Clone() *Element {
	c := &Element{
		Name:       e.Name,
		Attributes: make(map[string]Attr, len(e.Attributes)),
	}
	for k, v := range e.Attributes {
		c.Attributes[k] = v
	}
	for _, child := range e.order {
		c.Insert(child.Clone())
	}

	return c
}

// File is one map file: the package name from its header and the root element.
type File struct {
	Package string
	Root    *Element
}

// NewFile returns a File with the given package and root.
func NewFile(pkg string, root *Element) *File {
	return &File{Package: pkg, Root: root}
}
