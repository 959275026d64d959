package binel

import "strings"

// OptionalChild returns the only child named name, or nil when there are none
// or more than one.
func (e *Element) OptionalChild(name string) *Element {
	children := e.groups[name]
	if len(children) != 1 {
		return nil
	}

	return children[0]
}

// ChildMut returns the first child named name, creating and inserting an
// empty one if none exists. It panics if name is empty.
func (e *Element) ChildMut(name string) *Element {
	if children := e.groups[name]; len(children) > 0 {
		return children[0]
	}
	child := New(name)
	e.Insert(child)

	return child
}

// Nested follows a slash-separated path of single children, e.g.
// "meta/mode". It returns nil if any step is missing or ambiguous.
func (e *Element) Nested(path string) *Element {
	cur := e
	for name := range strings.SplitSeq(path, "/") {
		cur = cur.OptionalChild(name)
		if cur == nil {
			return nil
		}
	}

	return cur
}

// NestedAttr resolves "a/b/key" to the attribute key of the element at a/b.
// A path without a slash looks up an attribute of e itself.
func (e *Element) NestedAttr(path string) (Attr, bool) {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return e.Attr(path)
	}
	owner := e.Nested(path[:idx])
	if owner == nil {
		return Attr{}, false
	}

	return owner.Attr(path[idx+1:])
}
