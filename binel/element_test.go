package binel

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func names(elems []*Element) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.Name)
	}

	return out
}

func tagged(name, id string) *Element {
	e := New(name)
	e.SetAttr("id", Text(id))

	return e
}

func TestElement_InsertAndGet(t *testing.T) {
	root := New("Map")
	root.Insert(tagged("level", "1"))
	root.Insert(tagged("Filler", "f"))
	root.Insert(tagged("level", "2"))

	levels := root.Get("level")
	require.Len(t, levels, 2)
	id0, _ := levels[0].Attr("id")
	id1, _ := levels[1].Attr("id")
	require.Equal(t, Text("1"), id0)
	require.Equal(t, Text("2"), id1)

	require.Empty(t, root.Get("missing"))
	require.Equal(t, 3, root.ChildCount())
	require.Equal(t, []string{"level", "Filler"}, root.ChildNames())
}

func TestElement_ChildrenPreservesInsertionOrder(t *testing.T) {
	root := New("Map")
	for _, n := range []string{"b", "a", "b", "c", "a"} {
		root.Insert(New(n))
	}

	got := names(slices.Collect(root.Children()))
	require.Equal(t, []string{"b", "a", "b", "c", "a"}, got)
}

func TestElement_ChildrenStopsEarly(t *testing.T) {
	root := New("Map")
	root.Insert(New("a"))
	root.Insert(New("b"))

	count := 0
	for range root.Children() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestElement_Drain(t *testing.T) {
	root := New("Map")
	root.Insert(New("a"))
	root.Insert(New("b"))

	drained := root.Drain()
	require.Equal(t, []string{"a", "b"}, names(drained))
	require.Equal(t, 0, root.ChildCount())
	require.Empty(t, root.Get("a"))

	root.Insert(New("c"))
	require.Equal(t, []string{"c"}, root.ChildNames())
}

func TestElement_RemoveAll(t *testing.T) {
	root := New("Map")
	root.Insert(New("a"))
	root.Insert(New("b"))
	root.Insert(New("a"))

	removed := root.RemoveAll("a")
	require.Len(t, removed, 2)
	require.Equal(t, []string{"b"}, names(slices.Collect(root.Children())))
	require.Nil(t, root.RemoveAll("a"))
}

func TestElement_InsertPanics(t *testing.T) {
	tests := []struct {
		name   string
		insert func()
	}{
		{"nil", func() { New("Map").Insert(nil) }},
		{"self", func() {
			root := New("Map")
			root.Insert(root)
		}},
		{"empty name", func() { New("Map").Insert(New("")) }},
		{"shared child", func() {
			a, b := New("a"), New("b")
			shared := New("solids")
			a.Insert(shared)
			b.Insert(shared)
		}},
		{"same parent twice", func() {
			root := New("Map")
			child := New("level")
			root.Insert(child)
			root.Insert(child)
		}},
		{"ancestor into descendant", func() {
			root := New("Map")
			levels := New("levels")
			level := New("level")
			root.Insert(levels)
			levels.Insert(level)
			level.Insert(root)
		}},
		{"parent into child", func() {
			root := New("Map")
			child := New("levels")
			root.Insert(child)
			child.Insert(root)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Panics(t, tt.insert)
		})
	}
}

func TestElement_InsertFailureLeavesTreeIntact(t *testing.T) {
	a, b := New("a"), New("b")
	shared := New("solids")
	a.Insert(shared)

	require.Panics(t, func() { b.Insert(shared) })
	require.Equal(t, 0, b.ChildCount())
	require.Same(t, a, shared.Parent())
}

func TestElement_DetachedChildCanMove(t *testing.T) {
	a, b := New("a"), New("b")
	child := New("level")
	a.Insert(child)
	require.Same(t, a, child.Parent())

	drained := a.Drain()
	require.Nil(t, drained[0].Parent())
	b.Insert(child)
	require.Same(t, b, child.Parent())

	removed := b.RemoveAll("level")
	require.Len(t, removed, 1)
	require.Nil(t, child.Parent())
	a.Insert(child)
	require.Equal(t, 1, a.ChildCount())

	// a former ancestor may move below once detached
	root := New("Map")
	levels := New("levels")
	root.Insert(levels)
	root.Drain()
	levels.Insert(root)
	require.Same(t, levels, root.Parent())
}

func TestElement_Rename(t *testing.T) {
	root := New("Map")
	root.Insert(New("a"))
	b := New("b")
	root.Insert(b)
	root.Insert(New("c"))

	b.Rename("a")
	require.Equal(t, "a", b.Name)
	require.Empty(t, root.Get("b"))
	require.Len(t, root.Get("a"), 2)
	require.Same(t, b, root.Get("a")[1])
	require.Equal(t, []string{"a", "a", "c"}, names(slices.Collect(root.Children())))
	require.Equal(t, []string{"a", "c"}, root.ChildNames())

	// moves before an existing member of the target group
	first := root.Get("a")[0]
	first.Rename("c")
	require.Equal(t, []string{"c", "a", "c"}, names(slices.Collect(root.Children())))
	require.Same(t, first, root.Get("c")[0])

	detached := New("x")
	detached.Rename("y")
	require.Equal(t, "y", detached.Name)

	require.Panics(t, func() { b.Rename("") })
}

func TestElement_Text(t *testing.T) {
	e := New("solids")
	_, ok := e.Text()
	require.False(t, ok)

	e.SetAttr(InnerTextKey, Int(3))
	_, ok = e.Text()
	require.False(t, ok)

	e.SetText("000\n010")
	text, ok := e.Text()
	require.True(t, ok)
	require.Equal(t, "000\n010", text)
}

func TestElement_SetAttrOnZeroValue(t *testing.T) {
	var e Element
	e.SetAttr("x", Int(1))
	v, ok := e.Attr("x")
	require.True(t, ok)
	require.Equal(t, Int(1), v)
}

func TestElement_AttrKeysSorted(t *testing.T) {
	e := New("x")
	e.SetAttr("b", Int(1))
	e.SetAttr("a", Int(2))
	e.SetAttr("c", Int(3))
	require.Equal(t, []string{"a", "b", "c"}, e.AttrKeys())
}

func TestElement_Clone(t *testing.T) {
	root := New("Map")
	root.SetAttr("Width", Int(320))
	room := tagged("Room", "a-00")
	root.Insert(room)

	clone := root.Clone()
	require.True(t, Equal(root, clone))
	require.Nil(t, clone.Parent())
	require.Same(t, clone, clone.Get("Room")[0].Parent())

	// a clone of an inserted subtree can be inserted elsewhere
	other := New("Map")
	other.Insert(room.Clone())
	require.Equal(t, 1, other.ChildCount())

	clone.Get("Room")[0].SetAttr("id", Text("b-00"))
	clone.SetAttr("Width", Int(1))
	id, _ := room.Attr("id")
	require.Equal(t, Text("a-00"), id)
	w, _ := root.Attr("Width")
	require.Equal(t, Int(320), w)
}

func TestElement_PathHelpers(t *testing.T) {
	root := New("Map")
	meta := root.ChildMut("meta")
	meta.ChildMut("mode").SetAttr("Inventory", Text("Default"))
	root.Insert(New("level"))
	root.Insert(New("level"))

	require.Same(t, meta, root.ChildMut("meta"))
	require.Same(t, meta, root.OptionalChild("meta"))
	require.Nil(t, root.OptionalChild("level"))
	require.Nil(t, root.OptionalChild("nope"))

	mode := root.Nested("meta/mode")
	require.NotNil(t, mode)
	require.Nil(t, root.Nested("meta/missing"))
	require.Nil(t, root.Nested("level/anything"))

	v, ok := root.NestedAttr("meta/mode/Inventory")
	require.True(t, ok)
	require.Equal(t, Text("Default"), v)

	_, ok = root.NestedAttr("meta/nope/Inventory")
	require.False(t, ok)
}
