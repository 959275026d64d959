// Package binel provides the in-memory tree of a map file.
//
// A map is a tree of named elements. Each Element carries strongly typed
// attributes (bool, int32, float32 or text) and an ordered collection of
// children that can also be looked up by name:
//
//	root := binel.New("Map")
//	root.SetAttr("Width", binel.Int(320))
//
//	room := binel.New("Room")
//	room.SetAttr("Name", binel.Text("a-00"))
//	root.Insert(room)
//
//	for _, r := range root.Get("Room") {
//	    name, _ := r.Attr("Name")
//	    fmt.Println(name)
//	}
//
// A File pairs the root element with the package name stored in the file
// header. Encoding and decoding live in the mapfile package; this package has
// no knowledge of the byte format.
//
// # Child ordering
//
// Children are kept in insertion order across all names, and Get returns the
// children of one name in insertion order. Encoders that iterate Children
// therefore reproduce the authoring order of a map exactly.
//
// # Ownership
//
// Every child is owned by exactly one parent. Insert refuses nil and refuses
// inserting an element into itself; inserting the same element under two
// parents, or an ancestor under its descendant, is a programming error that the
// package does not detect.
package binel
