package mapfile

import (
	"fmt"
	"strings"

	"github.com/rhelmot/arborio-sub001/binel"
	"github.com/rhelmot/arborio-sub001/errs"
	"github.com/rhelmot/arborio-sub001/format"
	"github.com/rhelmot/arborio-sub001/lookup"
)

// Stats summarizes a tree as the Encoder would see it.
type Stats struct {
	Elements      int
	Attributes    int
	MaxDepth      int
	LookupEntries int
	// Tags counts attribute values by the tag they are written with.
	Tags map[format.AttrTag]int
}

// Analyze walks file and reports its shape and value encoding mix.
func Analyze(file *binel.File) (Stats, error) {
	if file == nil || file.Root == nil {
		return Stats{}, errs.ErrNilFile
	}

	table := lookup.Build(file.Root)
	st := Stats{
		LookupEntries: table.Len(),
		Tags:          make(map[format.AttrTag]int),
	}
	if err := st.walk(table, file.Root, 1); err != nil {
		return Stats{}, err
	}

	return st, nil
}

func (s *Stats) walk(table *lookup.Table, el *binel.Element, depth int) error {
	s.Elements++
	s.Attributes += len(el.Attributes)
	s.MaxDepth = max(s.MaxDepth, depth)

	for key, a := range el.Attributes {
		tag, err := TagFor(table, a)
		if err != nil {
			return fmt.Errorf("%q.%s: %w", el.Name, key, err)
		}
		s.Tags[tag]++
	}

	for child := range el.Children() {
		if err := s.walk(table, child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// String renders the stats one field per line, tags in numeric order.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "elements:       %d\n", s.Elements)
	fmt.Fprintf(&b, "attributes:     %d\n", s.Attributes)
	fmt.Fprintf(&b, "max depth:      %d\n", s.MaxDepth)
	fmt.Fprintf(&b, "lookup entries: %d\n", s.LookupEntries)
	for tag := format.TagBool; tag <= format.MaxAttrTag; tag++ {
		if n := s.Tags[tag]; n > 0 {
			fmt.Fprintf(&b, "  %-8s %d\n", tag.String()+":", n)
		}
	}

	return b.String()
}
