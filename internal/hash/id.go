// Package hash provides xxHash64 based identifiers and lookup for column names.
package hash

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// NameIndex maps names to their position in an ordered name list.
//
// Lookups hash the name once and confirm the match against the stored name, so
// hash collisions never return a wrong position. When a name occurs more than
// once, the first position wins.
type NameIndex struct {
	names []string
	byID  map[uint64][]int
}

// NewNameIndex builds an index over names. The slice is retained, not copied.
func NewNameIndex(names []string) *NameIndex {
	idx := &NameIndex{
		names: names,
		byID:  make(map[uint64][]int, len(names)),
	}

	for i, name := range names {
		id := ID(name)
		idx.byID[id] = append(idx.byID[id], i)
	}

	return idx
}

// Lookup returns the first position of name.
func (idx *NameIndex) Lookup(name string) (int, bool) {
	for _, pos := range idx.byID[ID(name)] {
		if idx.names[pos] == name {
			return pos, true
		}
	}

	return -1, false
}

// Duplicates returns every name that occurs more than once, in order of its
// second occurrence.
func (idx *NameIndex) Duplicates() []string {
	var dups []string
	for i, name := range idx.names {
		if first, _ := idx.Lookup(name); first != i && !slices.Contains(dups, name) {
			dups = append(dups, name)
		}
	}

	return dups
}

// Len returns the number of indexed names.
func (idx *NameIndex) Len() int {
	return len(idx.names)
}
