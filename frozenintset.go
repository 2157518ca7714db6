package fsa

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var _ Hashable = &FrozenIntSet{}

// FrozenIntSet is an immutable, sorted set of source states used as the key
// of a subset during subset construction. state is the DFA state the subset
// was assigned, or -1.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

// NewFrozenIntSet freezes values, which must be sorted and free of duplicates.
func NewFrozenIntSet(values []int, state int) *FrozenIntSet {
	hashCode := uint64(len(values))
	for _, v := range values {
		hashCode += mix32(v)
	}
	return &FrozenIntSet{values: values, state: state, hashCode: hashCode}
}

// freeze snapshots the members of set.
func freeze(set *bitset.BitSet) *FrozenIntSet {
	return NewFrozenIntSet(members(set), -1)
}

func (f *FrozenIntSet) Hash() uint64 {
	if f == nil {
		return 0
	}
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	o, ok := other.(*FrozenIntSet)
	if !ok {
		return false
	}
	if f == nil || o == nil {
		return f == o
	}
	return f.hashCode == o.hashCode && slices.Equal(f.values, o.values)
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}
