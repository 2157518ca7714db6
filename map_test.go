package fsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// pairKey hashes badly on purpose so that keys share buckets.
type pairKey struct {
	n    int
	name string
}

func (k pairKey) Hash() uint64 {
	return uint64(k.n + len(k.name))
}

func (k pairKey) Equals(other Hashable) bool {
	o, ok := other.(pairKey)
	return ok && k == o
}

func TestHashMap_SetGet(t *testing.T) {
	tests := []struct {
		name string
		keys []pairKey
	}{
		{"distinct buckets", []pairKey{{1, "a"}, {2, "a"}, {3, "a"}}},
		{"shared bucket", []pairKey{{1, "a"}, {0, "bb"}, {2, ""}}},
		{"growth", func() []pairKey {
			keys := make([]pairKey, 40)
			for i := range keys {
				keys[i] = pairKey{i, "s"}
			}
			return keys
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm := NewHashMap[int](WithCapacity(2))
			for i, k := range tt.keys {
				hm.Set(k, i)
			}
			assert.Equal(t, len(tt.keys), hm.Size())
			for i, k := range tt.keys {
				v, ok := hm.Get(k)
				assert.True(t, ok, "%v", k)
				assert.Equal(t, i, v)
			}
			_, ok := hm.Get(pairKey{-1, "missing"})
			assert.False(t, ok)
		})
	}
}

func TestHashMap_Replace(t *testing.T) {
	hm := NewHashMap[string]()
	hm.Set(pairKey{1, "a"}, "first")
	hm.Set(pairKey{1, "a"}, "second")

	v, _ := hm.Get(pairKey{1, "a"})
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, hm.Size())
}

func TestHashMap_Resize(t *testing.T) {
	hm := NewHashMap[int](WithCapacity(5))
	assert.Len(t, hm.buckets, 8)
	for i := 0; i < 6; i++ {
		hm.Set(pairKey{i, ""}, i)
	}
	assert.Len(t, hm.buckets, 8)
	hm.Set(pairKey{6, ""}, 6)
	assert.Len(t, hm.buckets, 16)

	assert.Len(t, NewHashMap[int](WithCapacity(0)).buckets, 1)
}

func TestHashMap_FrozenIntSetKeys(t *testing.T) {
	hm := NewHashMap[int]()
	hm.Set(NewFrozenIntSet([]int{0, 2}, -1), 7)

	v, ok := hm.Get(NewFrozenIntSet([]int{0, 2}, 3))
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = hm.Get(NewFrozenIntSet([]int{0, 1}, -1))
	assert.False(t, ok)

	// Same hash, other type.
	_, ok = hm.Get(pairKey{int(NewFrozenIntSet([]int{0, 2}, -1).Hash()), ""})
	assert.False(t, ok)
}
