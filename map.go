package fsa

// Hashable is a key of HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// maxLoad is the size/buckets ratio above which a HashMap doubles.
const maxLoad = 0.75

// HashMap is a chained hash map keyed by Hashable values; it lets subset
// construction key states by their frozen member sets.
type HashMap[T any] struct {
	buckets []*entry[T]
	size    int
	mask    uint64
}

type entry[T any] struct {
	key   Hashable
	value T
	next  *entry[T]
}

type hashMapOptions struct {
	capacity int
}

// HashMapOption configures NewHashMap.
type HashMapOption func(*hashMapOptions)

// WithCapacity sets the initial bucket count, rounded up to a power of two.
func WithCapacity(capacity int) HashMapOption {
	return func(o *hashMapOptions) {
		o.capacity = capacity
	}
}

func NewHashMap[T any](opts ...HashMapOption) *HashMap[T] {
	o := &hashMapOptions{
		capacity: 4,
	}
	for _, fn := range opts {
		fn(o)
	}
	capacity := 1
	for capacity < o.capacity {
		capacity <<= 1
	}

	return &HashMap[T]{
		buckets: make([]*entry[T], capacity),
		mask:    uint64(capacity - 1),
	}
}

// Set inserts or replaces the value for key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	index := key.Hash() & m.mask
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &entry[T]{key: key, value: value, next: m.buckets[index]}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > maxLoad {
		m.resize()
	}
}

func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	for e := m.buckets[key.Hash()&m.mask]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var empty T
	return empty, false
}

func (m *HashMap[T]) resize() {
	buckets := make([]*entry[T], len(m.buckets)<<1)
	mask := uint64(len(buckets) - 1)
	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			index := e.key.Hash() & mask
			buckets[index] = &entry[T]{key: e.key, value: e.value, next: buckets[index]}
		}
	}
	m.buckets = buckets
	m.mask = mask
}

func (m *HashMap[T]) Size() int {
	return m.size
}
