package credits

import set "github.com/deckarep/golang-set/v2"

// BiMap is a many-to-many relation kept as a forward map (K to a set of V) and a backward
// map (V to a set of K). Add keeps both sides in step. Replace only rewrites the forward
// side of a key and leaves backward links of dropped values alone, so callers that need the
// two sides to mirror each other have to Unlink those values themselves.
//
// Link counts are kept as the sets change, so reading them is O(1).
//
// BiMap is not safe for concurrent use.
type BiMap[K comparable, V comparable] struct {
	forward  map[K]set.Set[V]
	backward map[V]set.Set[K]
	// sums of the forward and backward set sizes
	forwardLinks  int
	backwardLinks int
}

// Pair is one (key, value) link.
type Pair[K comparable, V comparable] struct {
	Key   K
	Value V
}

func NewBiMap[K comparable, V comparable]() *BiMap[K, V] {
	return &BiMap[K, V]{
		forward:  make(map[K]set.Set[V]),
		backward: make(map[V]set.Set[K]),
	}
}

// Add links k and v on both sides, creating the sets when needed. Adding an existing link is a no-op.
func (b *BiMap[K, V]) Add(k K, v V) {
	if _, ok := b.forward[k]; !ok {
		b.forward[k] = set.NewThreadUnsafeSet[V]()
	}
	if b.forward[k].Add(v) {
		b.forwardLinks++
	}

	b.linkBackward(k, v)
}

// Replace sets the forward set of k to exactly vs and links every v back to k. It returns
// the previous forward set of k, or nil when k was unknown.
func (b *BiMap[K, V]) Replace(k K, vs []V) set.Set[V] {
	previous := b.forward[k]
	if previous != nil {
		b.forwardLinks -= previous.Cardinality()
	}

	values := set.NewThreadUnsafeSet[V](vs...)
	b.forward[k] = values
	b.forwardLinks += values.Cardinality()
	for _, v := range vs {
		b.linkBackward(k, v)
	}

	return previous
}

func (b *BiMap[K, V]) linkBackward(k K, v V) {
	if _, ok := b.backward[v]; !ok {
		b.backward[v] = set.NewThreadUnsafeSet[K]()
	}
	if b.backward[v].Add(k) {
		b.backwardLinks++
	}
}

// Unlink drops k from the backward set of v. v stays known even if its set becomes empty.
func (b *BiMap[K, V]) Unlink(k K, v V) {
	if keys, ok := b.backward[v]; ok && keys.Contains(k) {
		keys.Remove(k)
		b.backwardLinks--
	}
}

// RemoveKey deletes the forward entry of k and drops k from every backward set. Values
// whose backward set becomes empty stay known. It returns false if k had no forward entry.
func (b *BiMap[K, V]) RemoveKey(k K) bool {
	values, ok := b.forward[k]
	if !ok {
		return false
	}

	b.forwardLinks -= values.Cardinality()
	delete(b.forward, k)
	for _, keys := range b.backward {
		if keys.Contains(k) {
			keys.Remove(k)
			b.backwardLinks--
		}
	}
	return true
}

// HasLink reports whether v is in the forward set of k.
func (b *BiMap[K, V]) HasLink(k K, v V) bool {
	values, ok := b.forward[k]
	return ok && values.Contains(v)
}

// LookupForward returns a copy of the forward set of k and whether k is known.
func (b *BiMap[K, V]) LookupForward(k K) (set.Set[V], bool) {
	if values, ok := b.forward[k]; ok {
		return values.Clone(), true
	}
	return set.NewThreadUnsafeSet[V](), false
}

// LookupBackward returns a copy of the backward set of v and whether v is known.
func (b *BiMap[K, V]) LookupBackward(v V) (set.Set[K], bool) {
	if keys, ok := b.backward[v]; ok {
		return keys.Clone(), true
	}
	return set.NewThreadUnsafeSet[K](), false
}

func (b *BiMap[K, V]) ForwardKeys() []K {
	keys := make([]K, 0, len(b.forward))
	for k := range b.forward {
		keys = append(keys, k)
	}
	return keys
}

func (b *BiMap[K, V]) BackwardKeys() []V {
	values := make([]V, 0, len(b.backward))
	for v := range b.backward {
		values = append(values, v)
	}
	return values
}

// ForwardLen is the number of keys with a forward entry.
func (b *BiMap[K, V]) ForwardLen() int {
	return len(b.forward)
}

// BackwardLen is the number of values with a backward entry, empty ones included.
func (b *BiMap[K, V]) BackwardLen() int {
	return len(b.backward)
}

// ForwardLinks is the sum of the forward set sizes.
func (b *BiMap[K, V]) ForwardLinks() int {
	return b.forwardLinks
}

// BackwardLinks is the sum of the backward set sizes.
func (b *BiMap[K, V]) BackwardLinks() int {
	return b.backwardLinks
}

// Orphans returns the backward links that have no forward counterpart, in no particular order.
func (b *BiMap[K, V]) Orphans() []Pair[K, V] {
	var orphans []Pair[K, V]
	for v, keys := range b.backward {
		keys.Each(func(k K) bool {
			if !b.HasLink(k, v) {
				orphans = append(orphans, Pair[K, V]{Key: k, Value: v})
			}
			return false
		})
	}
	return orphans
}
