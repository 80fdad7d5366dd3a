package credits

import (
	"fmt"
	"sort"
	"strings"

	set "github.com/deckarep/golang-set/v2"
)

// Keyed is implemented by the values stored in the index. Key is their identity.
type Keyed interface {
	Key() string
}

// Set is an immutable snapshot of entities, identified by their keys. It is copied out of
// the index, so it neither changes when the index does nor lets callers change the index.
// The zero Set is empty.
type Set[T Keyed] struct {
	keys  set.Set[string]
	items map[string]T
}

// NewSet builds a Set from items. Items sharing a key collapse into the first one.
func NewSet[T Keyed](items ...T) Set[T] {
	s := Set[T]{
		keys:  set.NewThreadUnsafeSet[string](),
		items: make(map[string]T, len(items)),
	}
	for _, item := range items {
		if s.keys.Add(item.Key()) {
			s.items[item.Key()] = item
		}
	}
	return s
}

// snapshot resolves keys against the canonical entities. Unknown keys are skipped.
func snapshot[T Keyed](keys []string, canonical map[string]T) Set[T] {
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		if item, ok := canonical[key]; ok {
			items = append(items, item)
		}
	}
	return NewSet(items...)
}

func (s Set[T]) Cardinality() int {
	return len(s.items)
}

func (s Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains reports whether an item with the same key is in the set.
func (s Set[T]) Contains(item T) bool {
	return s.ContainsKey(item.Key())
}

func (s Set[T]) ContainsKey(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Get returns the item stored under key.
func (s Set[T]) Get(key string) (T, bool) {
	item, ok := s.items[key]
	return item, ok
}

// Keys returns the keys in ascending order.
func (s Set[T]) Keys() []string {
	if s.keys == nil {
		return []string{}
	}
	keys := s.keys.ToSlice()
	sort.Strings(keys)
	return keys
}

// ToSlice returns the items ordered by key.
func (s Set[T]) ToSlice() []T {
	keys := s.Keys()
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		items = append(items, s.items[key])
	}
	return items
}

func (s Set[T]) String() string {
	return fmt.Sprintf("Set{%s}", strings.Join(s.Keys(), ", "))
}
