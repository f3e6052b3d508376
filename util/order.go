package util

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// OrderedMap is a map whose keys, values and entries are listed in key order.
// Report sections that must appear sorted by name are collected in one.
//
// By default inserting a key twice is an error. AllowOverrides turns the map
// into a last-wins map.
type OrderedMap[K constraints.Ordered, V any] struct {
	data            map[K]V
	forbidOverrides bool
}

// OrderedMapEntry is a single (key, value) pair of the map.
type OrderedMapEntry[K constraints.Ordered, V any] struct {
	Key   K
	Value V
}

// NewOrderedMap returns an empty map that rejects overrides.
func NewOrderedMap[K constraints.Ordered, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{
		data:            map[K]V{},
		forbidOverrides: true,
	}
}

// AllowOverrides makes later inserts of a key replace the earlier value.
func (m *OrderedMap[K, V]) AllowOverrides() {
	m.forbidOverrides = false
}

// Insert stores value under key.
func (m *OrderedMap[K, V]) Insert(key K, value V) error {
	if m.forbidOverrides {
		if _, ok := m.data[key]; ok {
			return errors.Errorf("duplicate key %v", key)
		}
	}
	m.data[key] = value
	return nil
}

// Lookup is the equivalent of `v, ok := m[k]`.
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Len returns the number of keys.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.data)
}

// Keys returns the sorted keys.
func (m *OrderedMap[K, V]) Keys() []K {
	return OrderedKeys(m.data)
}

// Values returns the values ordered by their keys.
func (m *OrderedMap[K, V]) Values() []V {
	return MappedSlice(m.Keys(), func(k K) V { return m.data[k] })
}

// Entries returns the (key, value) pairs ordered by key.
func (m *OrderedMap[K, V]) Entries() []OrderedMapEntry[K, V] {
	return MappedSlice(m.Keys(), func(k K) OrderedMapEntry[K, V] {
		return OrderedMapEntry[K, V]{Key: k, Value: m.data[k]}
	})
}

// OrderedSlice returns a sorted copy of values.
func OrderedSlice[V constraints.Ordered](values []V) []V {
	result := make([]V, len(values))
	copy(result, values)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// SliceOrderedBy returns a copy of values sorted by key. Values with equal
// keys keep their relative order. The key of every value is computed once.
func SliceOrderedBy[V any, K constraints.Ordered](values []V, key func(v *V) K) []V {
	tmp := make([]keyedValue[K, V], len(values))
	for i := range values {
		tmp[i] = keyedValue[K, V]{key(&values[i]), values[i]}
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].key < tmp[j].key })
	return MappedSlice(tmp, func(kv keyedValue[K, V]) V { return kv.value })
}

type keyedValue[K constraints.Ordered, V any] struct {
	key   K
	value V
}

// OrderedKeys returns the sorted keys of m.
func OrderedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return OrderedSlice(keys)
}
