package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when no record with the requested id exists.
var ErrNotFound = errors.New("record not found")

// Record is anything held in a Collection. Ids are opaque strings,
// unique within a collection and immutable after insert.
type Record interface {
	GetID() string
}

// ============================
// 🗂 In-memory Collection
//
// Collection keeps records in insertion order and scans linearly by
// id. The dataset is small and memory-resident, so no secondary index
// is maintained. Every operation takes the collection lock; create and
// update are single critical sections.
type Collection[T Record] struct {
	mu    sync.RWMutex
	name  string
	items []T
}

func NewCollection[T Record](name string) *Collection[T] {
	return &Collection[T]{name: name}
}

func (c *Collection[T]) Name() string { return c.name }

// List returns a copy of the collection in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) FindByID(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Filter returns all records for which keep returns true.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) Insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Replace swaps the record with the given id for a new one in place.
func (c *Collection[T]) Replace(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items[i] = item
			return nil
		}
	}
	return ErrNotFound
}

// Update applies merge to the record with the given id and writes the
// result back, all under one lock. Existence is re-checked inside the
// critical section so a concurrent delete cannot race the write.
func (c *Collection[T]) Update(id string, merge func(T) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items[i] = merge(c.items[i])
			return c.items[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// RemoveByID deletes the record and returns its pre-removal snapshot.
func (c *Collection[T]) RemoveByID(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			removed := c.items[i]
			c.items = append(c.items[:i], c.items[i+1:]...)
			return removed, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Clear empties the collection and returns how many records it held.
func (c *Collection[T]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = nil
	return n
}
