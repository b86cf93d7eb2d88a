package repository

import (
	"sync"

	"learnhub_client/pkg/kvstore"
)

// table is an ordered in-memory collection mirrored to one kvstore key after every change.
type table[T any] struct {
	mu    sync.RWMutex
	items []T
	key   string
	store *kvstore.Store
	id    func(T) string
	clone func(T) T
}

func newTable[T any](store *kvstore.Store, key string, id func(T) string, clone func(T) T) *table[T] {
	t := &table[T]{key: key, store: store, id: id, clone: clone}
	if store != nil {
		t.items = kvstore.Load[[]T](store, key, nil)
	}
	return t
}

// persist must be called with mu held.
func (t *table[T]) persist() {
	if t.store == nil {
		return
	}
	items := t.items
	if items == nil {
		items = []T{}
	}
	t.store.Save(t.key, items)
}

func (t *table[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, len(t.items))
	for i, it := range t.items {
		out[i] = t.clone(it)
	}
	return out
}

func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, it := range t.items {
		if match(it) {
			out = append(out, t.clone(it))
		}
	}
	return out
}

func (t *table[T]) first(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, it := range t.items {
		if match(it) {
			return t.clone(it), true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) get(id string) (T, bool) {
	return t.first(func(it T) bool { return t.id(it) == id })
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

func (t *table[T]) insert(item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, t.clone(item))
	t.persist()
}

// update applies fn to the item with id in place and returns the result.
func (t *table[T]) update(id string, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.items {
		if t.id(t.items[i]) == id {
			fn(&t.items[i])
			t.persist()
			return t.clone(t.items[i]), true
		}
	}
	var zero T
	return zero, false
}

// updateWhere applies fn to every matching item and reports how many changed.
func (t *table[T]) updateWhere(match func(T) bool, fn func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for i := range t.items {
		if match(t.items[i]) {
			fn(&t.items[i])
			n++
		}
	}
	if n > 0 {
		t.persist()
	}
	return n
}

// replace swaps the item with id for item at the same position.
func (t *table[T]) replace(id string, item T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.items {
		if t.id(t.items[i]) == id {
			t.items[i] = t.clone(item)
			t.persist()
			return true
		}
	}
	return false
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.items {
		if t.id(t.items[i]) == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			t.persist()
			return true
		}
	}
	return false
}

func (t *table[T]) replaceAll(items []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = make([]T, len(items))
	for i, it := range items {
		t.items[i] = t.clone(it)
	}
	t.persist()
}
