package optimistic

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

const tempIDPrefix = "temp-"

// TempID generates a locally-unique placeholder identifier for an entity the
// server has not assigned one yet.
func TempID() string {
	return tempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id was generated by TempID.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}

// Entity is any value the collection helpers can track. WithIdentity returns
// a copy carrying the given identifier, used to tag placeholders and to swap
// them for the server-assigned entity.
type Entity[T any] interface {
	Identity() string
	WithIdentity(id string) T
}

// Store holds one list of entities as explicit, mutex-guarded state. All
// speculation and reconciliation flows through it; nothing else mutates the
// list.
type Store[T Entity[T]] struct {
	mu    sync.Mutex
	items []T
}

func NewStore[T Entity[T]](items ...T) *Store[T] {
	s := &Store[T]{items: make([]T, len(items))}
	copy(s.items, items)
	return s
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current list length.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the entity with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Identity() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// replaceByID swaps the entity with the given id for item. No-op when absent.
func (s *Store[T]) replaceByID(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Identity() == id {
			s.items[i] = item
			return
		}
	}
}

// removeByID deletes the entity with the given id, returning it with its
// index so a revert can restore it in place.
func (s *Store[T]) removeByID(id string) (T, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Identity() == id {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return removed, i, true
		}
	}
	var zero T
	return zero, 0, false
}

// insertAt restores item at index, clamping to the current bounds.
func (s *Store[T]) insertAt(index int, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items[:index], append([]T{item}, s.items[index:]...)...)
}

// find returns the entity with the given id and its index.
func (s *Store[T]) find(id string) (T, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Identity() == id {
			return s.items[i], i, true
		}
	}
	var zero T
	return zero, 0, false
}
