package book

import (
	"fmt"
	"iter"
	"slices"
)

// AddressBook stores Records keyed by name and iterates them in the order
// they were first added.
//
// It has no internal locking: callers that share a book between goroutines
// must serialize every mutation themselves.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add stores r under its name. An existing record with the same name is
// replaced and keeps its place in the iteration order.
func (b *AddressBook) Add(r *Record) {
	if _, exists := b.records[r.name]; !exists {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find looks a record up by exact name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return nil
}

// Len reports the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// All yields the records in insertion order. Each call starts a fresh pass.
func (b *AddressBook) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, name := range b.order {
			r, ok := b.records[name]
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}
