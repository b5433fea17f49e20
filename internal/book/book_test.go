package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-assistant/internal/book"
)

func names(b *book.AddressBook) []string {
	var out []string
	for r := range b.All() {
		out = append(out, r.Name())
	}
	return out
}

func TestAddressBook_AddFind(t *testing.T) {
	b := book.New()
	john := newRecord(t, "John", "1234567890")
	b.Add(john)

	got, ok := b.Find("John")
	require.True(t, ok)
	assert.Same(t, john, got)

	_, ok = b.Find("john")
	assert.False(t, ok, "Lookup is case sensitive")
	assert.Equal(t, 1, b.Len())
}

func TestAddressBook_AddReplacesExisting(t *testing.T) {
	b := book.New()
	b.Add(newRecord(t, "John", "1234567890"))
	b.Add(newRecord(t, "Jane"))

	replacement := newRecord(t, "John", "5555555555")
	b.Add(replacement)

	got, ok := b.Find("John")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"John", "Jane"}, names(b), "Replaced record keeps its position")
}

func TestAddressBook_Delete(t *testing.T) {
	b := book.New()
	b.Add(newRecord(t, "John"))
	b.Add(newRecord(t, "Jane"))

	require.NoError(t, b.Delete("Jane"))
	_, ok := b.Find("Jane")
	assert.False(t, ok)
	assert.Equal(t, []string{"John"}, names(b))

	err := b.Delete("Jane")
	assert.ErrorIs(t, err, book.ErrNotFound)
	assert.ErrorIs(t, err, book.ErrContactNotFound)
}

func TestAddressBook_All(t *testing.T) {
	b := book.New()
	assert.Empty(t, names(b))

	for _, n := range []string{"Charlie", "Alice", "Bob"} {
		b.Add(newRecord(t, n))
	}

	assert.Equal(t, []string{"Charlie", "Alice", "Bob"}, names(b))
	assert.Equal(t, names(b), names(b), "Iteration is restartable")

	var first []string
	for r := range b.All() {
		first = append(first, r.Name())
		break
	}
	assert.Equal(t, []string{"Charlie"}, first, "Early break stops the sequence")
}
