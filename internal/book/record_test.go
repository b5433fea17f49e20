package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-assistant/internal/book"
)

// newRecord is a test helper that builds a record with the given phones.
func newRecord(t *testing.T, name string, phones ...string) *book.Record {
	t.Helper()
	r, err := book.NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	return r
}

func phoneStrings(r *book.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestNewRecord_EmptyName(t *testing.T) {
	r, err := book.NewRecord("")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, book.ErrValidation)
	assert.ErrorIs(t, err, book.ErrEmptyName)
}

func TestRecord_AddPhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555", "1234567890")
	assert.Equal(t, []string{"1234567890", "5555555555", "1234567890"}, phoneStrings(r), "Duplicates are kept in insertion order")

	err := r.AddPhone("12345")
	assert.ErrorIs(t, err, book.ErrInvalidPhone)
	assert.Len(t, r.Phones(), 3, "Invalid phone must not be appended")
}

func TestRecord_Phones_ReturnsCopy(t *testing.T) {
	r := newRecord(t, "John", "1234567890")
	phones := r.Phones()
	phones[0], _ = book.NewPhone("0000000000")

	assert.Equal(t, []string{"1234567890"}, phoneStrings(r))
}

func TestRecord_RemovePhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555", "1234567890")

	require.NoError(t, r.RemovePhone("1234567890"))
	assert.Equal(t, []string{"5555555555", "1234567890"}, phoneStrings(r), "Only the first match is removed")

	err := r.RemovePhone("9999999999")
	assert.ErrorIs(t, err, book.ErrNotFound)
	assert.ErrorIs(t, err, book.ErrPhoneNotFound)
	assert.Len(t, r.Phones(), 2)
}

func TestRecord_EditPhone(t *testing.T) {
	t.Run("Replaces in place", func(t *testing.T) {
		r := newRecord(t, "John", "1234567890", "5555555555")
		require.NoError(t, r.EditPhone("1234567890", "1112223333"))
		assert.Equal(t, []string{"1112223333", "5555555555"}, phoneStrings(r))
	})

	t.Run("Invalid new phone leaves record unchanged", func(t *testing.T) {
		r := newRecord(t, "John", "1234567890", "5555555555")
		err := r.EditPhone("1234567890", "bad")
		assert.ErrorIs(t, err, book.ErrValidation)
		assert.Equal(t, []string{"1234567890", "5555555555"}, phoneStrings(r))
	})

	t.Run("Validation wins over lookup", func(t *testing.T) {
		r := newRecord(t, "John", "1234567890")
		err := r.EditPhone("0000000000", "bad")
		assert.ErrorIs(t, err, book.ErrValidation)
		assert.NotErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("Missing old phone", func(t *testing.T) {
		r := newRecord(t, "John", "1234567890")
		err := r.EditPhone("0000000000", "1112223333")
		assert.ErrorIs(t, err, book.ErrPhoneNotFound)
		assert.Equal(t, []string{"1234567890"}, phoneStrings(r))
	})
}

func TestRecord_FindPhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")

	p, ok := r.FindPhone("5555555555")
	assert.True(t, ok)
	assert.Equal(t, "5555555555", p.String())

	_, ok = r.FindPhone("0000000000")
	assert.False(t, ok)
}

func TestRecord_AddBirthday(t *testing.T) {
	r := newRecord(t, "John")

	_, ok := r.Birthday()
	assert.False(t, ok, "Birthday is absent until set")

	require.NoError(t, r.AddBirthday("15.06.1990"))
	require.NoError(t, r.AddBirthday("16.07.1991"), "Setting again overwrites")

	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "16.07.1991", b.String())

	assert.ErrorIs(t, r.AddBirthday("31.02.1990"), book.ErrInvalidBirthday)
	b, _ = r.Birthday()
	assert.Equal(t, "16.07.1991", b.String(), "Failed parse keeps the previous birthday")
}

func TestRecord_String(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555", r.String())

	require.NoError(t, r.AddBirthday("15.06.1990"))
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555, birthday: 15.06.1990", r.String())

	empty := newRecord(t, "Jane")
	assert.Equal(t, "Contact name: Jane, phones: No phones", empty.String())
}
