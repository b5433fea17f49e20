package book

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/birthday-assistant/internal/config"
)

// Record holds one contact: a name, its phones in insertion order and an
// optional birthday. Records are owned by a single AddressBook and are not
// safe for concurrent use.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty contact.
func NewRecord(name string) (*Record, error) {
	if err := validate.Var(name, config.TagName); err != nil {
		return nil, ErrEmptyName
	}
	return &Record{name: name}, nil
}

// Name is the contact's key in the AddressBook.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the stored birthday, if any.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone appends a phone. Duplicates are allowed.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops the first phone equal to raw.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(raw)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, raw)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces the first phone equal to oldRaw with newRaw, keeping its
// position. newRaw is validated before anything is looked up, so a failed
// edit never modifies the record.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	i := r.indexOf(oldRaw)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, oldRaw)
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := r.indexOf(raw)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// AddBirthday sets or overwrites the birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthday stores an already validated birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// String renders the record as
// "Contact name: {name}, phones: {p1; p2}[, birthday: DD.MM.YYYY]".
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name)
	sb.WriteString(", phones: ")
	sb.WriteString(r.PhoneList())
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}

// PhoneList joins the phones with "; ", or returns the "No phones" marker.
func (r *Record) PhoneList() string {
	if len(r.phones) == 0 {
		return config.NoPhonesMarker
	}
	parts := make([]string, len(r.phones))
	for i, p := range r.phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, config.PhoneSeparator)
}

func (r *Record) indexOf(raw string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == raw })
}
