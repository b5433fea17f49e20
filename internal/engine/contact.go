package engine

import "time"

// BirthdayEntry describes one contact whose birthday falls inside the
// greeting window.
type BirthdayEntry struct {
	// Name is the contact's key in the address book.
	Name string

	// DateOfBirth is the stored birthday at UTC midnight.
	DateOfBirth time.Time

	// NextOccurrence is the first anniversary on or after today.
	NextOccurrence time.Time

	// DeltaDays is the number of whole days from today to NextOccurrence.
	DeltaDays int

	// GreetingDay is the weekday of NextOccurrence, with weekends moved to Monday.
	GreetingDay time.Weekday

	// AgeNext is the age the contact turns at NextOccurrence.
	AgeNext int
}
