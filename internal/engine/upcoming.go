package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
)

// WorkWeek is the presentation order of greeting days.
var WorkWeek = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Greetings maps a weekday name ("Monday".."Friday") to the contacts to
// greet that day, in address book order. Days without anyone are absent.
type Greetings map[string][]string

// DayGreeting is one line of the weekly greeting plan.
type DayGreeting struct {
	Day   string
	Names []string
}

// Ordered lists the non-empty days from Monday to Friday.
func (g Greetings) Ordered() []DayGreeting {
	var out []DayGreeting
	for _, d := range WorkWeek {
		if names := g[d.String()]; len(names) > 0 {
			out = append(out, DayGreeting{Day: d.String(), Names: names})
		}
	}
	return out
}

// Upcoming returns the contacts whose next birthday is within
// config.UpcomingWindowDays of today (today included), in address book order.
func Upcoming(b *book.AddressBook, today time.Time) []BirthdayEntry {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var entries []BirthdayEntry
	for r := range b.All() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		next := bday.NextOnOrAfter(start)
		delta := daysBetween(start, next)
		if delta < 0 || delta >= config.UpcomingWindowDays {
			continue
		}

		entries = append(entries, BirthdayEntry{
			Name:           r.Name(),
			DateOfBirth:    bday.Date(),
			NextOccurrence: next,
			DeltaDays:      delta,
			GreetingDay:    greetingDay(next),
			AgeNext:        next.Year() - bday.Date().Year(),
		})
	}
	return entries
}

// UpcomingBirthdays groups Upcoming by greeting day.
func UpcomingBirthdays(b *book.AddressBook, today time.Time) Greetings {
	g := Greetings{}
	for _, e := range Upcoming(b, today) {
		day := e.GreetingDay.String()
		g[day] = append(g[day], e.Name)
	}
	return g
}

// greetingDay moves weekend dates to the following Monday's name.
func greetingDay(t time.Time) time.Weekday {
	switch wd := t.Weekday(); wd {
	case time.Saturday, time.Sunday:
		return time.Monday
	default:
		return wd
	}
}

// daysBetween expects both arguments at UTC midnight.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours()) / config.HoursPerDay
}

// Upcoming computes the greeting plan for the clock's current date.
func (g *Generator) Upcoming(b *book.AddressBook) Greetings {
	now := g.Clock.Now()
	greetings := UpcomingBirthdays(b, now)

	slog.Debug(config.MsgUpcoming,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyContacts, b.Len(),
		config.LogKeyUpcoming, len(greetings),
	)
	return greetings
}
