package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
)

// Generator turns an address book into the documents the assistant prints
// and publishes: the weekly greeting plan, the birthday calendar and the
// vCard export. It also imports vCards back into a book.
type Generator struct {
	Clock   Clock        // Source of "today".
	Fetcher VCardFetcher // Used by Import for http(s) sources.

	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D") attached to every
	// calendar event as a DISPLAY alarm. Empty disables alarms.
	ReminderTrigger string
}

// NewGenerator wires a Generator for production use.
func NewGenerator(reminder string) *Generator {
	return &Generator{
		Clock:           RealClock{},
		Fetcher:         NewHTTPFetcher(),
		ReminderTrigger: reminder,
	}
}

// Calendar renders every stored birthday as an iCalendar feed. Each contact
// gets one all-day event per year for the previous, current and next year.
func (g *Generator) Calendar(b *book.AddressBook) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	withBday := 0
	for r := range b.All() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		withBday++

		for _, e := range g.birthdayEvents(r.Name(), bday.Date(), now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyContacts, b.Len()),
			slog.Int(config.LogKeyFound, withBday),
		),
	)

	// An empty VCALENDAR is still a valid feed for subscribed clients.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// birthdayEvents builds the events of one contact around now's year,
// skipping years before the contact was born.
func (g *Generator) birthdayEvents(name string, birthDate, now time.Time) []*ical.Event {
	uidBase := eventUID(name, birthDate)
	currentYear := now.Year()

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < birthDate.Year() {
			continue
		}

		summary := fmt.Sprintf(config.FallbackSummaryAge, name, y-birthDate.Year())
		if y == birthDate.Year() {
			summary = fmt.Sprintf(config.FallbackSummary, name)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		// Feb 29 normalizes to March 1 in non-leap years.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStartProp)

		if g.ReminderTrigger != "" {
			addAlarm(event, g.ReminderTrigger, summary)
		}
		events = append(events, event)
	}
	return events
}

// eventUID is stable across renders so calendar clients update events in place.
func eventUID(name string, birthDate time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value: SetText would add VALUE=TEXT.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
