package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
	"github.com/tartampluch/birthday-assistant/internal/engine"
)

// hello answers the greeting command.
func (a *Assistant) hello(context.Context, []string) (string, error) {
	return a.Catalog.Msg(config.TKeyHello, nil), nil
}

// help lists every command with its arguments.
func (a *Assistant) help(context.Context, []string) (string, error) {
	return a.Catalog.Msg(config.TKeyHelp, nil), nil
}

// findRecord is the lookup every contact command starts with.
func (a *Assistant) findRecord(name string) (*book.Record, error) {
	r, ok := a.Book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", book.ErrContactNotFound, name)
	}
	return r, nil
}

// addContact creates the contact on first use, then appends the phone.
// A new contact is only stored once its first phone is valid.
func (a *Assistant) addContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, config.UsageAdd); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]

	if r, ok := a.Book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		return a.Catalog.Msg(config.TKeyContactUpdated, nil), nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	a.Book.Add(r)
	return a.Catalog.Msg(config.TKeyContactAdded, nil), nil
}

// changeContact replaces one phone of a contact, keeping its position.
func (a *Assistant) changeContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 3, config.UsageChange); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return a.Catalog.Msg(config.TKeyPhoneUpdated, nil), nil
}

// showPhone prints the phones of a contact in insertion order.
func (a *Assistant) showPhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1, config.UsagePhone); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	if len(r.Phones()) == 0 {
		return a.Catalog.Msg(config.TKeyNoPhones, nil), nil
	}
	return a.Catalog.Msg(config.TKeyPhones, map[string]any{
		"Name":   r.Name(),
		"Phones": r.PhoneList(),
	}), nil
}

// removePhone drops the first matching phone of a contact.
func (a *Assistant) removePhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, config.UsageRemovePhone); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return a.Catalog.Msg(config.TKeyPhoneRemoved, nil), nil
}

// deleteContact removes a contact and its birthday.
func (a *Assistant) deleteContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1, config.UsageDelete); err != nil {
		return "", err
	}
	if err := a.Book.Delete(args[0]); err != nil {
		return "", err
	}
	return a.Catalog.Msg(config.TKeyContactDeleted, nil), nil
}

// showAll prints one line per contact in the order they were added.
func (a *Assistant) showAll(context.Context, []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.Catalog.Msg(config.TKeyBookEmpty, nil), nil
	}
	lines := make([]string, 0, a.Book.Len())
	for r := range a.Book.All() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n"), nil
}

// addBirthday sets or overwrites the birthday of an existing contact.
func (a *Assistant) addBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, config.UsageAddBirthday); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return a.Catalog.Msg(config.TKeyBirthdayAdded, nil), nil
}

// showBirthday prints the stored birthday as DD.MM.YYYY.
func (a *Assistant) showBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 1, config.UsageShowBirthday); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	bday, ok := r.Birthday()
	if !ok {
		return "", ErrNoBirthday
	}
	return a.Catalog.Msg(config.TKeyBirthdayShow, map[string]any{
		"Name":     r.Name(),
		"Birthday": bday.String(),
	}), nil
}

// birthdays lists the greeting plan from Monday to Friday.
func (a *Assistant) birthdays(context.Context, []string) (string, error) {
	days := a.Generator.Upcoming(a.Book).Ordered()
	if len(days) == 0 {
		return a.Catalog.Msg(config.TKeyNoUpcoming, nil), nil
	}

	lines := []string{a.Catalog.Msg(config.TKeyUpcomingHeader, nil)}
	for _, d := range days {
		lines = append(lines, a.Catalog.Msg(config.TKeyUpcomingLine, map[string]any{
			"Day":   d.Day,
			"Names": strings.Join(d.Names, config.NameSeparator),
		}))
	}
	return strings.Join(lines, "\n"), nil
}

// export prints the book as vCard 4.0 text.
func (a *Assistant) export(context.Context, []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.Catalog.Msg(config.TKeyBookEmpty, nil), nil
	}
	var buf bytes.Buffer
	if err := a.Generator.Export(a.Book, &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

// calendar prints the iCalendar feed of every stored birthday.
func (a *Assistant) calendar(context.Context, []string) (string, error) {
	data, err := a.Generator.Calendar(a.Book)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// importContacts merges a vCard file or URL. With a user, the password is
// read from the credential store; a missing password means an anonymous
// request with only the user name.
func (a *Assistant) importContacts(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", &usageError{usage: config.UsageImport}
	}

	src := engine.ImportSource{Location: args[0]}
	if len(args) == 2 && src.IsRemote() {
		src.User = args[1]
		if a.Credentials != nil {
			if p, err := a.Credentials.Get(src.User); err == nil {
				src.Pass = p
			} else {
				slog.Debug(config.MsgPassFail,
					config.LogKeyComponent, config.CompAssistant,
					config.LogKeyUser, src.User,
					config.LogKeyError, err,
				)
			}
		}
	}

	stats, err := a.Generator.Import(ctx, a.Book, src)
	if err != nil {
		return "", &importError{err: err}
	}
	return a.Catalog.Msg(config.TKeyImported, map[string]any{"Count": stats.Imported}), nil
}

// login stores a password for later authenticated imports.
func (a *Assistant) login(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, 2, config.UsageLogin); err != nil {
		return "", err
	}
	if a.Credentials == nil {
		return "", errors.New(config.ErrKeyringSave)
	}
	if err := a.Credentials.Set(args[0], args[1]); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	return a.Catalog.Msg(config.TKeyLoginSaved, map[string]any{"User": args[0]}), nil
}
