package assistant

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
	"github.com/tartampluch/birthday-assistant/internal/engine"
	"github.com/tartampluch/birthday-assistant/internal/server"
)

// Publisher receives rendered feed documents after every change to the book.
type Publisher interface {
	Publish(d server.Document, data []byte)
}

// Response is the outcome of one command line.
type Response struct {
	Text   string
	Failed bool // Text is an error message
	Exit   bool // the session should end
}

// command is one entry of the dispatch table. mutates marks commands that
// change the book and therefore trigger a republish.
type command struct {
	run     func(a *Assistant, ctx context.Context, args []string) (string, error)
	mutates bool
}

var commands = map[string]command{
	config.CmdHello:        {run: (*Assistant).hello},
	config.CmdHelp:         {run: (*Assistant).help},
	config.CmdAdd:          {run: (*Assistant).addContact, mutates: true},
	config.CmdChange:       {run: (*Assistant).changeContact, mutates: true},
	config.CmdPhone:        {run: (*Assistant).showPhone},
	config.CmdRemovePhone:  {run: (*Assistant).removePhone, mutates: true},
	config.CmdDelete:       {run: (*Assistant).deleteContact, mutates: true},
	config.CmdAll:          {run: (*Assistant).showAll},
	config.CmdAddBirthday:  {run: (*Assistant).addBirthday, mutates: true},
	config.CmdShowBirthday: {run: (*Assistant).showBirthday},
	config.CmdBirthdays:    {run: (*Assistant).birthdays},
	config.CmdExport:       {run: (*Assistant).export},
	config.CmdCalendar:     {run: (*Assistant).calendar},
	config.CmdImport:       {run: (*Assistant).importContacts, mutates: true},
	config.CmdLogin:        {run: (*Assistant).login},
}

// Assistant owns the address book for the lifetime of a session and turns
// command lines into calls on it. It is not safe for concurrent use.
type Assistant struct {
	Book        *book.AddressBook
	Generator   *engine.Generator
	Catalog     *Catalog
	Credentials Credentials
	Publisher   Publisher // optional
}

// New wires an assistant around an empty address book.
func New(gen *engine.Generator, catalog *Catalog, creds Credentials) *Assistant {
	return &Assistant{
		Book:        book.New(),
		Generator:   gen,
		Catalog:     catalog,
		Credentials: creds,
	}
}

// Handle executes one command line. Errors never escape: they are turned
// into catalog text with Failed set.
func (a *Assistant) Handle(ctx context.Context, line string) Response {
	cmd, args := ParseInput(line)
	if cmd == "" {
		return Response{}
	}

	log := slog.With(
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, cmd,
		config.LogKeyArgs, len(args),
	)

	switch cmd {
	case config.CmdExit, config.CmdClose:
		return Response{Text: a.Catalog.Msg(config.TKeyGoodbye, nil), Exit: true}
	}

	c, ok := commands[cmd]
	if !ok {
		log.Debug(config.MsgCommand)
		return Response{Text: a.Catalog.Msg(config.TKeyInvalidCommand, nil), Failed: true}
	}

	text, err := c.run(a, ctx, args)
	if err != nil {
		log.Debug(config.MsgCommand, config.LogKeyError, err)
		return Response{Text: a.translate(err), Failed: true}
	}
	log.Debug(config.MsgCommand)

	if c.mutates {
		a.Publish()
	}
	return Response{Text: text}
}

// Publish renders the calendar and vCard documents and hands them to the
// Publisher. Rendering failures are logged; the previous snapshot stays served.
func (a *Assistant) Publish() {
	if a.Publisher == nil {
		return
	}

	ics, err := a.Generator.Calendar(a.Book)
	if err != nil {
		slog.Error(config.ErrPublish,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err,
		)
		return
	}

	var vcf bytes.Buffer
	if err := a.Generator.Export(a.Book, &vcf); err != nil {
		slog.Error(config.ErrPublish,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err,
		)
		return
	}

	a.Publisher.Publish(server.Calendar, ics)
	a.Publisher.Publish(server.Contacts, vcf.Bytes())
}
