package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
)

// ImportSource locates a vCard stream: a local path or an http(s) URL.
// User and Pass are only sent for URLs.
type ImportSource struct {
	Location string
	User     string
	Pass     string
}

// IsRemote reports whether the source must be downloaded.
func (s ImportSource) IsRemote() bool {
	u, err := url.Parse(s.Location)
	if err != nil {
		return false
	}
	return u.Scheme == config.SchemeHTTP || u.Scheme == config.SchemeHTTPS
}

// ImportStats summarizes one import run.
type ImportStats struct {
	Cards    int // vCards decoded
	Imported int // vCards merged into the book
}

// contactNamespace scopes the name-based UUIDs of exported cards.
var contactNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.AppID))

// Export writes every record as a vCard 4.0 entry, in address book order.
func (g *Generator) Export(b *book.AddressBook, w io.Writer) error {
	enc := vcard.NewEncoder(w)
	count := 0
	for r := range b.All() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldUID, contactUID(r.Name()))
		card.SetValue(vcard.FieldFormattedName, r.Name())
		for _, p := range r.Phones() {
			card.AddValue(vcard.FieldTelephone, p.String())
		}
		if bday, ok := r.Birthday(); ok {
			card.SetValue(vcard.FieldBirthday, bday.Date().Format(config.DateFormatFullDash))
		}

		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Debug(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyContacts, count,
	)
	return nil
}

// contactUID is derived from the name only, so re-exports of the same
// contact keep their UID.
func contactUID(name string) string {
	return config.UIDURNPrefix + uuid.NewSHA1(contactNamespace, []byte(name)).String()
}

// Import merges the vCards of src into b. Cards become records keyed by their
// formatted name (structured name as fallback); phones that are not exactly
// 10 digits or already present are skipped, and a valid BDAY overwrites the
// stored birthday. Malformed cards are logged and skipped.
func (g *Generator) Import(ctx context.Context, b *book.AddressBook, src ImportSource) (ImportStats, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySource, sanitizeLocation(src.Location),
	)

	reader, err := g.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return ImportStats{}, ctx.Err()
		}
		return ImportStats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	// 1. Decode through a reader that keeps the first I/O failure, so a
	//    broken stream is told apart from a malformed card.
	stream := &stickyReader{r: reader}
	decoder := vcard.NewDecoder(stream)

	// 2. Merge card by card. Syntax errors skip one card; I/O errors abort.
	var stats ImportStats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if stream.err != nil {
				return stats, fmt.Errorf("%s: %w", config.ErrVCardParse, stream.err)
			}
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		stats.Cards++

		if mergeCard(b, card, log) {
			stats.Imported++
		}
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Cards),
			slog.Int(config.LogKeyImported, stats.Imported),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

// open returns the raw vCard stream for src.
func (g *Generator) open(ctx context.Context, src ImportSource) (io.ReadCloser, error) {
	if src.Location == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if !src.IsRemote() {
		info, err := os.Stat(src.Location)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s: %q", config.ErrSourceIsDir, src.Location)
		}
		return os.Open(src.Location)
	}
	if g.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}
	return g.Fetcher.Fetch(ctx, src.Location, src.User, src.Pass)
}

// stickyReader records the first read error other than io.EOF and keeps
// returning it, so the underlying reader is not retried after a failure.
type stickyReader struct {
	r   io.Reader
	err error
}

// Read implements io.Reader.
func (s *stickyReader) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	return n, err
}

// mergeCard applies one card to the book and reports whether it was used.
func mergeCard(b *book.AddressBook, card vcard.Card, log *slog.Logger) bool {
	name := cardName(card)
	if name == "" {
		log.Debug(config.MsgSkippedName)
		return false
	}

	record, exists := b.Find(name)
	if !exists {
		var err error
		if record, err = book.NewRecord(name); err != nil {
			return false
		}
	}

	for _, tel := range card.Values(vcard.FieldTelephone) {
		if _, dup := record.FindPhone(tel); dup {
			continue
		}
		if err := record.AddPhone(tel); err != nil {
			log.Debug(config.MsgSkippedPhone,
				config.LogKeyName, name,
				config.LogKeyValue, tel,
			)
		}
	}

	if v := card.Value(vcard.FieldBirthday); v != "" {
		if t, err := parseDate(v); err == nil {
			record.SetBirthday(book.BirthdayFromDate(t))
		} else {
			log.Debug(config.MsgSkippedDate,
				config.LogKeyName, name,
				config.LogKeyValue, v,
			)
		}
	}

	if !exists {
		b.Add(record)
	}
	return true
}

// cardName prefers FN, then "Given Family" from N.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(strings.Join(strings.Fields(n.GivenName+" "+n.FamilyName), " "))
	}
	return ""
}

// parseDate accepts the vCard BDAY forms that carry a year.
// Year-less dates (--MM-DD) cannot become a Birthday and are rejected.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}

// sanitizeLocation strips query strings and credentials from URLs before logging.
func sanitizeLocation(loc string) string {
	u, err := url.Parse(loc)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return loc
	}
	return u.Scheme + "://" + u.Host + u.Path
}
