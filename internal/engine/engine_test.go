package engine_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-assistant/internal/book"
	"github.com/tartampluch/birthday-assistant/internal/config"
	"github.com/tartampluch/birthday-assistant/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// -----------------------------------------------------------------------------
// Calendar
// -----------------------------------------------------------------------------

func TestCalendar_Events(t *testing.T) {
	b := buildBook(t,
		contact{name: "John", birthday: "15.06.1990"},
		contact{name: "Jane"},
	)
	gen := &engine.Generator{Clock: engine.FixedClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))}

	data, err := gen.Calendar(b)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Equal(t, 3, strings.Count(ics, "BEGIN:VEVENT"), "Previous, current and next year")
	assert.Contains(t, ics, "SUMMARY:Birthday: John (35)")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250615")
	assert.NotContains(t, ics, "Jane")
	assert.NotContains(t, ics, "VALARM", "No reminder configured")
}

func TestCalendar_SkipsYearsBeforeBirth(t *testing.T) {
	b := buildBook(t, contact{name: "Baby", birthday: "02.03.2025"})
	gen := &engine.Generator{Clock: engine.FixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))}

	data, err := gen.Calendar(b)
	require.NoError(t, err)

	ics := string(data)
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "SUMMARY:Birthday: Baby\r\n")
	assert.Contains(t, ics, "SUMMARY:Birthday: Baby (1)")
}

func TestCalendar_Reminder(t *testing.T) {
	b := buildBook(t, contact{name: "John", birthday: "15.06.1990"})
	gen := &engine.Generator{
		Clock:           engine.FixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		ReminderTrigger: "-P1D",
	}

	data, err := gen.Calendar(b)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "BEGIN:VALARM"))
	assert.Contains(t, string(data), "TRIGGER:-P1D")
}

func TestCalendar_StableUIDs(t *testing.T) {
	b := buildBook(t, contact{name: "John", birthday: "15.06.1990"})
	gen := &engine.Generator{Clock: engine.FixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))}

	first, err := gen.Calendar(b)
	require.NoError(t, err)
	second, err := gen.Calendar(b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalendar_Empty(t *testing.T) {
	gen := &engine.Generator{Clock: engine.FixedClock(time.Now())}

	data, err := gen.Calendar(buildBook(t, contact{name: "NoBirthday"}))
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

// -----------------------------------------------------------------------------
// vCard Export / Import
// -----------------------------------------------------------------------------

func TestExport(t *testing.T) {
	b := buildBook(t,
		contact{name: "John", birthday: "15.06.1990", phones: []string{"1234567890", "5555555555"}},
		contact{name: "Jane", phones: []string{"9876543210"}},
	)
	gen := &engine.Generator{Clock: engine.RealClock{}}

	var buf bytes.Buffer
	require.NoError(t, gen.Export(b, &buf))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VCARD"))
	assert.Contains(t, out, "VERSION:4.0")
	assert.Contains(t, out, "FN:John")
	assert.Contains(t, out, "TEL:1234567890")
	assert.Contains(t, out, "TEL:5555555555")
	assert.Contains(t, out, "BDAY:1990-06-15")
	assert.Less(t, strings.Index(out, "FN:John"), strings.Index(out, "FN:Jane"), "Book order is kept")
	assert.Equal(t, 2, strings.Count(out, "UID:urn:uuid:"))
}

// TestExportImport_Local exports a book to a file and imports it into an empty one.
func TestExportImport_Local(t *testing.T) {
	original := buildBook(t,
		contact{name: "John", birthday: "15.06.1990", phones: []string{"1234567890", "5555555555"}},
		contact{name: "Jane", phones: []string{"9876543210"}},
	)
	gen := &engine.Generator{Clock: engine.RealClock{}}

	path := filepath.Join(t.TempDir(), "contacts.vcf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gen.Export(original, f))
	require.NoError(t, f.Close())

	restored := book.New()
	stats, err := gen.Import(context.Background(), restored, engine.ImportSource{Location: path})
	require.NoError(t, err)
	assert.Equal(t, engine.ImportStats{Cards: 2, Imported: 2}, stats)

	var want, got []string
	for r := range original.All() {
		want = append(want, r.String())
	}
	for r := range restored.All() {
		got = append(got, r.String())
	}
	assert.Equal(t, want, got)
}

func TestImport_Web_Merge(t *testing.T) {
	vcardContent := `BEGIN:VCARD
VERSION:3.0
FN:Jane
TEL:+1 555 123
TEL:9876543210
TEL:1112223333
BDAY:1985-03-07
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Doe;John;;;
TEL:1234567890
BDAY:--0415
END:VCARD
BEGIN:VCARD
VERSION:3.0
TEL:0000000000
END:VCARD`

	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://dav.example.com/book.vcf", "alice", "secret").
		Return(io.NopCloser(strings.NewReader(vcardContent)), nil)

	b := buildBook(t, contact{name: "Jane", phones: []string{"9876543210"}})
	gen := &engine.Generator{Clock: engine.RealClock{}, Fetcher: mockFetcher}

	stats, err := gen.Import(context.Background(), b, engine.ImportSource{
		Location: "https://dav.example.com/book.vcf",
		User:     "alice",
		Pass:     "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Cards)
	assert.Equal(t, 2, stats.Imported, "The nameless card is skipped")
	assert.Equal(t, 2, b.Len())

	jane, ok := b.Find("Jane")
	require.True(t, ok)
	assert.Equal(t, "Contact name: Jane, phones: 9876543210; 1112223333, birthday: 07.03.1985", jane.String(),
		"Existing phone is not duplicated and the invalid one is dropped")

	john, ok := b.Find("John Doe")
	require.True(t, ok)
	_, hasBirthday := john.Birthday()
	assert.False(t, hasBirthday, "Year-less BDAY cannot be stored")

	mockFetcher.AssertExpectations(t)
}

func TestImport_Errors(t *testing.T) {
	t.Run("Empty location", func(t *testing.T) {
		gen := &engine.Generator{}
		_, err := gen.Import(context.Background(), book.New(), engine.ImportSource{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSourceEmpty)
	})

	t.Run("Missing file", func(t *testing.T) {
		gen := &engine.Generator{}
		_, err := gen.Import(context.Background(), book.New(), engine.ImportSource{Location: filepath.Join(t.TempDir(), "nope.vcf")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Directory", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		gen := &engine.Generator{}
		_, err := gen.Import(ctx, book.New(), engine.ImportSource{Location: t.TempDir()})
		require.Error(t, err)
		assert.NotErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), config.ErrSourceIsDir)
	})

	t.Run("Stream fails mid-card", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		resetErr := errors.New("connection reset by peer")
		body := io.MultiReader(
			strings.NewReader("BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane\r\n"),
			iotest.ErrReader(resetErr),
		)
		mockFetcher := new(MockFetcher)
		mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(io.NopCloser(body), nil)

		gen := &engine.Generator{Fetcher: mockFetcher}
		_, err := gen.Import(ctx, book.New(), engine.ImportSource{Location: "https://dav.example.com/book.vcf"})
		require.Error(t, err)
		assert.ErrorIs(t, err, resetErr)
		assert.NotErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), config.ErrVCardParse)
	})

	t.Run("Remote without fetcher", func(t *testing.T) {
		gen := &engine.Generator{}
		_, err := gen.Import(context.Background(), book.New(), engine.ImportSource{Location: "http://example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrFetcherMissing)
	})

	t.Run("Network error", func(t *testing.T) {
		expectedErr := errors.New("network unreachable")
		mockFetcher := new(MockFetcher)
		mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, expectedErr)

		gen := &engine.Generator{Fetcher: mockFetcher}
		_, err := gen.Import(context.Background(), book.New(), engine.ImportSource{Location: "http://example.com"})
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), config.ErrVCardParse)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mockFetcher := new(MockFetcher)
		mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled)

		gen := &engine.Generator{Fetcher: mockFetcher}
		_, err := gen.Import(ctx, book.New(), engine.ImportSource{Location: "http://example.com"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestImport_SkipsMalformedCard checks that a syntax error only drops the
// broken card and the rest of a healthy stream is still imported.
func TestImport_SkipsMalformedCard(t *testing.T) {
	content := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane\r\nTEL:9876543210\r\nEND:VCARD\r\n" +
		"END:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:3.0\r\nFN:John\r\nTEL:1234567890\r\nEND:VCARD\r\n"
	path := filepath.Join(t.TempDir(), "mixed.vcf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	b := book.New()
	stats, err := (&engine.Generator{}).Import(context.Background(), b, engine.ImportSource{Location: path})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported)

	_, ok := b.Find("John")
	assert.True(t, ok, "Cards after the malformed one are still read")
}

func TestImportSource_IsRemote(t *testing.T) {
	assert.True(t, engine.ImportSource{Location: "http://example.com/a.vcf"}.IsRemote())
	assert.True(t, engine.ImportSource{Location: "https://example.com/a.vcf"}.IsRemote())
	assert.False(t, engine.ImportSource{Location: "/home/me/a.vcf"}.IsRemote())
	assert.False(t, engine.ImportSource{Location: "contacts.vcf"}.IsRemote())
	assert.False(t, engine.ImportSource{Location: "ftp://example.com/a.vcf"}.IsRemote())
}
