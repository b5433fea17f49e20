package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Birthday-Assistant/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Birthday Assistant"
	AppID             = "com.github.tartampluch.birthday-assistant"
	AppCommand        = "birthday-assistant"
	KeyringService    = "com.github.tartampluch.birthday-assistant"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagPort         = "port"
	FlagReminder     = "reminder"
	FlagImport       = "import"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescPort     = "Serve the birthday calendar and vCard feed on this localhost port (disabled when empty)"
	FlagDescReminder = "ISO8601 duration of the calendar reminder, e.g. -P1D (disabled when empty)"
	FlagDescImport   = "vCard file path or http(s) URL to import at startup"
	CmdShort         = "Address book assistant that keeps track of phones and upcoming birthdays"
	VersionTemplate  = "{{.Name}} version {{.Version}}\n"
)

// -----------------------------------------------------------------------------
// Assistant Commands
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdRemovePhone  = "remove-phone"
	CmdDelete       = "delete"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdExport       = "export"
	CmdCalendar     = "calendar"
	CmdImport       = "import"
	CmdLogin        = "login"
	CmdHelp         = "help"
	CmdExit         = "exit"
	CmdClose        = "close"
)

// -----------------------------------------------------------------------------
// Message Catalog Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyPrompt           = "prompt"
	TKeyHello            = "hello"
	TKeyGoodbye          = "goodbye"
	TKeyInvalidCommand   = "invalid_command"
	TKeyHelp             = "help"
	TKeyContactAdded     = "contact_added"
	TKeyContactUpdated   = "contact_updated"
	TKeyContactDeleted   = "contact_deleted"
	TKeyPhoneUpdated     = "phone_updated"
	TKeyPhoneRemoved     = "phone_removed"
	TKeyPhones           = "phones" // Requires Name, Phones
	TKeyNoPhones         = "no_phones"
	TKeyBookEmpty        = "book_empty"
	TKeyBirthdayAdded    = "birthday_added"
	TKeyBirthdayShow     = "birthday_show" // Requires Name, Birthday
	TKeyNoBirthday       = "no_birthday"
	TKeyUpcomingHeader   = "upcoming_header"
	TKeyUpcomingLine     = "upcoming_line" // Requires Day, Names
	TKeyNoUpcoming       = "no_upcoming"
	TKeyImported         = "imported"    // Requires Count
	TKeyLoginSaved       = "login_saved" // Requires User
	TKeyErrPhoneFormat   = "err_phone_format"
	TKeyErrDateFormat    = "err_date_format"
	TKeyErrNameEmpty     = "err_name_empty"
	TKeyErrContactAbsent = "err_contact_not_found"
	TKeyErrPhoneAbsent   = "err_phone_not_found"
	TKeyErrUsage         = "err_usage"      // Requires Usage
	TKeyErrImport        = "err_import"     // Requires Error
	TKeyErrUnexpected    = "err_unexpected" // Requires Error
	DefaultLanguage      = "en"
)

// -----------------------------------------------------------------------------
// Command Usage Strings
// -----------------------------------------------------------------------------

const (
	UsageAdd          = "add [name] [phone]"
	UsageChange       = "change [name] [old_phone] [new_phone]"
	UsagePhone        = "phone [name]"
	UsageRemovePhone  = "remove-phone [name] [phone]"
	UsageDelete       = "delete [name]"
	UsageAddBirthday  = "add-birthday [name] [DD.MM.YYYY]"
	UsageShowBirthday = "show-birthday [name]"
	UsageImport       = "import [path|url] [user]"
	UsageLogin        = "login [user] [password]"
)

// -----------------------------------------------------------------------------
// Validation Rules (go-playground/validator tags)
// -----------------------------------------------------------------------------

const (
	TagPhone = "len=10,number"
	TagName  = "required"
)

// -----------------------------------------------------------------------------
// Business Logic
// -----------------------------------------------------------------------------

const (
	// UpcomingWindowDays is the exclusive upper bound on delta days for a greeting.
	UpcomingWindowDays = 7
	HoursPerDay        = 24
	PhoneSeparator     = "; "
	NameSeparator      = ", "
	NoPhonesMarker     = "No phones"
	UIDSalt            = "birthday-assistant-v1-"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Birthday Assistant//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "birthday-assistant"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"
	UIDURNPrefix = "urn:uuid:"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the user-facing DD.MM.YYYY layout.
	DateFormatBirthday = "02.01.2006"

	// Date layouts accepted in vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/birthdays.ics"
	RouteContacts       = "/contacts.vcf"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrValidation      = "validation failed"
	ErrNotFound        = "not found"
	ErrPhoneFormat     = "phone must consist of exactly 10 digits"
	ErrBirthdayFormat  = "birthday must be a real date in DD.MM.YYYY format"
	ErrNameEmpty       = "name must not be empty"
	ErrContactNotFound = "contact"
	ErrPhoneNotFound   = "phone"
	ErrNoBirthday      = "contact has no birthday"
	ErrMissingArgs     = "not enough arguments"
	ErrSourceEmpty     = "import source is empty"
	ErrSourceIsDir     = "import source is a directory"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to read vCard stream"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrReadInput       = "failed to read user input"
	ErrPublish         = "failed to render feed documents"
	ErrKeyringSave     = "failed to save credentials to keyring"
	ErrCreateRequest   = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrBadStatus       = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary    = "Birthday: %s"
	FallbackSummaryAge = "Birthday: %s (%d)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgCommand       = "Command handled"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedName   = "Skipping vCard without name"
	MsgImportDone    = "vCard import finished"
	MsgExportDone    = "vCard export finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgUpcoming      = "Upcoming birthdays computed"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgDownloading   = "vCards downloading"
	MsgDownloadStart = "Initiating vCard download"
	MsgBadStatus     = "Server returned error status"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"
	LogKeyArgs      = "arg_count"
	LogKeySource    = "source"
	LogKeyDocument  = "document"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeyContacts  = "contacts"
	LogKeyFound     = "birthdays_found"
	LogKeyUpcoming  = "upcoming"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyLength    = "content_length"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompAssistant = "assistant"
	CompEngine    = "engine"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompMain      = "main"
	CompI18n      = "i18n"
)
