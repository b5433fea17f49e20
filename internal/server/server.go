package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/birthday-assistant/internal/config"
)

// Document identifies one published feed.
type Document int

const (
	Calendar Document = iota // iCalendar of every stored birthday
	Contacts                 // vCard export of the address book
)

// route is the URL path the document is served under.
func (d Document) route() string {
	if d == Contacts {
		return config.RouteContacts
	}
	return config.RouteCalendar
}

// contentType is the MIME type sent with the document.
func (d Document) contentType() string {
	if d == Contacts {
		return config.MimeTextVCard
	}
	return config.MimeTextCalendar
}

// snapshot is an immutable rendered document with its HTTP cache metadata.
type snapshot struct {
	data         []byte
	etag         string
	lastModified string // http.TimeFormat
}

// FeedServer publishes read-only snapshots of the address book over HTTP.
// It never sees the book itself: the owner renders documents and hands the
// bytes over through Publish, so handlers only load atomic pointers.
type FeedServer struct {
	Port string

	calendar atomic.Pointer[snapshot]
	contacts atomic.Pointer[snapshot]
}

// NewFeedServer creates a server bound to 127.0.0.1:port once started.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{Port: port}
}

// slot returns the snapshot pointer backing d.
func (s *FeedServer) slot(d Document) *atomic.Pointer[snapshot] {
	if d == Contacts {
		return &s.contacts
	}
	return &s.calendar
}

// Handler returns the routing table of the feed: one route per Document.
// It is exposed so tests can drive the server through httptest.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, d := range []Document{Calendar, Contacts} {
		mux.Handle(d.route(), s.documentHandler(d))
	}
	return mux
}

// Start serves the feed on 127.0.0.1 and blocks until ctx is cancelled.
//
// Cancellation triggers a graceful shutdown bounded by
// config.ShutdownTimeout. A listen failure (port in use, permission
// denied) is returned immediately.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish replaces the served content of d.
//
// The ETag is the SHA-256 of data, so republishing identical bytes keeps
// clients' conditional requests valid. Last-Modified is the publish time.
// data must not be modified after the call.
func (s *FeedServer) Publish(d Document, data []byte) {
	hash := sha256.Sum256(data)
	item := &snapshot{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.slot(d).Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyDocument, d.route(),
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// documentHandler serves one document with conditional GET support.
func (s *FeedServer) documentHandler(d Document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// 1. Exact path only.
		if r.URL.Path != d.route() {
			http.NotFound(w, r)
			return
		}
		// 2. Read-only feed.
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		// 3. Nothing published yet: ask the client to retry.
		item := s.slot(d).Load()
		if item == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}

		// 4. Headers shared by 200 and 304 responses.
		h := w.Header()
		h.Set(config.HeaderContentType, d.contentType())
		h.Set(config.HeaderXContentType, config.MimeNoSniff)
		h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
		h.Set(config.HeaderETag, item.etag)
		h.Set(config.HeaderLastModified, item.lastModified)

		// 5. Conditional request.
		if notModified(r, item) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		// 6. Body, GET only.
		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}

// notModified evaluates If-None-Match first, then If-Modified-Since.
func notModified(r *http.Request, item *snapshot) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}
