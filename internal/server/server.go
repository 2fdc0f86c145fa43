// Package server exposes the contact book as a read-only vCard feed on
// localhost, so other local applications (mail clients, calendar tools) can
// subscribe to the address book. It never accepts writes.
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

	"github.com/tartampluch/go-contacts/internal/config"
)

// feedItem holds one immutable rendering of the book plus its ETag.
type feedItem struct {
	data []byte
	etag string
}

// FeedServer serves the current vCard rendering of the book over HTTP.
// Reads are lock-free: the UI swaps in a complete new feedItem after every
// mutation, and handlers only ever observe one version or the other.
type FeedServer struct {
	feed atomic.Pointer[feedItem]
	Port string
}

// NewFeedServer creates a feed server bound to the given port on localhost.
func NewFeedServer(port string) *FeedServer {
	s := &FeedServer{Port: port}
	// Start from an empty but valid feed so the endpoint is ready before the
	// first snapshot load completes.
	s.Update(nil)
	return s
}

// Start runs the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeedRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
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

// Update atomically replaces the served payload. Passing nil publishes an
// empty feed.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	item := &feedItem{
		data: data,
		etag: fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
	s.feed.Store(item)

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// handleFeedRequest serves the vCard payload with ETag revalidation.
func (s *FeedServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.feed.Load()

	w.Header().Set(config.HeaderContentType, config.MimeTextVCard)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
