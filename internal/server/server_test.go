package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
)

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies that the handler correctly writes
// the standard HTTP headers and body content.
func TestHandler_ServingContent(t *testing.T) {
	srv := NewFeedServer("0") // Port irrelevant for handler tests
	expectedVCF := []byte("BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Jane Doe\r\nEND:VCARD\r\n")

	srv.Update(expectedVCF)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextVCard, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, expectedVCF, body)
}

// TestHandler_EmptyFeedIsServed verifies the endpoint is ready before the
// first book snapshot is published: an empty 200, never an error status.
func TestHandler_EmptyFeedIsServed(t *testing.T) {
	srv := NewFeedServer("0")
	// Note: no Update call beyond the constructor's empty feed.

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

// TestHandler_Caching verifies that the server respects If-None-Match
// and returns 304 Not Modified to save bandwidth.
func TestHandler_Caching(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Update([]byte("DATA_VERSION_1"))

	// Step 1: initial request to get the ETag.
	req1 := httptest.NewRequest(http.MethodGet, "/", nil)
	w1 := httptest.NewRecorder()
	srv.handleFeedRequest(w1, req1)

	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	// Step 2: second request providing the known ETag.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.Header.Set(config.HeaderIfNoneMatch, etag)
	w2 := httptest.NewRecorder()

	srv.handleFeedRequest(w2, req2)
	resp2 := w2.Result()
	defer func() { _ = resp2.Body.Close() }()

	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	// Step 3: a book mutation invalidates the ETag.
	srv.Update([]byte("DATA_VERSION_2"))
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.Header.Set(config.HeaderIfNoneMatch, etag)
	w3 := httptest.NewRecorder()

	srv.handleFeedRequest(w3, req3)
	assert.Equal(t, http.StatusOK, w3.Code, "Stale ETag must get fresh content")
}

// TestHandler_HeadRequest verifies HEAD gets headers but no body.
func TestHandler_HeadRequest(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Update([]byte("BEGIN:VCARD\r\nEND:VCARD\r\n"))

	req := httptest.NewRequest(http.MethodHead, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

// TestHandler_MethodNotAllowed ensures the feed stays strictly read-only.
func TestHandler_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			srv := NewFeedServer("0")

			req := httptest.NewRequest(method, "/", nil)
			w := httptest.NewRecorder()

			srv.handleFeedRequest(w, req)

			resp := w.Result()
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(config.HeaderAllow))
		})
	}
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition validates the thread-safety of atomic.Pointer usage.
// It runs high-frequency writers and readers concurrently.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewFeedServer("0")
	var wg sync.WaitGroup

	duration := 500 * time.Millisecond
	end := time.Now().Add(duration)

	// Writer routines: stress atomic.Pointer.Store.
	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				data := fmt.Sprintf("FN:Contact %d-%d", id, i)
				srv.Update([]byte(data))
				i++
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	// Reader routines: stress atomic.Pointer.Load through the handler.
	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				w := httptest.NewRecorder()

				srv.handleFeedRequest(w, req)

				if w.Code != http.StatusOK {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network
// binding and graceful shutdown logic.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18098"

	srv := NewFeedServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + "/"

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	// 1. The empty feed is served immediately.
	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// 2. A published book shows up on the next request.
	srv.Update([]byte("BEGIN:VCARD\r\nFN:Jane Doe\r\nEND:VCARD\r\n"))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextVCard, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "FN:Jane Doe")

	// 3. Graceful shutdown on context cancellation.
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

// TestServer_StartRequiresPort rejects an empty port before binding.
func TestServer_StartRequiresPort(t *testing.T) {
	srv := NewFeedServer("")
	err := srv.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}
