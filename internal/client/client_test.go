package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/crosswatch/internal/progress"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Parallel()

		c := New("http://localhost:5000/")
		assert.Equal(t, "http://localhost:5000", c.BaseURL())
		assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()

		hc := &http.Client{}
		c := New("http://localhost:5000", WithHTTPClient(hc), WithTimeout(3*time.Second), WithUserAgent("test/1"))
		assert.Same(t, hc, c.httpClient)
		assert.Equal(t, 3*time.Second, hc.Timeout)
		assert.Equal(t, "test/1", c.userAgent)
	})
}

func TestNewSessionID(t *testing.T) {
	t.Parallel()

	a, b := NewSessionID(), NewSessionID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("posts request and returns acknowledged id", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/generate", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req generateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "structure0.txt", req.Structure)
			assert.Equal(t, "words0.txt", req.Words)
			assert.Equal(t, "sess-1", req.SessionID)

			json.NewEncoder(w).Encode(map[string]any{"success": true, "session_id": "server-sess"})
		}))
		defer server.Close()

		id, err := New(server.URL).Generate(context.Background(), "structure0.txt", "words0.txt", "sess-1")
		require.NoError(t, err)
		assert.Equal(t, "server-sess", id)
	})

	t.Run("generates a uuid when none given", func(t *testing.T) {
		t.Parallel()

		sent := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req generateRequest
			json.NewDecoder(r.Body).Decode(&req)
			sent <- req.SessionID
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		}))
		defer server.Close()

		id, err := New(server.URL).Generate(context.Background(), "s", "w", "")
		require.NoError(t, err)
		assert.Equal(t, <-sent, id)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("surfaces server message verbatim", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Please select both structure and words files"})
		}))
		defer server.Close()

		_, err := New(server.URL).Generate(context.Background(), "", "", "x")
		require.Error(t, err)
		assert.Equal(t, "Please select both structure and words files", err.Error())
		assert.True(t, IsServerError(err))

		var se *ServerError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Status)
	})

	t.Run("success false without message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": false})
		}))
		defer server.Close()

		_, err := New(server.URL).Generate(context.Background(), "s", "w", "x")
		require.Error(t, err)
		assert.Equal(t, UnknownErrorMessage, err.Error())
	})

	t.Run("non-JSON error page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := New(server.URL).Generate(context.Background(), "s", "w", "x")
		require.Error(t, err)
		assert.True(t, IsServerError(err))
		assert.Contains(t, err.Error(), "bad gateway")
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		_, err := New("http://127.0.0.1:1").Generate(context.Background(), "s", "w", "x")
		require.Error(t, err)
		assert.False(t, IsServerError(err))
		assert.Contains(t, err.Error(), "failed to start generation")
	})
}

func TestProgress(t *testing.T) {
	t.Parallel()

	t.Run("decodes steps", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/solving-progress/abc def", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)
			w.Write([]byte(`{"complete": false, "error": null, "steps": [{"type": "try_word", "data": {"word": "CAT"}}]}`))
		}))
		defer server.Close()

		resp, err := New(server.URL).Progress(context.Background(), "abc def")
		require.NoError(t, err)
		require.Len(t, resp.Steps, 1)
		assert.Equal(t, progress.StepTryWord, resp.Steps[0].Type)
		assert.Equal(t, "CAT", resp.Steps[0].Data.Word)
		assert.False(t, resp.Complete)
	})

	t.Run("logical error stays in response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"complete": true, "steps": [], "error": "No solution found"}`))
		}))
		defer server.Close()

		resp, err := New(server.URL).Progress(context.Background(), "s")
		require.NoError(t, err)
		assert.Equal(t, "No solution found", resp.Error)
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Session not found"}`))
		}))
		defer server.Close()

		_, err := New(server.URL).Progress(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, "Session not found", err.Error())
		assert.True(t, IsServerError(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := New(server.URL).Progress(context.Background(), "s")
		require.Error(t, err)
		assert.False(t, IsServerError(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := New(server.URL).Progress(ctx, "s")
		require.Error(t, err)
	})
}

func TestPreview(t *testing.T) {
	t.Parallel()

	newPreviewServer := func(t *testing.T) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/get-file-preview", r.URL.Path)
			var req previewRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			switch {
			case req.Filename == "missing.txt":
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": "File not found"})
			case req.Type == PreviewTypeStructure:
				json.NewEncoder(w).Encode(map[string]any{
					"success": true,
					"preview": [][]string{{"blocked", "cell"}, {"cell", "cell"}},
					"raw":     "#_\n__",
				})
			default:
				json.NewEncoder(w).Encode(map[string]any{
					"success": true,
					"words":   []string{"one", "two"},
					"raw":     "one\ntwo",
				})
			}
		}))
	}

	t.Run("structure", func(t *testing.T) {
		t.Parallel()

		server := newPreviewServer(t)
		defer server.Close()

		p, err := New(server.URL).PreviewStructure(context.Background(), "structure0.txt")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"blocked", "cell"}, {"cell", "cell"}}, p.Structure)
		assert.Equal(t, "#_\n__", p.Raw)
	})

	t.Run("words", func(t *testing.T) {
		t.Parallel()

		server := newPreviewServer(t)
		defer server.Close()

		p, err := New(server.URL).PreviewWords(context.Background(), "words0.txt")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, p.Words)
	})

	t.Run("file not found", func(t *testing.T) {
		t.Parallel()

		server := newPreviewServer(t)
		defer server.Close()

		_, err := New(server.URL).PreviewWords(context.Background(), "missing.txt")
		require.Error(t, err)
		assert.Equal(t, "File not found", err.Error())
	})

	t.Run("missing filename", func(t *testing.T) {
		t.Parallel()

		_, err := New("http://127.0.0.1:1").PreviewStructure(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingFilename)
	})
}
