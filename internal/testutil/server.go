package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/thruflo/crosswatch/internal/progress"
)

// FakeScript describes how a fake session unfolds. Each poll drains the next
// batch; once the batches run out the session completes with Result, or
// fails with Error when it is set. A script with Stall set never completes.
type FakeScript struct {
	Batches [][]progress.Step
	Result  *progress.Result
	Error   string
	Stall   bool
}

type fakeSession struct {
	script FakeScript
	next   int
	polls  int
}

// FakeServer is an in-process crossword service for tests.
type FakeServer struct {
	srv *httptest.Server

	mu       sync.Mutex
	script   FakeScript
	sessions map[string]*fakeSession
	files    map[string]string
	generate []GenerateRequest
}

// GenerateRequest records a /generate call.
type GenerateRequest struct {
	Structure string `json:"structure"`
	Words     string `json:"words"`
	SessionID string `json:"session_id"`
}

// NewFakeServer starts a fake service. Sessions created through /generate
// follow script. The server is closed when the test ends.
func NewFakeServer(t *testing.T, script FakeScript) *FakeServer {
	t.Helper()

	f := &FakeServer{
		script:   script,
		sessions: make(map[string]*fakeSession),
		files: map[string]string{
			"structure0.txt": SampleStructure + "\n",
			"words0.txt":     strings.Join(SampleWords, "\n") + "\n",
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/generate", f.handleGenerate)
	r.Get("/solving-progress/{sessionID}", f.handleProgress)
	r.Post("/get-file-preview", f.handlePreview)

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the base URL of the server.
func (f *FakeServer) URL() string {
	return f.srv.URL
}

// AddSession registers a session that was started elsewhere.
func (f *FakeServer) AddSession(id string, script FakeScript) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = &fakeSession{script: script}
}

// AddFile makes a data file available to /get-file-preview and /generate.
func (f *FakeServer) AddFile(name, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = content
}

// Polls returns how many times the session has been polled.
func (f *FakeServer) Polls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return s.polls
	}
	return 0
}

// GenerateRequests returns the /generate calls received so far.
func (f *FakeServer) GenerateRequests() []GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]GenerateRequest(nil), f.generate...)
}

func (f *FakeServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.generate = append(f.generate, req)

	if req.Structure == "" || req.Words == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Please select both structure and words files"})
		return
	}
	_, okS := f.files[req.Structure]
	_, okW := f.files[req.Words]
	if !okS || !okW {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Selected files do not exist"})
		return
	}

	f.sessions[req.SessionID] = &fakeSession{script: f.script}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "session_id": req.SessionID})
}

func (f *FakeServer) handleProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Session not found"})
		return
	}
	s.polls++

	steps := []progress.Step{}
	if s.next < len(s.script.Batches) {
		steps = s.script.Batches[s.next]
		s.next++
	}
	done := s.next >= len(s.script.Batches) && !s.script.Stall

	body := map[string]any{
		"steps":    steps,
		"complete": done && s.script.Error == "",
		"error":    nil,
	}
	if done && s.script.Error != "" {
		body["error"] = s.script.Error
	}
	if done && s.script.Error == "" && s.script.Result != nil {
		body["result"] = s.script.Result
	}
	writeJSON(w, http.StatusOK, body)
}

func (f *FakeServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     string `json:"type"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	if req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No filename provided"})
		return
	}

	f.mu.Lock()
	content, ok := f.files[req.Filename]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "File not found"})
		return
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	if req.Type == "structure" {
		preview := make([][]string, 0, len(lines))
		for _, line := range lines {
			row := make([]string, 0, len(line))
			for _, ch := range line {
				if ch == '_' {
					row = append(row, progress.CellTypeCell)
				} else {
					row = append(row, progress.CellTypeBlocked)
				}
			}
			preview = append(preview, row)
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "preview": preview, "raw": content})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "words": lines, "raw": content})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
