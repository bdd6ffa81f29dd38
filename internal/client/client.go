// Package client talks to the crossword service over HTTP: it starts
// generation sessions, fetches solving progress and loads file previews.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thruflo/crosswatch/internal/logging"
	"github.com/thruflo/crosswatch/internal/progress"
)

// ErrMissingFilename is returned by preview calls made without a filename.
var ErrMissingFilename = errors.New("no filename provided")

// Preview kinds accepted by /get-file-preview.
const (
	PreviewTypeStructure = "structure"
	PreviewTypeWords     = "words"
)

// Client is an HTTP client for the crossword service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  "crosswatch",
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the service.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

type generateRequest struct {
	Structure string `json:"structure"`
	Words     string `json:"words"`
	SessionID string `json:"session_id"`
}

type generateResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Error     string `json:"error,omitempty"`
}

// Generate starts a solve of structure with the words list. An empty
// sessionID is replaced by a generated one. The returned id is the one the
// server acknowledged and must be used for polling.
func (c *Client) Generate(ctx context.Context, structure, words, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	var resp generateResponse
	status, err := c.postJSON(ctx, "/generate", generateRequest{
		Structure: structure,
		Words:     words,
		SessionID: sessionID,
	}, &resp)
	if err != nil {
		if IsServerError(err) {
			return "", err
		}
		return "", fmt.Errorf("failed to start generation: %w", err)
	}

	if !resp.Success || status >= http.StatusBadRequest {
		return "", newServerError(status, resp.Error)
	}
	if resp.SessionID == "" {
		return sessionID, nil
	}

	c.logger.Debug("generation started", "session", resp.SessionID)
	return resp.SessionID, nil
}

// Progress fetches the steps accumulated since the previous poll of the
// session. A server-reported error is returned inside the response, not as
// an error; only transport and decoding failures are errors.
func (c *Client) Progress(ctx context.Context, sessionID string) (*progress.Response, error) {
	endpoint := c.baseURL + "/solving-progress/" + url.PathEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	pr, decodeErr := progress.UnmarshalResponse(body)
	if resp.StatusCode >= http.StatusBadRequest {
		msg := ""
		if decodeErr == nil {
			msg = pr.Error
		}
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, newServerError(resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return pr, nil
}

// Preview is a parsed /get-file-preview response.
type Preview struct {
	// Structure holds cell-type tags for structure previews.
	Structure [][]string `json:"preview,omitempty"`
	// Words holds the word list for words previews.
	Words []string `json:"words,omitempty"`
	// Raw is the unparsed file content.
	Raw string `json:"raw,omitempty"`
}

type previewRequest struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

type previewResponse struct {
	Preview
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PreviewStructure loads the cell layout of a structure file.
func (c *Client) PreviewStructure(ctx context.Context, filename string) (*Preview, error) {
	return c.preview(ctx, PreviewTypeStructure, filename)
}

// PreviewWords loads the words of a word-list file.
func (c *Client) PreviewWords(ctx context.Context, filename string) (*Preview, error) {
	return c.preview(ctx, PreviewTypeWords, filename)
}

func (c *Client) preview(ctx context.Context, kind, filename string) (*Preview, error) {
	if filename == "" {
		return nil, ErrMissingFilename
	}

	var resp previewResponse
	status, err := c.postJSON(ctx, "/get-file-preview", previewRequest{Type: kind, Filename: filename}, &resp)
	if err != nil {
		if IsServerError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load %s preview: %w", kind, err)
	}
	if !resp.Success || status >= http.StatusBadRequest {
		return nil, newServerError(status, resp.Error)
	}
	return &resp.Preview, nil
}

// postJSON sends body as JSON and decodes the JSON reply into out. It
// returns the HTTP status; non-2xx replies are decoded too because the
// service reports errors in the body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return resp.StatusCode, newServerError(resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
