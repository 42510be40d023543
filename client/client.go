// Package client is a typed Go client for the storefront and admin console
// APIs. It carries the client-side rules the web apps share: one bearer token
// in a TokenStore, uniform session invalidation on 401/403, server error
// messages surfaced verbatim, and transport failures degraded to a single
// generic error.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	// ErrSessionExpired is returned for any 401/403; the stored token has
	// already been cleared when it surfaces.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotImplemented maps a 404 from a system control endpoint.
	ErrNotImplemented = errors.New("not implemented")
)

// APIError carries a server-provided message from a non-2xx JSON body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// TokenStore holds the single persisted piece of client state.
type TokenStore interface {
	Get() string
	Set(token string)
	Clear()
}

// MemoryTokenStore keeps the token in process memory.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// FileTokenStore persists the token at Path so a session survives restarts.
// Read/write errors degrade to an empty token; Clear removes the file.
type FileTokenStore struct {
	Path string
	mu   sync.Mutex
}

func (s *FileTokenStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *FileTokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.MkdirAll(filepath.Dir(s.Path), 0o755)
	_ = os.WriteFile(s.Path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.Path)
}

// Client talks to one backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
}

func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Tokens:     tokens,
	}
}

// do issues one request. Errors are classified per the shared taxonomy:
// 401/403 clears the token and returns ErrSessionExpired; other non-2xx
// responses surface the server's error/detail message; network failures and
// unparseable bodies degrade to a generic error.
func (c *Client) do(method, path string, body interface{}, withAuth bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		if token := c.Tokens.Get(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.Tokens.Clear()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Unparseable bodies degrade to an empty object rather than failing.
		var errBody struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(raw, &errBody)
		msg := errBody.Error
		if msg == "" {
			msg = errBody.Detail
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("network error: invalid response body")
		}
	}
	return nil
}
