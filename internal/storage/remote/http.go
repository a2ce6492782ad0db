package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// HTTPStore reads and writes the document as JSON at {baseURL}/documents/{handle}.
type HTTPStore struct {
	endpoint string
	token    string
	client   *http.Client
	logger   interfaces.Logger
}

var _ interfaces.RemoteStore = (*HTTPStore)(nil)

// HTTPOption configures an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPStore) {
		if client != nil {
			s.client = client
		}
	}
}

// WithToken sends token as a bearer credential.
func WithToken(token string) HTTPOption {
	return func(s *HTTPStore) {
		s.token = strings.TrimSpace(token)
	}
}

func WithHTTPLogger(logger interfaces.Logger) HTTPOption {
	return func(s *HTTPStore) {
		s.logger = logging.Ensure(logger)
	}
}

// NewHTTPStore builds a store for handle under baseURL.
func NewHTTPStore(baseURL, handle string, opts ...HTTPOption) (*HTTPStore, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote http: invalid base url %q", baseURL)
	}
	s := &HTTPStore{
		endpoint: base.String() + "/documents/" + url.PathEscape(handle),
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPStore) Fetch(ctx context.Context) (map[string]any, error) {
	req, err := s.request(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote http fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, interfaces.ErrDocumentNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, statusError("fetch", resp)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remote http fetch: decode: %w", err)
	}
	if payload == nil {
		return nil, interfaces.ErrDocumentNotFound
	}
	return payload, nil
}

func (s *HTTPStore) Replace(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("remote http replace: encode: %w", err)
	}
	req, err := s.request(ctx, http.MethodPut, body)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote http replace: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("replace", resp)
	}
	s.logger.Debug("storage.remote.replaced", "endpoint", s.endpoint, "bytes", len(body))
	return nil
}

func (s *HTTPStore) request(ctx context.Context, method string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("remote http: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return req, nil
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf("remote http %s: unexpected status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
