package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 20 * time.Second

// Client talks to the workshop backend. Every call is a single attempt; the
// client never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for baseURL, e.g. "http://localhost:8080/api/".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("api_client")
	return c
}

// ResolveBaseURL picks the API prefix for the host the client runs against:
// localhost and 127.0.0.1 use local, everything else remote.
func ResolveBaseURL(host, local, remote string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(h, ":"); i > 0 && !strings.Contains(h[i:], "]") {
		h = h[:i]
	}
	switch h {
	case "localhost", "127.0.0.1", "":
		return local
	default:
		return remote
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// envelope is the part of every response body the client inspects before
// decoding the payload.
type envelope struct {
	Success *bool  `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// rawResponse is a received response whose body was valid JSON.
type rawResponse struct {
	status int
	body   []byte
	env    envelope
}

func (r rawResponse) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r rawResponse) businessError() *BusinessError {
	msg := strings.TrimSpace(r.env.Message)
	if msg == "" {
		msg = GenericFailureMessage
	}
	return &BusinessError{Status: r.status, Code: r.env.Code, Message: msg}
}

// send performs one request. Transport failures and non-JSON bodies come
// back wrapped in ErrCommunication.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: build request: %v", ErrCommunication, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return rawResponse{}, fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	defer resp.Body.Close()

	data, err := readAll(resp)
	if err != nil {
		return rawResponse{}, err
	}

	out := rawResponse{status: resp.StatusCode, body: data}
	if err := decodeEnvelope(data, &out.env); err != nil {
		c.logger.Warn("non JSON response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return rawResponse{}, fmt.Errorf("%w: status %d", ErrCommunication, resp.StatusCode)
	}
	c.logger.Debug("response", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
	return out, nil
}

// call sends the request and decodes a successful body into out. A non-2xx
// status or success:false becomes a *BusinessError.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	raw, err := c.send(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	if !raw.ok() || (raw.env.Success != nil && !*raw.env.Success) {
		return raw.businessError()
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw.body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrCommunication, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.call(ctx, http.MethodPost, path, nil, bytes.NewReader(data), "application/json", out)
}

// filePart is an optional file attached to a multipart form.
type filePart struct {
	field    string
	fileName string
	content  io.Reader
}

// multipartBody encodes fields (and an optional file) as multipart/form-data.
// Empty values are skipped so optional inputs are only sent when present.
func multipartBody(fields [][2]string, file *filePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.field, file.fileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) postForm(ctx context.Context, path string, fields [][2]string, file *filePart, out any) error {
	body, contentType, err := multipartBody(fields, file)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	return c.call(ctx, http.MethodPost, path, nil, body, contentType, out)
}

func readAll(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrCommunication, err)
	}
	return data, nil
}

func decodeEnvelope(data []byte, env *envelope) error {
	return json.Unmarshal(data, env)
}
