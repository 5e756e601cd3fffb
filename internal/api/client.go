// Package api talks to the EORA backend over its REST interface.
//
// Responses are parsed leniently at this boundary: lists may arrive bare or
// wrapped in an envelope, and session ids may be spelled "id" or "_id".
// Everything past this package sees normalized session.Session values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eora-ai/eora/internal/errors"
	"github.com/eora-ai/eora/internal/logger"
	"github.com/eora-ai/eora/internal/session"
)

const (
	JSONContentType = "application/json"
	RequestIDHeader = "X-Request-ID"

	DefaultUserAgent = "eora-cli"
)

// Backend endpoints.
const (
	pathSessions = "/api/sessions"
	pathPoints   = "/api/user/points"
	pathChat     = "/api/chat"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Client is a backend client. The zero value is not usable; call New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout. The client is
// copied, never changed in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sessionPath(id string, rest ...string) string {
	p := pathSessions + "/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op errors.Op, method, path string, payload any) ([]byte, error) {
	target := method + " " + path
	log := logger.WithComponent("api")

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.E(op, errors.KindInvalid, "encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.E(op, errors.KindInvalid, target, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", JSONContentType)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", JSONContentType)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "target", target, "requestID", requestID, "error", err)
		if isTimeout(err) {
			return nil, errors.E(op, errors.KindTimeout, target, err)
		}
		return nil, errors.RequestFailed(op, target, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.RequestFailed(op, target, err)
	}
	log.Debug("request done", "target", target, "requestID", requestID,
		"status", res.StatusCode, "duration", time.Since(start))

	if err := handleAPIError(res, data); err != nil {
		kind := errors.KindNetwork
		if res.StatusCode == http.StatusNotFound {
			kind = errors.KindNotFound
		}
		return nil, errors.E(op, kind, target, err)
	}
	return data, nil
}

// isTimeout reports whether err is an expired deadline, either the caller's
// or the client's own Timeout. A plain cancel is not a timeout.
func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func handleAPIError(res *http.Response, body []byte) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	return &StatusError{StatusCode: res.StatusCode, Message: errorMessage(body)}
}

// ListSessions fetches every session, most recently created first.
func (c *Client) ListSessions(ctx context.Context) ([]session.Session, error) {
	const op errors.Op = "api.ListSessions"
	data, err := c.do(ctx, op, http.MethodGet, pathSessions, nil)
	if err != nil {
		return nil, err
	}
	return parseSessions(op, data)
}

type createRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// CreateSession asks the backend for a new session and returns its id.
func (c *Client) CreateSession(ctx context.Context, name, userID string) (string, error) {
	const op errors.Op = "api.CreateSession"
	data, err := c.do(ctx, op, http.MethodPost, pathSessions, createRequest{Name: name, UserID: userID})
	if err != nil {
		return "", err
	}
	return createdSessionID(op, data)
}

// DeleteSession deletes one session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	_, err := c.do(ctx, "api.DeleteSession", http.MethodDelete, sessionPath(id), nil)
	return err
}

// SessionMessages fetches the messages of one session.
func (c *Client) SessionMessages(ctx context.Context, id string) ([]session.Message, error) {
	const op errors.Op = "api.SessionMessages"
	data, err := c.do(ctx, op, http.MethodGet, sessionPath(id, "messages"), nil)
	if err != nil {
		return nil, err
	}
	return parseMessages(op, data)
}

// Points is the user's points balance.
type Points struct {
	Points int64
	// Present is false when the response had no usable points field.
	Present bool
}

// Points fetches the current user's points balance.
func (c *Client) Points(ctx context.Context) (Points, error) {
	const op errors.Op = "api.Points"
	data, err := c.do(ctx, op, http.MethodGet, pathPoints, nil)
	if err != nil {
		return Points{}, err
	}
	return parsePoints(op, data)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat sends message to the session and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (string, error) {
	const op errors.Op = "api.Chat"
	data, err := c.do(ctx, op, http.MethodPost, pathChat, chatRequest{SessionID: sessionID, Message: message})
	if err != nil {
		return "", err
	}
	return parseChatReply(op, data)
}
