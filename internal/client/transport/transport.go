// Package transport is the thin HTTP layer under the API client: it joins
// paths to the base URL, encodes JSON bodies, attaches the bearer token and a
// request id, and hands back the raw status and body.
//
// It performs no retries and sets no timeout of its own; the underlying
// http.Client defaults apply.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/medesi/portal/internal/common"
	"github.com/medesi/portal/internal/logging"
)

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	// Token, when non-empty, is sent as "Authorization: Bearer <Token>".
	Token string
	// Body is JSON-encoded when non-nil.
	Body    any
	Headers map[string]string
}

// Response is a completed HTTP exchange, whatever its status.
type Response struct {
	Status    int
	Body      []byte
	RequestID string
}

// Successful reports a 2xx status.
func (r *Response) Successful() bool {
	return r.Status >= 200 && r.Status < 300
}

// Callbacks receives the outcome of Go. Exactly one of the two is called.
type Callbacks struct {
	OnFailure  func(err error)
	OnResponse func(resp *Response)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// New returns a Client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, logger: logger}
}

// Do performs req and returns the response for any status. An error means
// no response was obtained (encoding, connection or read failure).
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", common.JSONContentType)
	}
	if req.Token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+req.Token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	log := c.logger.With("request_id", requestID, "method", req.Method, "path", req.Path)
	log.Debug(ctx, "sending request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("read response: %w", err)
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "bytes", len(data))
	return &Response{Status: resp.StatusCode, Body: data, RequestID: requestID}, nil
}

// Go runs req on its own goroutine and reports the outcome through cb,
// calling exactly one of OnFailure or OnResponse exactly once. Nil callbacks
// are skipped.
func (c *Client) Go(ctx context.Context, req Request, cb Callbacks) {
	go func() {
		resp, err := c.Do(ctx, req)
		if err != nil {
			if cb.OnFailure != nil {
				cb.OnFailure(err)
			}
			return
		}
		if cb.OnResponse != nil {
			cb.OnResponse(resp)
		}
	}()
}
