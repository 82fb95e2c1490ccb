package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"civil-defense-app/internal/api/adapter/metrics"
	"civil-defense-app/internal/api/config"
	"civil-defense-app/internal/shared/errors"
	"civil-defense-app/internal/shared/logger"
	"civil-defense-app/internal/shared/utils"

	"github.com/google/uuid"
)

const (
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	headerUserAgent     = "User-Agent"

	contentTypeJSON = "application/json"
	bearerPrefix    = "Bearer "
)

// SessionReader yields the bearer token at call time. An empty token means
// the call goes out without an Authorization header.
type SessionReader interface {
	Token() string
}

// RawResponse is an HTTP response before envelope decoding.
type RawResponse struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client sends requests to the civil-defense backend.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	sessions  SessionReader
	log       logger.Logger
}

// NewClient creates a client for cfg.BaseURL reading tokens from sessions.
func NewClient(cfg *config.Config, sessions SessionReader, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		sessions:  sessions,
		log:       log.WithComponent("api_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base address and path with exactly one slash.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Call sends one request. body is JSON-encoded unless nil. Only failures to
// obtain a response are returned as errors; any status code is a response.
func (c *Client) Call(ctx context.Context, method, path string, body interface{}) (*RawResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewInfrastructureError("failed to encode request body").
				WithCause(err).
				WithComponent("api_client")
		}
		reader = bytes.NewReader(payload)
	}

	requestID := uuid.New().String()
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, errors.NewTransportError(fmt.Sprintf("failed to build request %s %s", method, path), err).
			WithComponent("api_client")
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerRequestID, requestID)
	if c.userAgent != "" {
		req.Header.Set(headerUserAgent, c.userAgent)
	}
	if token := c.sessions.Token(); token != "" {
		req.Header.Set(headerAuthorization, bearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(fmt.Sprintf("request %s %s failed", method, path), err).
			WithComponent("api_client").
			WithDetail("request_id", requestID)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(fmt.Sprintf("reading response of %s %s failed", method, path), err).
			WithComponent("api_client").
			WithDetail("request_id", requestID)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Body:       data,
		RequestID:  requestID,
	}, nil
}

// Do runs Call and Decode for one operation. Transport failures come back
// carrying defaultMessage with the original error as Cause. Every failure is
// logged before it is returned.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, defaultMessage string) (json.RawMessage, error) {
	start := time.Now()
	operation, _ := utils.GetOperationFromContext(ctx)
	log := c.log.WithContext(ctx).WithFields(map[string]interface{}{
		"method": method,
		"path":   path,
	})

	raw, err := c.Call(ctx, method, path, body)
	if err != nil {
		metrics.RecordCall(operation, method, metrics.OutcomeTransport, time.Since(start))
		if appErr, ok := errors.AsAppError(err); ok && appErr.Type == errors.ErrorTypeTransport {
			log.WithFields(map[string]interface{}{
				"request_id": appErr.Details["request_id"],
				"error":      appErr.Cause,
			}).Error("Backend unreachable")
			return nil, errors.NewTransportError(defaultMessage, appErr.Cause).
				WithComponent("api_client").
				WithDetail("path", path)
		}
		log.WithFields(map[string]interface{}{"error": err.Error()}).Error("Request could not be sent")
		return nil, err
	}

	data, err := Decode(raw, defaultMessage)
	log = log.WithFields(map[string]interface{}{
		"request_id": raw.RequestID,
		"status":     raw.StatusCode,
		"duration":   time.Since(start).String(),
	})
	if err != nil {
		metrics.RecordCall(operation, method, metrics.OutcomeRejected, time.Since(start))
		fields := map[string]interface{}{"api_message": errors.MessageOf(err)}
		if errors.IsMalformedEnvelope(err) {
			fields["body_bytes"] = len(raw.Body)
		}
		log.WithFields(fields).Warn("Backend call failed")
		return nil, err
	}

	metrics.RecordCall(operation, method, metrics.OutcomeSuccess, time.Since(start))
	log.Debug("Backend call succeeded")
	return data, nil
}
