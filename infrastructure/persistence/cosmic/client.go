// Package cosmic implements the content-store port against a Cosmic
// bucket over its v3 REST API. The duck-typed query builder of the
// upstream SDK is reduced to the five operations the application
// actually uses: find-by-type, find-one-by-slug, insert, update,
// delete.
package cosmic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	apperrors "voicenotes-backend/pkg/errors"
)

// BucketClient is a thin HTTP client for one Cosmic bucket. Reads use
// the read key, mutations the write key. Every round trip goes through
// a circuit breaker so a misbehaving upstream degrades to typed
// unavailable errors instead of piling up hung requests.
type BucketClient struct {
	endpoint   string
	bucketSlug string
	readKey    string
	writeKey   string

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// ClientConfig configures a BucketClient.
type ClientConfig struct {
	Endpoint   string
	BucketSlug string
	ReadKey    string
	WriteKey   string
	Timeout    time.Duration
}

// NewBucketClient creates a bucket client. The credentials may be
// empty; operations then fail with a configuration error rather than
// reaching the network.
func NewBucketClient(cfg ClientConfig, logger *zap.Logger) *BucketClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cosmic",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		// Validation and not-found responses are caller mistakes, not
		// upstream health signals. A burst of bad payloads must not
		// open the breaker and block valid requests.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			switch apperrors.TypeOf(err) {
			case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNotFound:
				return true
			}
			return false
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BucketClient{
		endpoint:   cfg.Endpoint,
		bucketSlug: cfg.BucketSlug,
		readKey:    cfg.ReadKey,
		writeKey:   cfg.WriteKey,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		logger:     logger,
	}
}

// SetHTTPClient replaces the underlying HTTP client. Tests inject a
// fake round-tripper through this.
func (c *BucketClient) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// FindByType returns the raw objects array for all objects of the
// given type. metaQuery adds metadata equality constraints
// (e.g. "metadata.collection" -> id).
func (c *BucketClient) FindByType(ctx context.Context, typeSlug string, metaQuery map[string]string, depth int) (json.RawMessage, error) {
	query := map[string]interface{}{"type": typeSlug}
	for k, v := range metaQuery {
		query[k] = v
	}

	body, err := c.do(ctx, http.MethodGet, "objects", query, depth, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Objects json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewInternalError("malformed content store response").WithCause(err)
	}
	return envelope.Objects, nil
}

// FindOneBySlug returns the raw object with the given type and slug.
func (c *BucketClient) FindOneBySlug(ctx context.Context, typeSlug, slug string, depth int) (json.RawMessage, error) {
	query := map[string]interface{}{"type": typeSlug, "slug": slug}

	body, err := c.do(ctx, http.MethodGet, "objects", query, depth, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Objects []json.RawMessage `json:"objects"`
		Object  json.RawMessage   `json:"object"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewInternalError("malformed content store response").WithCause(err)
	}
	if envelope.Object != nil {
		return envelope.Object, nil
	}
	if len(envelope.Objects) > 0 {
		return envelope.Objects[0], nil
	}
	return nil, apperrors.NewNotFoundError("object")
}

// Insert creates a new object and returns the stored representation,
// including the minted id and slug.
func (c *BucketClient) Insert(ctx context.Context, payload interface{}) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, "objects", nil, 0, payload)
	if err != nil {
		return nil, err
	}
	return extractObject(body)
}

// Update applies a partial update to an existing object.
func (c *BucketClient) Update(ctx context.Context, id string, payload interface{}) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPatch, "objects/"+url.PathEscape(id), nil, 0, payload)
	if err != nil {
		return nil, err
	}
	return extractObject(body)
}

// Delete removes an object by id.
func (c *BucketClient) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "objects/"+url.PathEscape(id), nil, 0, nil)
	return err
}

func extractObject(body []byte) (json.RawMessage, error) {
	var envelope struct {
		Object json.RawMessage `json:"object"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewInternalError("malformed content store response").WithCause(err)
	}
	if envelope.Object == nil {
		return nil, apperrors.NewInternalError("content store returned no object")
	}
	return envelope.Object, nil
}

func (c *BucketClient) do(ctx context.Context, method, path string, query map[string]interface{}, depth int, payload interface{}) ([]byte, error) {
	if c.bucketSlug == "" || c.readKey == "" || (method != http.MethodGet && c.writeKey == "") {
		return nil, apperrors.NewNotConfiguredError("content store credentials are not configured")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, method, path, query, depth, payload)
	})
	if err != nil {
		switch err {
		case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
			return nil, apperrors.NewUnavailableError("content store temporarily unavailable").WithCause(err)
		}
		return nil, err
	}
	return result.([]byte), nil
}

func (c *BucketClient) roundTrip(ctx context.Context, method, path string, query map[string]interface{}, depth int, payload interface{}) ([]byte, error) {
	u := fmt.Sprintf("%s/v3/buckets/%s/%s", c.endpoint, url.PathEscape(c.bucketSlug), path)

	params := url.Values{}
	params.Set("read_key", c.readKey)
	if query != nil {
		queryJSON, err := json.Marshal(query)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode query").WithCause(err)
		}
		params.Set("query", string(queryJSON))
		params.Set("props", "id,slug,title,type,metadata,created_at,modified_at")
	}
	if depth > 0 {
		params.Set("depth", strconv.Itoa(depth))
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode payload").WithCause(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u+"?"+params.Encode(), reqBody)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Authorization", "Bearer "+c.writeKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUnavailableError("content store request failed").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to read content store response").WithCause(err)
	}

	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp.StatusCode, body)
	}
	return body, nil
}

// classifyStatus turns an upstream HTTP status into a typed error, so
// route handlers never have to guess intent from message substrings.
func classifyStatus(status int, body []byte) error {
	message := upstreamMessage(body)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NewNotFoundError("object")
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.NewNotConfiguredError("content store rejected the configured credentials")
	case status == http.StatusTooManyRequests:
		return apperrors.NewRateLimitError("content store rate limit exceeded")
	case status >= 500:
		return apperrors.NewUnavailableError("content store error").WithCause(fmt.Errorf("status %d: %s", status, message))
	default:
		return apperrors.NewValidationError(message)
	}
}

func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "content store rejected the request"
}
