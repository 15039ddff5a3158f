// Package api is the GraphQL client for the remote todo service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrMalformedResponse means an operation succeeded transport-wise but the
// response is missing the payload the client depends on. That is a contract
// violation between client and server, not a user-facing failure.
var ErrMalformedResponse = errors.New("api: response missing expected payload")

// TokenFunc returns the current auth token, or "" when logged out. It is
// called immediately before every dispatch so it should read durable
// storage, not a value captured at client construction.
type TokenFunc func() string

// Client executes GraphQL operations against a single endpoint. Every
// outgoing request is decorated with "Authorization: Bearer <token>" when
// TokenFunc yields one. No retry, no token refresh: a rejected request is
// surfaced as an ordinary error.
type Client struct {
	endpoint   string
	httpClient *http.Client
	token      TokenFunc
	log        *zap.Logger
}

// New creates a client for the given endpoint. token may be nil for an
// unauthenticated client; log may be nil.
func New(endpoint string, timeout time.Duration, token TokenFunc, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		token:      token,
		log:        log,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

// do executes one operation and unmarshals the data envelope into result.
func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, result any) error {
	start := time.Now()
	err := c.post(ctx, query, variables, result)
	c.log.Debug("graphql operation",
		zap.String("op", op),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any, result any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var gr gqlResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if len(gr.Errors) > 0 {
		return fmt.Errorf("server error: %s", gr.Errors[0].Message)
	}
	if result != nil {
		if gr.Data == nil {
			return ErrMalformedResponse
		}
		if err := json.Unmarshal(gr.Data, result); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}
	return nil
}
