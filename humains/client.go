// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package humains

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds every login and inject request.
const DefaultTimeout = 10 * time.Second

// maxValueRunes caps injected string values; the platform rejects larger
// payloads.
const maxValueRunes = 30000

// Client talks to the Humains platform: Basic-auth login for a bearer
// token, then value injection into conversations.
type Client struct {
	loginURL  string
	injectURL string
	username  string
	password  string

	httpClient *http.Client
	logger     *slog.Logger

	session session
	reauth  singleflight.Group
}

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithTimeout bounds each HTTP request. Default is DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient != nil {
			c.httpClient = httpClient
		}
		return nil
	}
}

// NewClient creates a Humains client. All four arguments are required; the
// client starts unauthenticated until Authenticate succeeds.
func NewClient(loginURL, injectURL, username, password string, opts ...Option) (*Client, error) {
	if loginURL == "" || injectURL == "" || username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	c := &Client{
		loginURL:   loginURL,
		injectURL:  injectURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Authenticate logs in with the configured credentials and stores the
// bearer token for subsequent inject calls.
func (c *Client) Authenticate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: login returned status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	token := body.Token
	if token == "" {
		token = body.AccessToken
	}
	if token == "" {
		return fmt.Errorf("%w: login response carried no token", ErrAuthenticationFailed)
	}

	c.session.store(token)
	c.logger.Debug("authenticated with humains platform")
	return nil
}

// Token returns the current bearer token, or ErrNotAuthenticated when no
// login has succeeded yet.
func (c *Client) Token() (string, error) {
	token, ok := c.session.current()
	if !ok {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// Authenticated reports whether a bearer token is currently held.
func (c *Client) Authenticated() bool {
	_, ok := c.session.current()
	return ok
}

// ForceReauth drops the current token and logs in again. Concurrent calls
// collapse into a single login request; every caller gets its outcome.
func (c *Client) ForceReauth(ctx context.Context) error {
	_, err, _ := c.reauth.Do("reauth", func() (any, error) {
		c.session.clear()
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Inject posts the values into a conversation. Without a stored token it
// logs in first, so a failed startup login does not disable injection. On a
// 401 the client re-authenticates once and retries the same payload once;
// any other failure is reported immediately. At most one login runs per
// call. The outcome never carries more than the error: the payload is not
// returned to the conversation on failure.
func (c *Client) Inject(ctx context.Context, clientID, conversationID string, values map[string]string) error {
	var reauthed bool
	token, err := c.Token()
	if err != nil {
		if !errors.Is(err, ErrNotAuthenticated) {
			return err
		}
		if err := c.ForceReauth(ctx); err != nil {
			return err
		}
		reauthed = true
		if token, err = c.Token(); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(map[string]any{
		"client_id":       clientID,
		"conversation_id": conversationID,
		"values":          truncateValues(values),
	})
	if err != nil {
		return err
	}

	status, err := c.postInject(ctx, token, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInjectionFailed, err)
	}
	if status == http.StatusUnauthorized && !reauthed {
		c.logger.Debug("bearer token rejected, re-authenticating",
			"tokenIssuedAt", c.session.issuedAt())
		if err := c.ForceReauth(ctx); err != nil {
			return err
		}
		token, err = c.Token()
		if err != nil {
			return err
		}
		status, err = c.postInject(ctx, token, payload)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInjectionFailed, err)
		}
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: inject returned status %d", ErrInjectionFailed, status)
	}

	c.logger.Debug("injected values into conversation",
		"clientID", clientID, "conversationID", conversationID, "valueCount", len(values))
	return nil
}

func (c *Client) postInject(ctx context.Context, token string, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.injectURL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// truncateValues caps each string value at maxValueRunes, marking the cut
// with an ellipsis.
func truncateValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		runes := []rune(value)
		if len(runes) > maxValueRunes {
			value = string(runes[:maxValueRunes]) + "..."
		}
		out[key] = value
	}
	return out
}
