// Package apiclient talks to the Linguista REST API on behalf of the bot.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every API call
const DefaultTimeout = 15 * time.Second

// ErrUnauthorized is returned when the API rejects the token
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-success API response
type Error struct {
	Status int
	Body   map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Detail())
}

// Detail returns the "detail" message or the collected field errors
func (e *Error) Detail() string {
	if d, ok := e.Body["detail"].(string); ok {
		return d
	}

	fields := make([]string, 0, len(e.Body))
	for f := range e.Body {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var parts []string
	for _, f := range fields {
		switch v := e.Body[f].(type) {
		case []any:
			for _, m := range v {
				parts = append(parts, fmt.Sprintf("%s: %v", f, m))
			}
		default:
			parts = append(parts, fmt.Sprintf("%s: %v", f, v))
		}
	}
	return strings.Join(parts, "\n")
}

// Validation reports whether the API rejected the input (400)
func (e *Error) Validation() bool { return e.Status == http.StatusBadRequest }

// Conflict reports whether an amount limit or uniqueness rule was hit (409)
func (e *Error) Conflict() bool { return e.Status == http.StatusConflict }

// Client calls the API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the API rooted at baseURL (e.g. http://host/api/v1)
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

type Language struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameLocal string `json:"name_local"`
	Isocode   string `json:"isocode"`
}

type UserLanguage struct {
	Slug     string    `json:"slug"`
	Language *Language `json:"language"`
	Level    string    `json:"level"`
}

type Profile struct {
	ID                string         `json:"id"`
	Username          string         `json:"username"`
	Email             string         `json:"email"`
	FirstName         string         `json:"first_name"`
	Image             *string        `json:"image"`
	NativeLanguages   []UserLanguage `json:"native_languages"`
	LearningLanguages []UserLanguage `json:"learning_languages"`
	WordsCount        int            `json:"words_count"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// ProfileUpdate carries the fields to change, nil means unchanged
type ProfileUpdate struct {
	FirstName       *string  `json:"first_name,omitempty"`
	Image           *string  `json:"image,omitempty"`
	NativeLanguages []string `json:"native_languages,omitempty"`
}

// Register signs up. It returns the API detail when e-mail confirmation is pending.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (confirmationPending bool, detail string, err error) {
	var body struct {
		Detail string `json:"detail"`
	}
	status, err := c.do(ctx, http.MethodPost, "/auth/registration/", "", req, &body)
	if err != nil {
		return false, "", err
	}
	if status == http.StatusNoContent {
		return false, "", nil
	}
	return true, body.Detail, nil
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var body struct {
		Key string `json:"key"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login/", "", req, &body); err != nil {
		return "", err
	}
	if body.Key == "" {
		return "", errors.New("api: login response has no key")
	}
	return body.Key, nil
}

// Logout revokes token
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout/", token, nil, nil)
	return err
}

// Profile returns the token owner's profile
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	var p Profile
	if _, err := c.do(ctx, http.MethodGet, "/users/me/", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile patches the token owner's profile
func (c *Client) UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) (*Profile, error) {
	var p Profile
	if _, err := c.do(ctx, http.MethodPatch, "/users/me/", token, upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LearningAvailableLanguages lists languages that can be learned
func (c *Client) LearningAvailableLanguages(ctx context.Context, token string) ([]Language, error) {
	var langs []Language
	if _, err := c.do(ctx, http.MethodGet, "/languages/learning-available/", token, nil, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// AddLearningLanguage adds a language by name to the token owner's learning list
func (c *Client) AddLearningLanguage(ctx context.Context, token, language string) error {
	req := []map[string]string{{"language": language}}
	_, err := c.do(ctx, http.MethodPost, "/users/me/learning-languages/", token, req, nil)
	return err
}

// do sends a JSON request and decodes a 2xx response into out
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	c.logger.Debug("API request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Body: map[string]any{}}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &apiErr.Body); err != nil {
				apiErr.Body = map[string]any{"detail": string(raw)}
			}
		}
		c.logger.Debug("API error response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return resp.StatusCode, apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
