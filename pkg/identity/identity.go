// Package identity is a thin HTTP client for the external identity
// provider. The provider owns tokens and credentials; this service never
// stores either.
package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// User is the identity the provider resolves a token to.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the token pair issued on a successful password sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Config holds the provider endpoint and the service credential sent with
// every call.
type Config struct {
	BaseURL    string
	ServiceKey string
}

// Client calls the identity provider.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

// NewClient creates a new identity provider client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		http:       &http.Client{},
	}
}

// GetUser validates a bearer token with the provider and returns the user
// it belongs to. Any failure, including the provider being unreachable,
// comes back as an error; callers treat that as anonymous.
func (c *Client) GetUser(token string) (*User, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the keep-alive connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("token rejected by identity provider (status %d)", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity response has no user id")
	}
	return &user, nil
}

// SignIn verifies email+password with the provider and returns its token
// pair. On rejection the provider's own message text is preserved in the
// returned error.
func (c *Client) SignIn(email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/token?grant_type=password", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", providerErrorMessage(resp.Body))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("login_failed")
	}
	return &session, nil
}

// providerErrorMessage extracts the provider's error text from a rejection
// body, falling back to a generic code.
func providerErrorMessage(body io.Reader) string {
	var payload struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Message     string `json:"msg"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		switch {
		case payload.Description != "":
			return payload.Description
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	return "login_failed"
}
