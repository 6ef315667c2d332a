// Package client habla con la API de administración del backend del portfolio.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-backend/internal/domain"
)

const adminRole = "admin"

var (
	ErrNoSession    = errors.New("no active admin session")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("server returned an invalid token")
)

// APIError describe una respuesta no exitosa del servidor.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Session es la sesión de administrador vigente.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
	now        func() time.Time
}

func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Tokens:     tokens,
		now:        time.Now,
	}
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsValidToken es el predicado único para decidir si un token guardado sigue
// sirviendo: un JWT con role=admin y exp posterior a now. La firma la verifica el servidor.
func IsValidToken(token string, now time.Time) bool {
	claims, ok := unverifiedClaims(token)
	if !ok || claims.Role != adminRole || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.After(now)
}

func unverifiedClaims(token string) (adminClaims, bool) {
	var claims adminClaims
	token = strings.TrimSpace(token)
	if token == "" {
		return claims, false
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return claims, false
	}
	return claims, true
}

// sessionFor arma la sesión de un token que ya pasó IsValidToken.
func sessionFor(token string) Session {
	claims, _ := unverifiedClaims(token)
	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}
}

// CurrentSession devuelve la sesión guardada si sigue vigente. Un token vencido se descarta.
func (c *Client) CurrentSession() (Session, bool) {
	token, ok := c.Tokens.Load()
	if !ok {
		return Session{}, false
	}
	if !IsValidToken(token, c.now()) {
		_ = c.Tokens.Clear()
		return Session{}, false
	}
	return sessionFor(token), true
}

func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", "", body, &resp); err != nil {
		return Session{}, err
	}
	if !IsValidToken(resp.Token, c.now()) {
		return Session{}, ErrInvalidToken
	}
	if err := c.Tokens.Save(resp.Token); err != nil {
		return Session{}, fmt.Errorf("store token: %w", err)
	}
	return sessionFor(resp.Token), nil
}

// Logout solo olvida el token local; el servidor no lleva lista de revocación.
func (c *Client) Logout() error {
	return c.Tokens.Clear()
}

func (c *Client) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	session, ok := c.CurrentSession()
	if !ok {
		return nil, ErrNoSession
	}
	submissions := []domain.Submission{}
	err := c.do(ctx, http.MethodGet, "/api/submissions", session.Token, nil, &submissions)
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) {
		_ = c.Tokens.Clear()
	}
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (c *Client) SubmitContact(ctx context.Context, name, email, message string) error {
	body := map[string]string{"name": name, "email": email, "message": message}
	return c.do(ctx, http.MethodPost, "/api/contact", "", body, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	var errBody struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errBody)
	apiErr := &APIError{Status: resp.StatusCode, Message: errBody.Message}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, apiErr)
	}
	return apiErr
}
