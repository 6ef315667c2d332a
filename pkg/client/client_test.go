package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/service"
)

func signedToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := adminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("client-side-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestIsValidToken(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		token string
		want  bool
	}{
		"valid":        {signedToken(t, "admin", now.Add(time.Hour)), true},
		"expired":      {signedToken(t, "admin", now.Add(-time.Second)), false},
		"wrong role":   {signedToken(t, "viewer", now.Add(time.Hour)), false},
		"empty":        {"", false},
		"dummy":        {"dummy-token", false},
		"literal null": {"null", false},
		"pseudo token": {"admin-1700000000000-abcdefghijk-lmnopqrstuv", false},
	}
	for name, tc := range cases {
		if got := IsValidToken(tc.token, now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, got)
		}
	}
}

// newTestServer imita la API con un JWTService real para que los tokens sean auténticos.
func newTestServer(t *testing.T, jwtSvc *service.JWTService) *httptest.Server {
	t.Helper()
	rows := []domain.Submission{
		{ID: "2", Name: "b", CreatedAt: time.Date(2026, 6, 1, 10, 5, 0, 0, time.UTC)},
		{ID: "1", Name: "a", CreatedAt: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "admin" || body.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		token, err := jwtSvc.IssueAdminToken()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(token)
	})
	mux.HandleFunc("/api/submissions", func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if _, err := jwtSvc.ParseAdminToken(strings.TrimPrefix(header, "Bearer ")); err != nil {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Forbidden"})
			return
		}
		_ = json.NewEncoder(w).Encode(rows)
	})
	mux.HandleFunc("/api/contact", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Name, Email, Message string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Name == "" || body.Email == "" || body.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "missing required fields"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginListLogout(t *testing.T) {
	srv := newTestServer(t, service.NewJWTService("secret", time.Hour))
	c := New(srv.URL+"/", nil)
	ctx := context.Background()

	if _, err := c.ListSubmissions(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before login, got %v", err)
	}

	session, err := c.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" || session.ExpiresAt.IsZero() {
		t.Fatalf("unexpected session: %+v", session)
	}
	if current, ok := c.CurrentSession(); !ok || current.Token != session.Token {
		t.Fatalf("expected stored session")
	}

	got, err := c.ListSubmissions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" {
		t.Fatalf("unexpected submissions: %+v", got)
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := c.CurrentSession(); ok {
		t.Fatalf("expected no session after logout")
	}
}

func TestClient_LoginRejected(t *testing.T) {
	srv := newTestServer(t, service.NewJWTService("secret", time.Hour))
	c := New(srv.URL, nil)

	_, err := c.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid credentials" {
		t.Fatalf("expected api error message, got %v", err)
	}
	if _, ok := c.CurrentSession(); ok {
		t.Fatalf("expected no session after failed login")
	}
}

func TestClient_ForbiddenClearsStoredToken(t *testing.T) {
	srv := newTestServer(t, service.NewJWTService("secret", time.Hour))
	store := NewMemoryTokenStore()
	// Pasa el chequeo local pero la firma no es la del servidor.
	_ = store.Save(signedToken(t, "admin", time.Now().Add(time.Hour)))
	c := New(srv.URL, store)

	if _, err := c.ListSubmissions(context.Background()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected token cleared after 403")
	}
}

func TestClient_ExpiredStoredTokenIsDiscarded(t *testing.T) {
	store := NewMemoryTokenStore()
	_ = store.Save(signedToken(t, "admin", time.Now().Add(-time.Minute)))
	c := New("http://127.0.0.1:0", store)

	if _, ok := c.CurrentSession(); ok {
		t.Fatalf("expected expired token to be rejected")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected expired token to be cleared")
	}
}

func TestClient_SubmitContact(t *testing.T) {
	srv := newTestServer(t, service.NewJWTService("secret", time.Hour))
	c := New(srv.URL, nil)

	if err := c.SubmitContact(context.Background(), "Ada", "ada@example.com", "Hi!"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	err := c.SubmitContact(context.Background(), "Ada", "", "Hi!")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 api error, got %v", err)
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	if _, ok := store.Load(); ok {
		t.Fatalf("expected empty store")
	}
	if err := store.Save("abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if token, ok := store.Load(); !ok || token != "abc" {
		t.Fatalf("expected saved token, got %q", token)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
}

func TestClient_LoginRejectsTokenFailingLocalCheck(t *testing.T) {
	viewer := signedToken(t, "viewer", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": viewer})
	}))
	t.Cleanup(srv.Close)
	store := NewMemoryTokenStore()
	c := New(srv.URL, store)

	if _, err := c.Login(context.Background(), "admin", "admin123"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected rejected token not to be stored")
	}
}

func TestClient_CurrentSessionUsesIsValidToken(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(30 * time.Minute)
	store := NewMemoryTokenStore()
	c := New("http://127.0.0.1:0", store)
	c.now = func() time.Time { return now }

	_ = store.Save(signedToken(t, "viewer", exp))
	if _, ok := c.CurrentSession(); ok {
		t.Fatalf("expected non-admin token to be rejected")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected non-admin token to be cleared")
	}

	token := signedToken(t, "admin", exp)
	_ = store.Save(token)
	session, ok := c.CurrentSession()
	if !ok || session.Token != token || !session.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected session: %+v ok=%v", session, ok)
	}
}
