package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/marquee/internal/shared"
)

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		payload := `{"id":7,"username":"moviegoer","email":"a@b.com","token":"opaque-server-token"}`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
				t.Errorf("expected POST /auth/login, got %s %s", r.Method, r.URL.Path)
			}

			var creds map[string]string
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Fatalf("failed to decode credentials: %v", err)
			}
			if creds["email"] != "a@b.com" || creds["password"] != "secret" {
				t.Errorf("unexpected credentials: %v", creds)
			}

			w.Write([]byte(payload))
		}))
		defer server.Close()

		svc := NewMovieService(server.URL, nil, nil)
		user, err := svc.Login(context.Background(), "a@b.com", "secret")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if user.ID != 7 {
			t.Errorf("expected user ID 7, got %d", user.ID)
		}
		if user.Username != "moviegoer" {
			t.Errorf("expected username moviegoer, got %s", user.Username)
		}
		if string(user.Raw) != payload {
			t.Errorf("raw payload should be preserved verbatim, got %s", string(user.Raw))
		}
	})

	t.Run("Empty Credentials", func(t *testing.T) {
		svc := NewMovieService("http://example.invalid", nil, nil)

		if _, err := svc.Login(context.Background(), "", "secret"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty email, got %v", err)
		}
		if _, err := svc.Login(context.Background(), "a@b.com", ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty password, got %v", err)
		}
	})

	t.Run("Rejected Credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		svc := NewMovieService(server.URL, nil, nil)
		if _, err := svc.Login(context.Background(), "a@b.com", "wrong"); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Malformed Payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		svc := NewMovieService(server.URL, nil, nil)
		if _, err := svc.Login(context.Background(), "a@b.com", "secret"); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for malformed payload, got %v", err)
		}
	})
}

func TestSignup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/auth/signup" {
				t.Errorf("expected POST /auth/signup, got %s %s", r.Method, r.URL.Path)
			}

			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["username"] != "newuser" {
				t.Errorf("expected username newuser, got %s", body["username"])
			}

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":8}`))
		}))
		defer server.Close()

		svc := NewMovieService(server.URL, nil, nil)
		if err := svc.Signup(context.Background(), "newuser", "n@u.com", "secret"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Empty Fields", func(t *testing.T) {
		svc := NewMovieService("http://example.invalid", nil, nil)

		if err := svc.Signup(context.Background(), "", "n@u.com", "secret"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty username, got %v", err)
		}
		if err := svc.Signup(context.Background(), "newuser", "", "secret"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty email, got %v", err)
		}
	})

	t.Run("Duplicate Account", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		svc := NewMovieService(server.URL, nil, nil)
		if err := svc.Signup(context.Background(), "newuser", "n@u.com", "secret"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
