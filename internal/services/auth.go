// Credential operations of the movie API.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for the server's session payload. The payload
// is opaque: identity fields are decoded for display, and the raw body is
// kept verbatim on [models.User.Raw] so the session store persists exactly
// what the server issued.
func (s *MovieService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}

	data, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read payload: %v", shared.ErrAuthFailed, err)
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", shared.ErrAuthFailed, err)
	}
	user.Raw = payload

	s.logger.Debug("login succeeded", "user_id", user.ID)
	return &user, nil
}

// Signup registers a new account. Success does not authenticate the new
// user; the response body is not consumed beyond its status.
func (s *MovieService) Signup(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", shared.ErrInvalidInput)
	}

	body := signupRequest{Username: username, Email: email, Password: password}
	return s.doRequest(ctx, http.MethodPost, "/auth/signup", body, nil)
}
