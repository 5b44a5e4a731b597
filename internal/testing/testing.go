// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/marquee/internal/models"
)

// ScriptedCatalog is a test double for [services.CatalogService] with
// injectable behavior and per-method call counters, so tests can pin
// properties like "zero network calls without a session".
type ScriptedCatalog struct {
	MoviesFn      func(models.FilterQuery) ([]models.Movie, error)
	MovieFn       func(int) (*models.MovieDetail, error)
	SavedMoviesFn func(int) ([]models.Movie, error)
	SaveErr       error
	UnsaveErr     error

	MoviesCalls int
	MovieCalls  int
	SavedCalls  int
	SaveCalls   int
	UnsaveCalls int
}

func (s *ScriptedCatalog) Movies(ctx context.Context, query models.FilterQuery) ([]models.Movie, error) {
	s.MoviesCalls++
	if s.MoviesFn != nil {
		return s.MoviesFn(query)
	}
	return []models.Movie{}, nil
}

func (s *ScriptedCatalog) Movie(ctx context.Context, id int) (*models.MovieDetail, error) {
	s.MovieCalls++
	if s.MovieFn != nil {
		return s.MovieFn(id)
	}
	return &models.MovieDetail{Movie: models.Movie{ID: id}}, nil
}

func (s *ScriptedCatalog) SavedMovies(ctx context.Context, userID int) ([]models.Movie, error) {
	s.SavedCalls++
	if s.SavedMoviesFn != nil {
		return s.SavedMoviesFn(userID)
	}
	return []models.Movie{}, nil
}

func (s *ScriptedCatalog) SavedIDs(ctx context.Context, userID int) (map[int]bool, error) {
	movies, err := s.SavedMovies(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[int]bool, len(movies))
	for _, m := range movies {
		ids[m.ID] = true
	}
	return ids, nil
}

func (s *ScriptedCatalog) Save(ctx context.Context, userID, movieID int) error {
	s.SaveCalls++
	return s.SaveErr
}

func (s *ScriptedCatalog) Unsave(ctx context.Context, userID, movieID int) error {
	s.UnsaveCalls++
	return s.UnsaveErr
}

// NetworkCalls sums every call that would have gone over the wire.
func (s *ScriptedCatalog) NetworkCalls() int {
	return s.MoviesCalls + s.MovieCalls + s.SavedCalls + s.SaveCalls + s.UnsaveCalls
}

// ScriptedAccount is a test double for [services.AccountService].
type ScriptedAccount struct {
	LoginFn   func(email, password string) (*models.User, error)
	SignupErr error

	LoginCalls  int
	SignupCalls int
}

func (s *ScriptedAccount) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.LoginCalls++
	if s.LoginFn != nil {
		return s.LoginFn(email, password)
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (s *ScriptedAccount) Signup(ctx context.Context, username, email, password string) error {
	s.SignupCalls++
	return s.SignupErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// CountingRoundTripper counts requests before delegating to a base transport.
type CountingRoundTripper struct {
	Base  http.RoundTripper
	Calls int
}

func (c *CountingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.Calls++
	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
