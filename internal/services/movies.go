// Movie API implementation of [CatalogService]
//
// Response types mirror the shapes served by the remote movie API; the
// client trusts them as-is.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// CatalogService defines read and saved-relation operations against the
// movie API. The remote API is authoritative for everything here.
type CatalogService interface {
	// Movies retrieves the movie collection, filtered and sorted by query.
	Movies(ctx context.Context, query models.FilterQuery) ([]models.Movie, error)

	// Movie retrieves one full movie record by id.
	Movie(ctx context.Context, id int) (*models.MovieDetail, error)

	// SavedMovies retrieves the user's saved movie list.
	SavedMovies(ctx context.Context, userID int) ([]models.Movie, error)

	// SavedIDs retrieves the user's saved movie ids as a membership set.
	SavedIDs(ctx context.Context, userID int) (map[int]bool, error)

	// Save creates a saved relation between user and movie.
	Save(ctx context.Context, userID, movieID int) error

	// Unsave removes a saved relation between user and movie.
	Unsave(ctx context.Context, userID, movieID int) error
}

// AccountService defines the credential operations against the movie API.
type AccountService interface {
	// Login exchanges credentials for the server's session payload.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// Signup registers a new account. The response body is not consumed
	// beyond its status; a new user logs in separately.
	Signup(ctx context.Context, username, email, password string) error
}

var (
	_ CatalogService = (*MovieService)(nil)
	_ AccountService = (*MovieService)(nil)
)

// MovieService implements [CatalogService] and [AccountService] over the
// remote REST API.
type MovieService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewMovieService creates a movie API client for the given base URL.
func NewMovieService(baseURL string, client *http.Client, logger *log.Logger) *MovieService {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &MovieService{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// doRequest performs an HTTP request against the movie API and decodes the
// JSON response into result. All failure modes (transport, non-2xx status,
// malformed payload) collapse into [shared.ErrAPIRequest] so callers treat
// them uniformly as "the operation failed"; the one distinction kept is a
// 404 on a movie fetch, which maps to [shared.ErrMovieNotFound].
func (s *MovieService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := s.baseURL + endpoint

	var req *http.Request
	var err error

	if body != nil {
		data, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("failed to encode request body: %w", merr)
		}
		req, err = http.NewRequestWithContext(ctx, method, apiURL, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, apiURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
	}

	requestID := shared.GenerateID()
	req.Header.Set("X-Request-ID", requestID)
	s.logger.Debug("catalog request", "method", method, "endpoint", endpoint, "request_id", requestID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// Movies retrieves the movie collection filtered and sorted by query.
func (s *MovieService) Movies(ctx context.Context, query models.FilterQuery) ([]models.Movie, error) {
	endpoint := "/movies?" + query.Encode().Encode()

	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie retrieves one full movie record by id.
func (s *MovieService) Movie(ctx context.Context, id int) (*models.MovieDetail, error) {
	endpoint := fmt.Sprintf("/movies/%d", id)

	var detail models.MovieDetail
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SavedMovies retrieves the user's saved movie records.
func (s *MovieService) SavedMovies(ctx context.Context, userID int) ([]models.Movie, error) {
	endpoint := fmt.Sprintf("/saved/%d", userID)

	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// SavedIDs derives the membership set from the user's saved movie list.
func (s *MovieService) SavedIDs(ctx context.Context, userID int) (map[int]bool, error) {
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

// Save creates a saved relation between user and movie.
func (s *MovieService) Save(ctx context.Context, userID, movieID int) error {
	body := models.SavedEntry{UserID: userID, MovieID: movieID}
	return s.doRequest(ctx, http.MethodPost, "/saved", body, nil)
}

// Unsave removes a saved relation between user and movie.
func (s *MovieService) Unsave(ctx context.Context, userID, movieID int) error {
	endpoint := fmt.Sprintf("/saved/%d/%d", userID, movieID)
	return s.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}
