package models

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// TrendingThreshold is the minimum rating at which a movie is marked as
// trending. Presentation rule only, the server knows nothing about it.
const TrendingThreshold = 8.5

// Movie is the summary shape returned by the movie collection endpoint.
// Identity is ID; everything is read-only from the client's perspective.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Rating      float64 `json:"rating"`
}

// Trending reports whether the movie should carry the trending marker.
func (m Movie) Trending() bool {
	return m.Rating >= TrendingThreshold
}

// MovieDetail is the full per-movie record, a superset of [Movie] fetched
// on demand by id.
type MovieDetail struct {
	Movie
	Banner       string `json:"banner"`
	HeroName     string `json:"hero_name"`
	HeroImage    string `json:"hero_img"`
	HeroineName  string `json:"heroine_name"`
	HeroineImage string `json:"heroine_img"`
	Cast         string `json:"cast"`
	ReleaseYear  int    `json:"release_year"`
	Platform     string `json:"platform"`
	Music        string `json:"music"`
	Story        string `json:"story"`
	VFX          string `json:"vfx"`
}

// User is the session identity decoded from the login response. The server's
// payload is opaque; Raw preserves it verbatim so persistence never drops
// fields this client does not model.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// SavedEntry is the request body for creating a saved relation.
type SavedEntry struct {
	UserID  int `json:"userId"`
	MovieID int `json:"movieId"`
}

// Sort keys accepted by the movie collection endpoint.
const (
	SortTitleAsc   = "title_asc"
	SortTitleDesc  = "title_desc"
	SortRatingDesc = "rating_desc"
	SortRatingAsc  = "rating_asc"
)

// SortKeys lists the sort vocabulary in display order.
var SortKeys = []string{SortTitleAsc, SortTitleDesc, SortRatingDesc, SortRatingAsc}

// SortLabel returns a human readable label for a sort key.
func SortLabel(key string) string {
	switch key {
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	case SortRatingDesc:
		return "Rating High-Low"
	case SortRatingAsc:
		return "Rating Low-High"
	default:
		return key
	}
}

// Genres lists the selectable genre vocabulary. Empty string means all genres.
var Genres = []string{"", "Action", "Drama", "Comedy", "Romance", "Thriller", "Sci-Fi", "Horror", "Adventure"}

// YearOptions returns the selectable release years, newest first, covering
// the last n years. Empty string (any year) is not included.
func YearOptions(n int) []string {
	years := make([]string, 0, n)
	current := time.Now().Year()
	for i := 0; i < n; i++ {
		years = append(years, strconv.Itoa(current-i))
	}
	return years
}

// FilterQuery is the ephemeral filter state emitted by the filter panel and
// passed to the movie collection fetch.
type FilterQuery struct {
	Search string
	Year   string
	Genre  string
	Sort   string
}

// DefaultFilter returns the panel's reset state: everything empty, sort at
// title ascending.
func DefaultFilter() FilterQuery {
	return FilterQuery{Sort: SortTitleAsc}
}

// IsDefault reports whether q equals [DefaultFilter].
func (q FilterQuery) IsDefault() bool {
	return q == DefaultFilter()
}

// Encode converts the query to URL parameters. Empty fields are omitted;
// the sort key is always present since it always has a value.
func (q FilterQuery) Encode() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Year != "" {
		values.Set("year", q.Year)
	}
	if q.Genre != "" {
		values.Set("genre", q.Genre)
	}
	sort := q.Sort
	if sort == "" {
		sort = SortTitleAsc
	}
	values.Set("sort", sort)
	return values
}
