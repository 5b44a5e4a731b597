package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/marquee/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item], carrying the
// derived saved flag so the card can render its state without reaching
// back into the view.
type movieItem struct {
	movie models.Movie
	saved bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	title := i.movie.Title
	if i.movie.Trending() {
		title = fmt.Sprintf("%s %s", title, trendingStyle.Render("TRENDING"))
	}
	if i.saved {
		title = fmt.Sprintf("%s %s", title, savedStyle.Render("♥"))
	} else {
		title = fmt.Sprintf("%s %s", title, unsavedStyle.Render("♡"))
	}
	return title
}

func (i movieItem) Description() string {
	desc := fmt.Sprintf("%.1f ★", i.movie.Rating)
	if i.movie.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, clamp(i.movie.Description, 80))
	}
	return desc
}

func clamp(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// movieItems builds list items for movies, deriving each card's saved flag
// from membership in savedIDs. forceSaved pins every card saved, which is
// how the saved-movies view renders.
func movieItems(movies []models.Movie, savedIDs map[int]bool, forceSaved bool) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m, saved: forceSaved || savedIDs[m.ID]}
	}
	return items
}
