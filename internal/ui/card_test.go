package ui

import (
	"strings"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
)

func TestMovieItem(t *testing.T) {
	t.Run("Trending Marker", func(t *testing.T) {
		hot := movieItem{movie: models.Movie{Title: "Big Hit", Rating: 9.0}}
		if !strings.Contains(hot.Title(), "TRENDING") {
			t.Error("high-rated card should carry the trending marker")
		}

		cold := movieItem{movie: models.Movie{Title: "Quiet One", Rating: 6.0}}
		if strings.Contains(cold.Title(), "TRENDING") {
			t.Error("low-rated card should not carry the trending marker")
		}
	})

	t.Run("Saved Heart", func(t *testing.T) {
		saved := movieItem{movie: models.Movie{Title: "X"}, saved: true}
		if !strings.Contains(saved.Title(), "♥") {
			t.Error("saved card should render a filled heart")
		}

		unsaved := movieItem{movie: models.Movie{Title: "X"}}
		if !strings.Contains(unsaved.Title(), "♡") {
			t.Error("unsaved card should render an empty heart")
		}
	})

	t.Run("Description Clamp", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		item := movieItem{movie: models.Movie{Rating: 7.0, Description: long}}

		desc := item.Description()
		if !strings.Contains(desc, "…") {
			t.Error("long description should be clamped with an ellipsis")
		}
		if strings.Contains(desc, long) {
			t.Error("full description should not appear on the card")
		}

		short := movieItem{movie: models.Movie{Rating: 7.0, Description: "brief"}}
		if !strings.Contains(short.Description(), "brief") {
			t.Error("short description should appear untouched")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		item := movieItem{movie: models.Movie{Title: "Dune"}}
		if item.FilterValue() != "Dune" {
			t.Errorf("filter value should be the title, got %s", item.FilterValue())
		}
	})
}

func TestMovieItems(t *testing.T) {
	movies := []models.Movie{{ID: 1}, {ID: 2}, {ID: 3}}
	savedIDs := map[int]bool{2: true}

	t.Run("Derives Saved Flags", func(t *testing.T) {
		items := movieItems(movies, savedIDs, false)
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}

		if items[0].(movieItem).saved {
			t.Error("movie 1 should not be saved")
		}
		if !items[1].(movieItem).saved {
			t.Error("movie 2 should be saved")
		}
	})

	t.Run("Force Saved", func(t *testing.T) {
		items := movieItems(movies, nil, true)
		for _, item := range items {
			if !item.(movieItem).saved {
				t.Error("forced items should all be saved")
			}
		}
	})
}

func TestClamp(t *testing.T) {
	if clamp("short", 80) != "short" {
		t.Error("strings under the limit should pass through")
	}

	out := clamp(strings.Repeat("x", 100), 10)
	if len([]rune(out)) != 10 {
		t.Errorf("clamped string should be exactly the limit, got %d runes", len([]rune(out)))
	}
	if !strings.HasSuffix(out, "…") {
		t.Error("clamped string should end with an ellipsis")
	}
}
