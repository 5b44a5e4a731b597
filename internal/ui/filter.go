package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/models"
)

// collapseWidth is the terminal width below which the filter panel is
// collapsed behind a toggle. Presentation only.
const collapseWidth = 80

// yearSpan is how many release years back the year selector offers.
const yearSpan = 20

// panelFocus tags which control of the filter panel owns key input.
type panelFocus int

const (
	focusSearch panelFocus = iota
	focusYear
	focusGenre
	focusSort
)

// filterPanel collects search text, year, genre and sort order, and emits
// the full query on change.
//
// Structured selectors (year, genre, sort) apply immediately; free-text
// search applies only on explicit submit, since filtering per keystroke is
// noisy against a remote collection. Reset clears every field to its
// default and emits once.
type filterPanel struct {
	search textinput.Model

	years    []string // index 0 is "any year"
	yearIdx  int
	genreIdx int
	sortIdx  int

	focus     panelFocus
	active    bool
	collapsed bool
	width     int
}

func newFilterPanel() filterPanel {
	search := textinput.New()
	search.Placeholder = "e.g. Inception"
	search.CharLimit = 100
	search.Width = 30

	years := append([]string{""}, models.YearOptions(yearSpan)...)

	return filterPanel{
		search: search,
		years:  years,
	}
}

// Query assembles the current filter state.
func (p filterPanel) Query() models.FilterQuery {
	return models.FilterQuery{
		Search: p.search.Value(),
		Year:   p.years[p.yearIdx],
		Genre:  models.Genres[p.genreIdx],
		Sort:   models.SortKeys[p.sortIdx],
	}
}

func (p *filterPanel) setWidth(w int) {
	wasWide := p.width >= collapseWidth
	first := p.width == 0
	p.width = w
	if w >= collapseWidth {
		p.collapsed = false
	} else if wasWide || first {
		p.collapsed = true
	}
}

// toggle shows or hides the collapsed panel. Only meaningful below the
// width threshold; wide terminals always show the panel.
func (p *filterPanel) toggle() {
	if p.width < collapseWidth {
		p.collapsed = !p.collapsed
	}
}

func (p *filterPanel) focusSearchInput() tea.Cmd {
	p.active = true
	p.focus = focusSearch
	return p.search.Focus()
}

func (p *filterPanel) blur() {
	p.active = false
	p.search.Blur()
}

func (p *filterPanel) reset() models.FilterQuery {
	p.search.SetValue("")
	p.yearIdx = 0
	p.genreIdx = 0
	p.sortIdx = 0
	return p.Query()
}

// Update handles key input while the panel is active. The returned query
// pointer is non-nil exactly when the panel emits: a structured selector
// changed, the form was submitted, or the form was reset.
func (p filterPanel) Update(msg tea.Msg) (filterPanel, *models.FilterQuery, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.active {
		return p, nil, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		p.cycleFocus(1)
		return p, nil, nil

	case "shift+tab", "up":
		p.cycleFocus(-1)
		return p, nil, nil

	case "left", "right":
		delta := 1
		if keyMsg.String() == "left" {
			delta = -1
		}
		if changed := p.cycleValue(delta); changed {
			q := p.Query()
			return p, &q, nil
		}
		return p, nil, nil

	case "enter":
		q := p.Query()
		return p, &q, nil

	case "ctrl+r":
		q := p.reset()
		return p, &q, nil
	}

	if p.focus == focusSearch {
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		return p, nil, cmd
	}

	return p, nil, nil
}

func (p *filterPanel) cycleFocus(delta int) {
	next := int(p.focus) + delta
	if next < int(focusSearch) {
		next = int(focusSort)
	}
	if next > int(focusSort) {
		next = int(focusSearch)
	}
	p.focus = panelFocus(next)

	if p.focus == focusSearch {
		p.search.Focus()
	} else {
		p.search.Blur()
	}
}

// cycleValue steps the focused selector and reports whether a value changed.
// The search input is not a selector; arrow keys there move the cursor.
func (p *filterPanel) cycleValue(delta int) bool {
	switch p.focus {
	case focusYear:
		p.yearIdx = wrap(p.yearIdx+delta, len(p.years))
	case focusGenre:
		p.genreIdx = wrap(p.genreIdx+delta, len(models.Genres))
	case focusSort:
		p.sortIdx = wrap(p.sortIdx+delta, len(models.SortKeys))
	default:
		return false
	}
	return true
}

func wrap(i, n int) int {
	if i < 0 {
		return n - 1
	}
	if i >= n {
		return 0
	}
	return i
}

// View renders the panel, or its toggle hint when collapsed.
func (p filterPanel) View() string {
	if p.collapsed {
		return styles.help.Render("press f for filters")
	}

	year := p.years[p.yearIdx]
	if year == "" {
		year = "Any Year"
	}
	genre := models.Genres[p.genreIdx]
	if genre == "" {
		genre = "All Genres"
	}

	var b strings.Builder
	b.WriteString(p.renderField(focusSearch, "Search", p.search.View()))
	b.WriteString("  ")
	b.WriteString(p.renderField(focusYear, "Year", year))
	b.WriteString("  ")
	b.WriteString(p.renderField(focusGenre, "Genre", genre))
	b.WriteString("  ")
	b.WriteString(p.renderField(focusSort, "Sort", models.SortLabel(models.SortKeys[p.sortIdx])))

	if p.active {
		b.WriteString("\n")
		b.WriteString(styles.help.Render("tab: next field • ←/→: change • enter: search • ctrl+r: reset • esc: done"))
	}

	return b.String()
}

func (p filterPanel) renderField(f panelFocus, label, value string) string {
	rendered := fmt.Sprintf("%s: %s", label, value)
	if p.active && p.focus == f {
		return fieldStyle.Render(rendered)
	}
	return rendered
}
