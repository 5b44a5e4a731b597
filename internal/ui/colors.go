package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#0D6EFD", "#198754", "#DC3545", "#FFA500", "#626262")

// trending ribbon and saved heart get their own accents
var (
	trendingStyle = NewBold("#FF416C")
	savedStyle    = NewStyle("#DC3545")
	unsavedStyle  = NewStyle("#626262")
	fieldStyle    = NewBold("#0D6EFD")
	placeholder   = NewEm("#999999")
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
