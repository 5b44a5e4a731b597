package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/media"
	"github.com/desertthunder/marquee/internal/models"
)

// imageKey identifies one of the detail view's independent image slots.
type imageKey int

const (
	imgBanner imageKey = iota
	imgHero
	imgHeroine
)

// detailState holds the movie detail view's local state. Each image slot
// fails independently; a broken banner never hides the hero image.
type detailState struct {
	id    int
	movie *models.MovieDetail
	saved bool

	banner  media.Slot
	hero    media.Slot
	heroine media.Slot
}

func (d *detailState) slot(k imageKey) *media.Slot {
	switch k {
	case imgHero:
		return &d.hero
	case imgHeroine:
		return &d.heroine
	default:
		return &d.banner
	}
}

func (d *detailState) placeholderFor(k imageKey) string {
	switch k {
	case imgHero:
		return "Hero image not available"
	case imgHeroine:
		return "Heroine image not available"
	default:
		title := ""
		if d.movie != nil {
			title = d.movie.Title + " "
		}
		return title + "banner not available"
	}
}

// seedSlots resolves the three image references once the detail record has
// arrived. Empty references fail immediately; the rest await their probe.
func (d *detailState) seedSlots(host string) {
	refs := map[imageKey]string{
		imgBanner:  d.movie.Banner,
		imgHero:    d.movie.HeroImage,
		imgHeroine: d.movie.HeroineImage,
	}
	for k, ref := range refs {
		url := media.Resolve(host, ref)
		if url == "" {
			*d.slot(k) = media.PendingSlot("").Failed(d.placeholderFor(k))
			continue
		}
		*d.slot(k) = media.PendingSlot(url)
	}
}

func renderSlot(s media.Slot) string {
	switch s.State {
	case media.SlotFailed:
		return placeholder.Render("[" + s.Label + "]")
	case media.SlotPending:
		return styles.help.Render(s.URL)
	default:
		return s.URL
	}
}

func (m *Model) renderDetail() string {
	d := m.detail
	if d.movie == nil {
		return styles.help.Render("Loading movie details...")
	}

	mv := d.movie

	heart := unsavedStyle.Render("♡")
	if d.saved {
		heart = savedStyle.Render("♥")
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s %s", mv.Title, heart)))
	b.WriteString("\n")
	b.WriteString(renderSlot(d.banner))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", fieldStyle.Render("Hero:"), mv.HeroName))
	b.WriteString("  " + renderSlot(d.hero) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", fieldStyle.Render("Heroine:"), mv.HeroineName))
	b.WriteString("  " + renderSlot(d.heroine) + "\n\n")

	rows := []struct {
		label, value string
	}{
		{"Description", mv.Description},
		{"Cast", mv.Cast},
		{"Rating", fmt.Sprintf("%.1f", mv.Rating)},
		{"Release Year", fmt.Sprintf("%d", mv.ReleaseYear)},
		{"Platform", mv.Platform},
		{"Music", mv.Music},
		{"Story", mv.Story},
		{"VFX", mv.VFX},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", fieldStyle.Render(row.label+":"), row.value))
	}

	return b.String()
}
