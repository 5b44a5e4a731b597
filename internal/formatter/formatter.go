// package formatter renders movie records to CLI output formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/marquee/internal/models"
)

// MoviesToCSV converts movie summaries to CSV with columns: ID, Title, Rating, Description
func MoviesToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Rating", "Description"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			strconv.Itoa(movie.ID),
			movie.Title,
			strconv.FormatFloat(movie.Rating, 'f', 1, 64),
			movie.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// MoviesToText converts movie summaries to a plain text listing.
func MoviesToText(movies []models.Movie) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(movies)))
	for i, movie := range movies {
		marker := ""
		if movie.Trending() {
			marker = " [TRENDING]"
		}
		buf.WriteString(fmt.Sprintf("%d. %s (%.1f)%s\n", i+1, movie.Title, movie.Rating, marker))
	}

	return buf.Bytes()
}

// DetailToMarkdown converts one full movie record to Markdown.
func DetailToMarkdown(detail *models.MovieDetail) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", detail.Title))

	if detail.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", detail.Description))
	}

	buf.WriteString(fmt.Sprintf("**Rating**: %.1f\n", detail.Rating))
	if detail.ReleaseYear != 0 {
		buf.WriteString(fmt.Sprintf("**Release Year**: %d\n", detail.ReleaseYear))
	}
	if detail.Platform != "" {
		buf.WriteString(fmt.Sprintf("**Platform**: %s\n", detail.Platform))
	}
	buf.WriteString("\n## Credits\n\n")

	credits := []struct {
		label, value string
	}{
		{"Hero", detail.HeroName},
		{"Heroine", detail.HeroineName},
		{"Cast", detail.Cast},
		{"Music", detail.Music},
		{"Story", detail.Story},
		{"VFX", detail.VFX},
	}
	for _, c := range credits {
		if c.value != "" {
			buf.WriteString(fmt.Sprintf("- %s: %s\n", c.label, c.value))
		}
	}

	return buf.Bytes()
}
