package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesList fetches the movie collection with the given filters and prints it.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	query := models.FilterQuery{
		Search: cmd.String("search"),
		Year:   cmd.String("year"),
		Genre:  cmd.String("genre"),
		Sort:   cmd.String("sort"),
	}

	movies, err := r.catalog.Movies(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to fetch movies: %w", err)
	}

	r.logger.Debug("fetched movies", "count", len(movies))

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(movies, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.MoviesToCSV(movies)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	default:
		return r.writeBytes(formatter.MoviesToText(movies))
	}
}

// MoviesGet fetches one movie's full record by id and prints it.
func (r *Runner) MoviesGet(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.catalog.Movie(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}
	return r.writeBytes(formatter.DetailToMarkdown(detail))
}

func movieIDArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id must be a number, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}
