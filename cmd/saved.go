package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/urfave/cli/v3"
)

// SavedList prints the session user's saved movies.
func (r *Runner) SavedList(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.currentUser()
	if err != nil {
		return err
	}

	movies, err := r.catalog.SavedMovies(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch saved movies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(movies) == 0 {
		return r.writePlain("No saved movies found.\n")
	}
	return r.writeBytes(formatter.MoviesToText(movies))
}

// SavedAdd creates a saved relation for the session user.
func (r *Runner) SavedAdd(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.currentUser()
	if err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	if err := r.catalog.Save(ctx, userID, movieID); err != nil {
		return fmt.Errorf("failed to save movie %d: %w", movieID, err)
	}

	return r.writePlain("✓ Added movie %d to saved\n", movieID)
}

// SavedRemove removes a saved relation for the session user.
func (r *Runner) SavedRemove(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.currentUser()
	if err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	if err := r.catalog.Unsave(ctx, userID, movieID); err != nil {
		return fmt.Errorf("failed to unsave movie %d: %w", movieID, err)
	}

	return r.writePlain("✓ Removed movie %d from saved\n", movieID)
}
