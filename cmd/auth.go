package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AuthLogin authenticates against the movie API and persists the returned
// payload as the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	user, err := r.account.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := r.session.Login(user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	r.logger.Info("logged in", "user_id", user.ID)
	return r.writePlain("✓ Logged in as %s\n", user.Email)
}

// AuthSignup registers a new account. Deliberately does not log the new
// user in; they authenticate with 'auth login' afterwards.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email := cmd.String("email")
	password := cmd.String("password")

	if err := r.account.Signup(ctx, username, email, password); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	return r.writePlain("✓ Signup successful! You can now login.\n")
}

// AuthLogout clears the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.session.Current() == nil {
		return r.writePlain("No active session.\n")
	}

	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami prints the active session user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user := r.session.Current()
	if user == nil {
		return r.writePlain("Not logged in.\n")
	}

	return r.writePlain("User #%d %s %s\n", user.ID, user.Username, user.Email)
}
