package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, *tu.ScriptedCatalog, *tu.ScriptedAccount) {
	t.Helper()

	output := &bytes.Buffer{}
	catalog := &tu.ScriptedCatalog{}
	account := &tu.ScriptedAccount{}

	runner := NewRunner(RunnerOpts{
		Catalog: catalog,
		Account: account,
		Session: session.Open(t.TempDir()),
		Output:  output,
	})
	return runner, output, catalog, account
}

func runCLI(r *Runner, args ...string) error {
	root := &cli.Command{Name: "marquee", Commands: r.register()}
	return root.Run(context.Background(), append([]string{"marquee"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &tu.ScriptedCatalog{}
			account := &tu.ScriptedAccount{}
			api := &services.APIService{}
			store := session.Open(t.TempDir())

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
				Account:    account,
				API:        api,
				Session:    store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != services.CatalogService(catalog) {
				t.Error("expected catalog to be set")
			}
			if runner.account != services.AccountService(account) {
				t.Error("expected account to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.session != store {
				t.Error("expected session to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected 'hello world', got %q", output.String())
		}

		failing := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := failing.writePlain("x"); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestMoviesCommands(t *testing.T) {
	t.Run("list passes filters through", func(t *testing.T) {
		runner, output, catalog, _ := newTestRunner(t)
		catalog.MoviesFn = func(q models.FilterQuery) ([]models.Movie, error) {
			if q.Search != "dune" || q.Year != "2021" || q.Sort != models.SortRatingDesc {
				t.Errorf("unexpected query: %+v", q)
			}
			return []models.Movie{{ID: 1, Title: "Dune", Rating: 8.7}}, nil
		}

		err := runCLI(runner, "movies", "list", "--search", "dune", "--year", "2021", "--sort", "rating_desc")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "Dune (8.7) [TRENDING]") {
			t.Errorf("expected text listing with trending marker, got %s", output.String())
		}
	})

	t.Run("list json output", func(t *testing.T) {
		runner, output, catalog, _ := newTestRunner(t)
		catalog.MoviesFn = func(models.FilterQuery) ([]models.Movie, error) {
			return []models.Movie{{ID: 1, Title: "Dune"}}, nil
		}

		if err := runCLI(runner, "movies", "list", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"title":"Dune"`) {
			t.Errorf("expected JSON output, got %s", output.String())
		}
	})

	t.Run("list csv output", func(t *testing.T) {
		runner, output, catalog, _ := newTestRunner(t)
		catalog.MoviesFn = func(models.FilterQuery) ([]models.Movie, error) {
			return []models.Movie{{ID: 1, Title: "Dune", Rating: 8.7}}, nil
		}

		if err := runCLI(runner, "movies", "list", "--csv"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(output.String(), "ID,Title,Rating,Description") {
			t.Errorf("expected CSV header, got %s", output.String())
		}
	})

	t.Run("list surfaces fetch failure", func(t *testing.T) {
		runner, _, catalog, _ := newTestRunner(t)
		catalog.MoviesFn = func(models.FilterQuery) ([]models.Movie, error) {
			return nil, errors.New("api down")
		}

		if err := runCLI(runner, "movies", "list"); err == nil {
			t.Error("expected error when the fetch fails")
		}
	})

	t.Run("get renders markdown", func(t *testing.T) {
		runner, output, catalog, _ := newTestRunner(t)
		catalog.MovieFn = func(id int) (*models.MovieDetail, error) {
			if id != 42 {
				t.Errorf("expected id 42, got %d", id)
			}
			return &models.MovieDetail{Movie: models.Movie{ID: 42, Title: "Blade Runner", Rating: 8.9}}, nil
		}

		if err := runCLI(runner, "movies", "get", "42"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "# Blade Runner") {
			t.Errorf("expected markdown heading, got %s", output.String())
		}
	})

	t.Run("get requires a numeric id", func(t *testing.T) {
		runner, _, _, _ := newTestRunner(t)

		if err := runCLI(runner, "movies", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := runCLI(runner, "movies", "get", "abc"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSavedCommands(t *testing.T) {
	t.Run("require a session", func(t *testing.T) {
		runner, _, catalog, _ := newTestRunner(t)

		for _, args := range [][]string{
			{"saved", "list"},
			{"saved", "add", "42"},
			{"saved", "remove", "42"},
		} {
			if err := runCLI(runner, args...); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("%v: expected ErrNotAuthenticated, got %v", args, err)
			}
		}

		if catalog.NetworkCalls() != 0 {
			t.Errorf("unauthenticated commands must issue zero network calls, got %d", catalog.NetworkCalls())
		}
	})

	t.Run("list prints the saved set", func(t *testing.T) {
		runner, output, catalog, _ := newTestRunner(t)
		catalog.SavedMoviesFn = func(userID int) ([]models.Movie, error) {
			if userID != 7 {
				t.Errorf("expected session user 7, got %d", userID)
			}
			return []models.Movie{{ID: 3, Title: "Kept", Rating: 7.0}}, nil
		}
		if err := runner.session.Login(&models.User{ID: 7}); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}

		if err := runCLI(runner, "saved", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Kept") {
			t.Errorf("expected saved listing, got %s", output.String())
		}
	})

	t.Run("list empty set", func(t *testing.T) {
		runner, output, _, _ := newTestRunner(t)
		if err := runner.session.Login(&models.User{ID: 7}); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}

		if err := runCLI(runner, "saved", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No saved movies found.") {
			t.Errorf("expected empty-set message, got %s", output.String())
		}
	})

	t.Run("add and remove", func(t *testing.T) {
		runner, output, catalog, _ := newTestRunner(t)
		if err := runner.session.Login(&models.User{ID: 7}); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}

		if err := runCLI(runner, "saved", "add", "42"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.SaveCalls != 1 {
			t.Errorf("expected one save call, got %d", catalog.SaveCalls)
		}
		if !strings.Contains(output.String(), "Added movie 42") {
			t.Errorf("expected confirmation, got %s", output.String())
		}

		if err := runCLI(runner, "saved", "remove", "42"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.UnsaveCalls != 1 {
			t.Errorf("expected one unsave call, got %d", catalog.UnsaveCalls)
		}
	})

	t.Run("add surfaces failure", func(t *testing.T) {
		runner, _, catalog, _ := newTestRunner(t)
		catalog.SaveErr = errors.New("boom")
		if err := runner.session.Login(&models.User{ID: 7}); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}

		if err := runCLI(runner, "saved", "add", "42"); err == nil {
			t.Error("expected error when the save call fails")
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("login establishes the session", func(t *testing.T) {
		runner, output, _, account := newTestRunner(t)
		account.LoginFn = func(email, password string) (*models.User, error) {
			if email != "a@b.com" || password != "secret" {
				t.Errorf("unexpected credentials: %s %s", email, password)
			}
			return &models.User{ID: 7, Email: email}, nil
		}

		err := runCLI(runner, "auth", "login", "--email", "a@b.com", "--password", "secret")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if user := runner.session.Current(); user == nil || user.ID != 7 {
			t.Error("login should establish the session")
		}
		if !strings.Contains(output.String(), "Logged in as a@b.com") {
			t.Errorf("expected confirmation, got %s", output.String())
		}
	})

	t.Run("login failure leaves no session", func(t *testing.T) {
		runner, _, _, account := newTestRunner(t)
		account.LoginFn = func(string, string) (*models.User, error) {
			return nil, errors.New("bad credentials")
		}

		err := runCLI(runner, "auth", "login", "--email", "a@b.com", "--password", "wrong")
		if err == nil {
			t.Fatal("expected error for rejected credentials")
		}
		if runner.session.Current() != nil {
			t.Error("failed login must not establish a session")
		}
	})

	t.Run("signup does not authenticate", func(t *testing.T) {
		runner, output, _, account := newTestRunner(t)

		err := runCLI(runner, "auth", "signup",
			"--username", "newuser", "--email", "n@u.com", "--password", "secret")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if account.SignupCalls != 1 {
			t.Errorf("expected one signup call, got %d", account.SignupCalls)
		}
		if runner.session.Current() != nil {
			t.Error("signup must not establish a session")
		}
		if !strings.Contains(output.String(), "You can now login") {
			t.Errorf("expected login hint, got %s", output.String())
		}
	})

	t.Run("whoami and logout", func(t *testing.T) {
		runner, output, _, _ := newTestRunner(t)

		if err := runCLI(runner, "auth", "whoami"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Not logged in.") {
			t.Errorf("expected not-logged-in message, got %s", output.String())
		}

		if err := runner.session.Login(&models.User{ID: 7, Username: "moviegoer", Email: "a@b.com"}); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}

		output.Reset()
		if err := runCLI(runner, "auth", "whoami"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "moviegoer") {
			t.Errorf("expected session user, got %s", output.String())
		}

		if err := runCLI(runner, "auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.session.Current() != nil {
			t.Error("logout should clear the session")
		}
	})
}

func TestSetupCommand(t *testing.T) {
	runner, output, _, _ := newTestRunner(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")

	if err := runCLI(runner, "setup", "--config", configPath); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file should exist: %v", err)
	}
	if !strings.Contains(output.String(), "Created") {
		t.Errorf("expected confirmation, got %s", output.String())
	}

	if err := runCLI(runner, "setup", "--config", configPath); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("second setup should fail, got %v", err)
	}
}

func TestAPICommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"status":"ok"}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"created":true}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	runner, output, _, _ := newTestRunner(t)
	runner.api = services.NewAPIService(server.URL, nil, nil)

	t.Run("get", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "api", "get", "/health"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"status":"ok"`) {
			t.Errorf("expected JSON body, got %s", output.String())
		}
	})

	t.Run("post", func(t *testing.T) {
		output.Reset()
		if err := runCLI(runner, "api", "post", "/things", `{"name":"x"}`); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"created":true`) {
			t.Errorf("expected JSON body, got %s", output.String())
		}
	})

	t.Run("missing path argument", func(t *testing.T) {
		if err := runCLI(runner, "api", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
