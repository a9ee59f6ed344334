package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v3"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/repositories"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/shared"
	tu "github.com/poojitha20043/postx/internal/testing"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newLoggedInRunner(t *testing.T, client *services.Client) (*Runner, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		DB:     db,
		Client: client,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})

	token := signToken(t, jwt.MapClaims{"id": "user-7"})
	if _, err := runner.session.Establish(token, "tester@example.com"); err != nil {
		t.Fatalf("failed to establish session: %v", err)
	}

	return runner, output
}

// runCommand executes one registered subcommand through the cli tree.
func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "postx",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"postx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := &bytes.Buffer{}
			client := services.NewClient("http://backend.test", nil)

			runner := NewRunner(RunnerOpts{
				Config: config,
				Client: client,
				Logger: logger,
				Output: output,
				Input:  input,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("without database leaves stores nil", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.session != nil || runner.cache != nil || runner.history != nil {
				t.Error("expected stores to be nil without a database")
			}
		})
	})

	t.Run("requireUserID", func(t *testing.T) {
		t.Run("without database", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

			if _, err := runner.requireUserID(); err == nil {
				t.Error("expected error without database")
			}
		})

		t.Run("without session", func(t *testing.T) {
			db, err := shared.NewDatabase(":memory:")
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			t.Cleanup(func() { db.Close() })
			if err := shared.RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations: %v", err)
			}

			runner := NewRunner(RunnerOpts{DB: db, Logger: shared.NewLogger(&bytes.Buffer{})})

			if _, err := runner.requireUserID(); err == nil {
				t.Error("expected error without session")
			}
		})

		t.Run("with session", func(t *testing.T) {
			runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", nil))

			userID, err := runner.requireUserID()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID != "user-7" {
				t.Errorf("expected user-7, got %s", userID)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.String() != "{\"key\":\"value\"}\n" {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("login stores session", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"id": "user-42"})

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/user/login" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"success": true, "token": token, "userId": "user-42"})
		}))
		t.Cleanup(server.Close)

		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			DB:     db,
			Client: services.NewClient(server.URL, nil),
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: output,
		})

		err = runCommand(t, runner, "auth", "login", "--email", "tester@example.com", "--password", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		userID, err := runner.session.UserID()
		if err != nil {
			t.Fatalf("expected session, got %v", err)
		}
		if userID != "user-42" {
			t.Errorf("expected user-42, got %s", userID)
		}
		if !strings.Contains(output.String(), "Logged in") {
			t.Errorf("expected login confirmation, got %s", output.String())
		}
	})

	t.Run("login surfaces backend message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "msg": "Invalid credentials"})
		}))
		t.Cleanup(server.Close)

		runner, _ := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		err := runCommand(t, runner, "auth", "login", "--email", "tester@example.com", "--password", "wrong12")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "Invalid credentials") {
			t.Errorf("expected backend message, got %v", err)
		}
	})

	t.Run("whoami prints user", func(t *testing.T) {
		runner, output := newLoggedInRunner(t, services.NewClient("http://backend.test", nil))

		if err := runCommand(t, runner, "auth", "whoami"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "user-7") {
			t.Errorf("expected user id in output, got %s", output.String())
		}
		if !strings.Contains(output.String(), "tester@example.com") {
			t.Errorf("expected email in output, got %s", output.String())
		}
	})

	t.Run("logout clears session", func(t *testing.T) {
		runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", nil))

		if err := runCommand(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runner.session.LoggedIn() {
			t.Error("expected session to be cleared")
		}
	})
}

func TestAccountCommands(t *testing.T) {
	t.Run("status requires login before network", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}

		db, err := shared.NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		runner := NewRunner(RunnerOpts{
			DB:     db,
			Client: services.NewClient("http://backend.test", &http.Client{Transport: counter}),
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: &bytes.Buffer{},
		})

		err = runCommand(t, runner, "account", "status")
		if err == nil {
			t.Fatal("expected error")
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected zero network calls, got %d", counter.Calls)
		}
	})

	t.Run("status renders live results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasPrefix(r.URL.Path, "/api/twitter/check"):
				json.NewEncoder(w).Encode(map[string]any{"success": true, "connected": true, "account": map[string]string{"username": "jdoe"}})
			case strings.HasPrefix(r.URL.Path, "/api/linkedin/check"):
				json.NewEncoder(w).Encode(map[string]any{"success": true, "connected": false})
			case strings.HasPrefix(r.URL.Path, "/social/"):
				json.NewEncoder(w).Encode(map[string]any{"accounts": []any{}})
			default:
				http.NotFound(w, r)
			}
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		if err := runCommand(t, runner, "account", "status"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := output.String()
		if !strings.Contains(got, "@jdoe") {
			t.Errorf("expected twitter account in output, got %s", got)
		}
		if !strings.Contains(got, "not connected") {
			t.Errorf("expected disconnected platforms in output, got %s", got)
		}
	})

	t.Run("disconnect cancelled makes no network call", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}
		runner, output := newLoggedInRunner(t, services.NewClient("http://backend.test", &http.Client{Transport: counter}))
		runner.input = strings.NewReader("n\n")

		seeded := &models.Account{Platform: models.Twitter, Connected: true, Username: "jdoe"}
		if err := runner.cache.Put(seeded); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		if err := runCommand(t, runner, "account", "disconnect", "twitter"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Cancelled") {
			t.Errorf("expected cancellation notice, got %s", output.String())
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected zero network calls, got %d", counter.Calls)
		}
		if _, err := runner.cache.Get(models.Twitter); err != nil {
			t.Errorf("expected cache untouched, got %v", err)
		}
	})

	t.Run("disconnect with --yes clears cache and calls backend", func(t *testing.T) {
		var hit int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hit, 1)
			if r.URL.Path != "/api/twitter/disconnect" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		seeded := &models.Account{Platform: models.Twitter, Connected: true, Username: "jdoe"}
		if err := runner.cache.Put(seeded); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		if err := runCommand(t, runner, "account", "disconnect", "twitter", "--yes"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if atomic.LoadInt32(&hit) != 1 {
			t.Errorf("expected one backend call, got %d", hit)
		}
		if _, err := runner.cache.Get(models.Twitter); !errors.Is(err, repositories.ErrNotFound) {
			t.Errorf("expected cache cleared, got %v", err)
		}
		if !strings.Contains(output.String(), "disconnected") {
			t.Errorf("expected confirmation, got %s", output.String())
		}
	})

	t.Run("disconnect rejects unknown platform", func(t *testing.T) {
		runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", nil))

		err := runCommand(t, runner, "account", "disconnect", "myspace", "--yes")
		if err == nil {
			t.Fatal("expected error for unknown platform")
		}
	})

	t.Run("connect caches the account from the callback", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}
		runner, output := newLoggedInRunner(t, services.NewClient("http://backend.test", &http.Client{Transport: counter}))
		runner.config = shared.DefaultConfig()
		runner.config.Server.Host = "127.0.0.1"
		runner.config.Server.Port = 38917

		done := make(chan error, 1)
		go func() {
			done <- runCommand(t, runner, "account", "connect", "linkedin")
		}()

		// Play the backend's part: redirect-land on the loopback callback.
		callbackURL := "http://127.0.0.1:38917/callback?linkedin=connected&name=Jane"
		var resp *http.Response
		var err error
		for i := 0; i < 50; i++ {
			resp, err = http.Get(callbackURL)
			if err == nil {
				resp.Body.Close()
				break
			}
			time.Sleep(50 * time.Millisecond)
		}
		if err != nil {
			t.Fatalf("failed to reach callback server: %v", err)
		}

		if err := <-done; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cached, err := runner.cache.Get(models.LinkedIn)
		if err != nil {
			t.Fatalf("expected cached account, got %v", err)
		}
		if cached.Name != "Jane" {
			t.Errorf("expected Jane, got %s", cached.Name)
		}
		if !strings.Contains(output.String(), "LinkedIn connected") {
			t.Errorf("expected confirmation, got %s", output.String())
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected no backend API calls during connect, got %d", counter.Calls)
		}
	})

	t.Run("pages lists facebook pages", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/social/pages/") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"pages": []map[string]any{
					{"providerId": "pg-1", "meta": map[string]string{"name": "My Page"}},
				},
			})
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		if err := runCommand(t, runner, "account", "pages"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "My Page") {
			t.Errorf("expected page name in output, got %s", output.String())
		}
	})
}

func TestPostCommands(t *testing.T) {
	t.Run("tweet publishes and records history", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/twitter/post" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"success": true, "tweetId": "tw-1", "tweetUrl": "https://x.com/s/tw-1"})
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		if err := runCommand(t, runner, "post", "tweet", "hello world"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Posted to Twitter / X") {
			t.Errorf("expected confirmation, got %s", output.String())
		}

		records, err := runner.history.List("", 10)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(records) != 1 || records[0].Content != "hello world" {
			t.Errorf("expected post in history, got %+v", records)
		}
	})

	t.Run("tweet over the character cap skips network", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}
		runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", &http.Client{Transport: counter}))

		long := strings.Repeat("a", 281)
		err := runCommand(t, runner, "post", "tweet", long)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected zero network calls, got %d", counter.Calls)
		}
	})

	t.Run("tweet does not accept a schedule flag", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}
		runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", &http.Client{Transport: counter}))

		// Only the facebook and instagram routes carry a schedule time; the
		// tweet command must refuse the flag rather than drop it silently.
		err := runCommand(t, runner, "post", "tweet", "--schedule", "2026-09-01T12:00", "hi")
		if err == nil {
			t.Fatal("expected unknown flag error")
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected zero network calls, got %d", counter.Calls)
		}
	})

	t.Run("linkedin does not accept a schedule flag", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}
		runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", &http.Client{Transport: counter}))

		err := runCommand(t, runner, "post", "linkedin", "--schedule", "2026-09-01T12:00", "hi")
		if err == nil {
			t.Fatal("expected unknown flag error")
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected zero network calls, got %d", counter.Calls)
		}
	})

	t.Run("linkedin rejects bad visibility", func(t *testing.T) {
		counter := &tu.CountingRoundTripper{}
		runner, _ := newLoggedInRunner(t, services.NewClient("http://backend.test", &http.Client{Transport: counter}))

		err := runCommand(t, runner, "post", "linkedin", "--visibility", "friends-only", "hi")
		if err == nil {
			t.Fatal("expected error")
		}
		if atomic.LoadInt32(&counter.Calls) != 0 {
			t.Errorf("expected zero network calls, got %d", counter.Calls)
		}
	})

	t.Run("generate prints backend text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/social/ai-generate" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"text": "A sunny caption"})
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		if err := runCommand(t, runner, "post", "generate", "beach photo"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "A sunny caption") {
			t.Errorf("expected generated text, got %s", output.String())
		}
	})

	t.Run("list renders remote posts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"posts": []map[string]any{
					{"_id": "p1", "message": "first post", "status": "published", "createdAt": "2026-08-01T10:00:00Z"},
				},
			})
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		if err := runCommand(t, runner, "post", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "first post") {
			t.Errorf("expected post in output, got %s", output.String())
		}
	})

	t.Run("list emits CSV header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"posts": []any{}})
		}))
		t.Cleanup(server.Close)

		runner, output := newLoggedInRunner(t, services.NewClient(server.URL, nil))

		if err := runCommand(t, runner, "post", "list", "--csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "ID,Platform,Status") {
			t.Errorf("expected CSV header, got %s", output.String())
		}
	})
}
