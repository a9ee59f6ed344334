package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/poojitha20043/postx/internal/repositories"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/session"
	"github.com/poojitha20043/postx/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	db      *sql.DB
	session *session.Manager
	cache   *repositories.AccountCacheRepository
	history *repositories.PostHistoryRepository
	client  *services.Client
	logger  *log.Logger
	output  io.Writer
	input   io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	DB     *sql.DB
	Client *services.Client
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	r := &Runner{
		config: opts.Config,
		db:     opts.DB,
		client: opts.Client,
		logger: opts.Logger,
		output: opts.Output,
		input:  opts.Input,
	}

	if opts.DB != nil {
		r.session = session.NewManager(repositories.NewSessionRepository(opts.DB))
		r.cache = repositories.NewAccountCacheRepository(opts.DB)
		r.history = repositories.NewPostHistoryRepository(opts.DB)
	}

	return r
}

// SetLogger swaps the Runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, accountCommand, postCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// backendClient returns the API client for a command invocation.
//
// When a session token is stored the client carries it as a Bearer header;
// before login requests go out unauthenticated.
func (r *Runner) backendClient(ctx context.Context) *services.Client {
	if r.client != nil {
		return r.client
	}

	timeout := time.Duration(r.config.Backend.RequestTimeout) * time.Second
	httpClient := &http.Client{Timeout: timeout}
	if r.session != nil {
		if token, err := r.session.Token(); err == nil {
			httpClient = services.NewAuthedHTTPClient(ctx, token, timeout)
		}
	}

	return services.NewClient(r.config.Backend.BaseURL, httpClient)
}

// requireUserID resolves the logged-in user's id before any network call.
func (r *Runner) requireUserID() (string, error) {
	if r.session == nil {
		return "", fmt.Errorf("%w: database not initialized, run 'postx setup database'", shared.ErrNotAuthenticated)
	}

	userID, err := r.session.UserID()
	if err != nil {
		return "", fmt.Errorf("%w: run 'postx auth login' first", shared.ErrNotAuthenticated)
	}
	return userID, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
