package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/catalog"
	"github.com/desertthunder/mvx/internal/credentials"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/watchlist"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
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

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. to send TUI logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, catalogCommand, userCommand, watchlistCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's config with the file at path and applies its log level.
func (r *Runner) loadConfig(path string) error {
	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}

	r.config = config
	r.configPath = path
	return r.applyLogLevel()
}

func (r *Runner) applyLogLevel() error {
	level, err := shared.ParseLevel(r.config.Log.Level)
	if err != nil {
		return err
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

func (r *Runner) catalogLoader() *catalog.Loader {
	return catalog.NewLoader(r.config.Files.Catalog, catalog.WithLogger(shared.WithLogger(r.logger, "store", "catalog")))
}

func (r *Runner) loadCatalog() (*catalog.Catalog, error) {
	return r.catalogLoader().LoadFromFile()
}

func (r *Runner) credentialStore() (*credentials.Store, error) {
	hasher, err := credentials.NewHasher(r.config.Auth.Hasher, r.config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	return credentials.NewStore(
		r.config.Files.Credentials,
		credentials.WithHasher(hasher),
		credentials.WithLogger(shared.WithLogger(r.logger, "store", "credentials")),
	), nil
}

func (r *Runner) watchlistStore() (*watchlist.Store, error) {
	return watchlist.NewStore(r.config.Files.Watchlist, watchlist.WithLogger(shared.WithLogger(r.logger, "store", "watchlist")))
}

// authenticate checks the --user and --password flags and returns the username.
func (r *Runner) authenticate(cmd *cli.Command) (string, error) {
	username, password := cmd.String("user"), cmd.String("password")
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: --user and --password", shared.ErrMissingArgument)
	}

	store, err := r.credentialStore()
	if err != nil {
		return "", err
	}

	ok, err := store.Authenticate(username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrAuthFailed, username)
	}

	r.logger.Debug("authenticated", "username", username)
	return username, nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
