// Package cli wires the command line: global flags, config and logger setup,
// and the tasks command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tasks/internal/app"
	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/seed"
	"github.com/idilsaglam/tasks/internal/store/memstore"
	"github.com/idilsaglam/tasks/internal/tui"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Flags holds the global flag values and what the Before hook builds from
// them. Commands read App, Config and Logger once Before has run.
type Flags struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	SeedFile   string
	Theme      string

	Config *config.Config
	App    *app.App
	Logger zerolog.Logger

	// Store, when set, is seeded instead of a fresh collection.
	Store *memstore.Store
}

// ErrNotTerminal is returned when the interactive list is requested but
// stdout is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal. Run 'tasks ls' to print the list")

// New builds the root command. Running it with no subcommand opens the TUI.
func New(version string) *cli.Command {
	return newCommand(version, &Flags{})
}

func newCommand(version string, flags *Flags) *cli.Command {
	var logCloser func()

	root := &cli.Command{
		Name:      "tasks",
		Usage:     "Manage a task list in your terminal",
		UsageText: "tasks [global options] [command [command options]]",
		Description: `tasks keeps a task list in memory for the length of a session.

Run 'tasks' with no arguments to open the interactive list.
Run 'tasks ls' to print a page of the list and exit.

Nothing is saved: the list starts from the optional seed file every time.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.yaml or .toml)",
				Sources:     cli.EnvVars("TASKS_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("TASKS_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("TASKS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "seed",
				Usage:       "JSON file with the initial tasks (read only)",
				Sources:     cli.EnvVars("TASKS_SEED"),
				Destination: &flags.SeedFile,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (classic, neon, mono)",
				Sources:     cli.EnvVars("TASKS_THEME"),
				Destination: &flags.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closer, err := flags.setup()
			logCloser = closer
			return ctx, err
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'tasks --help' for usage", c.Args().First())
			}
			if !ui.IsTTY() {
				return ErrNotTerminal
			}
			err := tui.Run(flags.App, tui.Options{
				ConfirmDelete: flags.Config.ConfirmDelete,
				Logger:        logging.Component(flags.Logger, "tui"),
			})
			if err != nil {
				return err
			}
			done, total := flags.App.Counts()
			ui.OK(fmt.Sprintf("%d of %d tasks completed. Nothing was saved.", done, total))
			return nil
		},
	}

	root = NewLsCmd(flags).Register(root)
	return root
}

// setup loads config, applies flag overrides, and builds the logger and the
// app. It returns the log file closer.
func (f *Flags) setup() (func(), error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SeedFile != "" {
		cfg.SeedFile = f.SeedFile
	}
	if f.Theme != "" {
		cfg.Theme = f.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	f.Config = cfg

	if err := ui.SetTheme(cfg.Theme); err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File, nil)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	f.Logger = logger

	store := f.Store
	if store == nil {
		store = memstore.New()
	}
	n, err := seed.Load(cfg.SeedFile, store)
	if err != nil {
		return closer, err
	}
	logger.Info().Int("seeded", n).Int("tasks", store.Len()).Str("seed", cfg.SeedFile).Msg("collection ready")

	f.App = app.New(store, logging.Component(logger, "app"))
	return closer, nil
}
