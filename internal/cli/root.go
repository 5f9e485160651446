package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todotui/internal/app"
	"github.com/idilsaglam/todotui/internal/config"
	"github.com/idilsaglam/todotui/internal/logging"
	"github.com/idilsaglam/todotui/internal/platform"
	"github.com/idilsaglam/todotui/internal/store/snapstore"
	"github.com/idilsaglam/todotui/internal/tui"
	"github.com/idilsaglam/todotui/internal/ui"
)

// Env carries what every command needs once the root pre-run has resolved
// paths, config and logging.
type Env struct {
	ConfigPath string

	resolvePaths func() (platform.Paths, error)

	paths  platform.Paths
	cfg    config.Config
	theme  ui.Theme
	logger *log.Logger
	closer io.Closer
}

func newEnv(resolve func() (platform.Paths, error)) *Env {
	return &Env{
		resolvePaths: resolve,
		theme:        ui.ThemeByName("classic"),
		logger:       logging.Discard(),
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return newEnv(platform.DefaultPaths).run(ctx, args, stdout, stderr)
}

func (e *Env) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defer e.close()

	root := NewRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	e.logger.Error("command failed", "err", err)
	e.theme.Fail(stderr, err.Error())
	return exitCode(err)
}

func NewRootCmd(e *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Terminal todo manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add "Buy milk"
  todo ls --group
  todo done 2
  todo rm 3
  todo export backup.json
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTUI(cmd.Context())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVar(&e.ConfigPath, "config", "", "Path to config file (default: <config dir>/todo/config.toml)")

	cmd.AddCommand(newListCmd(e))
	cmd.AddCommand(newAddCmd(e))
	cmd.AddCommand(newDoneCmd(e))
	cmd.AddCommand(newRemoveCmd(e))
	cmd.AddCommand(newExportCmd(e))
	cmd.AddCommand(newImportCmd(e))
	cmd.AddCommand(newPathsCmd(e))

	return cmd
}

// setup resolves paths, loads config and opens the log file.
func (e *Env) setup() error {
	p, err := e.resolvePaths()
	if err != nil {
		return err
	}
	if err := p.Ensure(); err != nil {
		return err
	}
	e.paths = p

	cfgPath := e.ConfigPath
	if strings.TrimSpace(cfgPath) == "" {
		cfgPath = p.ConfigPath
	}
	cfg, err := config.Load(cfgPath, config.Default(p.LogPath))
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.theme = ui.ThemeByName(cfg.UI.Theme)

	logger, closer, err := logging.New(cfg.Log, platform.AppName)
	if err != nil {
		return err
	}
	e.logger, e.closer = logger, closer
	e.logger.Debug("startup", "data", p.DataPath, "config", cfgPath)
	return nil
}

func (e *Env) close() {
	if e.closer != nil {
		_ = e.closer.Close()
		e.closer = nil
	}
}

func (e *Env) openStore() (*snapstore.Store, error) {
	return snapstore.Open(e.paths.DataPath, snapstore.WithLogger(e.logger))
}

func (e *Env) runTUI(ctx context.Context) error {
	store, err := e.openStore()
	if err != nil {
		return err
	}
	ctrl := app.NewController(store, app.WithLogger(e.logger))
	m := tui.New(ctrl,
		tui.WithTheme(e.theme),
		tui.WithTick(e.cfg.Tick()),
		tui.WithLogger(e.logger),
	)
	e.logger.Info("tui started", "items", store.Len())
	return tui.Run(ctx, m)
}
