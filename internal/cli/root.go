package cli

import (
	"fmt"
	"os"
	"strings"

	"swipelist/internal/config"
	"swipelist/internal/format"
	"swipelist/internal/store"
	"swipelist/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir     string
	Format  string
	Pretty  bool
	LogFile string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "swipelist",
		Short:        "Swipeable list of notes (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  swipelist

  # Scriptable commands
  swipelist add --title "Buy milk" --body "2 litres"
  swipelist list --format text
  swipelist move e-1a2b3c4d 0

  # Direct entry lookup (shortcut for: swipelist show <entry-id>)
  swipelist e-1a2b3c4d
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		if app.Dir != "" {
			cfg.Store.Dir = app.Dir
		}
		if app.LogFile != "" {
			cfg.Log.File = app.LogFile
		}
		app.cfg = cfg
		// The TUI owns the terminal; everything else may log to stderr.
		if err := setupLogging(cfg.Log, cmd.Root() != cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to store dir (overrides store.dir / SWIPELIST_STORE_DIR)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SWIPELIST_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write logs to this file (overrides log.file)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := openStore(cmd, app)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), st, app.cfg)
}

// openStore returns the configured store, creating its database on first use.
func openStore(cmd *cobra.Command, app *App) (store.Store, error) {
	st := store.Store{Dir: app.cfg.Store.Dir}
	if !st.Initialized() {
		if err := st.Init(cmd.Context()); err != nil {
			return st, fmt.Errorf("init store %s: %w", st.Dir, err)
		}
	}
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

// writeData wraps v in the {"data": ...} envelope for JSON output. Text
// output prints v itself.
func writeData(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return writeOut(cmd, app, v)
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
