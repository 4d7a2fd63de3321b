package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"swipelist/internal/config"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var writeConfig bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (and a default config file)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Only seed the config file when none exists; never clobber edits.
			var configPath string
			if writeConfig {
				p := config.Path()
				if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
					if err := config.Save(p, app.cfg); err != nil {
						return writeErr(cmd, err)
					}
					configPath = p
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        st.Dir,
					"sqlitePath": filepath.Join(st.Dir, "entries.sqlite"),
					"config":     configPath,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&writeConfig, "write-config", true, "Write a default config file if none exists")
	return cmd
}
