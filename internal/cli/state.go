package cli

import (
	"github.com/spf13/cobra"
)

func newStateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the persisted list view state (selection, expansion)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			vs, err := st.LoadViewState()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"saved":     vs.Saved,
					"viewState": vs,
				},
			})
		},
	}
}
