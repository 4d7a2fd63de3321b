package cli

import (
	"strconv"
	"strings"

	"swipelist/internal/model"

	"github.com/spf13/cobra"
)

// entryTable prints entries with --format text.
type entryTable []model.Entry

func (t entryTable) Header() []string { return []string{"#", "ID", "DONE", "TITLE"} }

func (t entryTable) Rows() [][]string {
	out := make([][]string, 0, len(t))
	for i, e := range t {
		done := ""
		if e.Done {
			done = "✓"
		}
		out = append(out, []string{strconv.Itoa(i), e.ID, done, e.Title})
	}
	return out
}

func newAddCmd(app *App) *cobra.Command {
	var title, body string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an entry to the end of the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := st.Add(cmd.Context(), strings.TrimSpace(title), body)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, entryTable{e})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&body, "body", "", "Entry details (markdown)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			es, err := st.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, entryTable(es))
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, entryErr(args[0], err))
			}
			if app.Format == "text" {
				return writeOut(cmd, app, entryTable{e})
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <entry-id> <index>",
		Short: "Move an entry to a position in the list",
		Long: strings.TrimSpace(`
Move an entry so that it ends up at <index> (0-based) in the final order.
Indices past the end move the entry to the end.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil || index < 0 {
				return writeErr(cmd, badIndexError{arg: args[1]})
			}
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			order, err := st.Move(cmd.Context(), id, index)
			if err != nil {
				return writeErr(cmd, entryErr(id, err))
			}
			return writeData(cmd, app, entryTable(order))
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <entry-id>...",
		Aliases: []string{"delete"},
		Short:   "Delete entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, id := range args {
				if err := st.Delete(cmd.Context(), id); err != nil {
					return writeErr(cmd, entryErr(id, err))
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args}})
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done <entry-id>",
		Short: "Mark an entry done (or not done with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			if err := st.SetDone(ctx, args[0], !undo); err != nil {
				return writeErr(cmd, entryErr(args[0], err))
			}
			e, err := st.Get(ctx, args[0])
			if err != nil {
				return writeErr(cmd, entryErr(args[0], err))
			}
			return writeData(cmd, app, entryTable{e})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Clear the done flag")
	return cmd
}
