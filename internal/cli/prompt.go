package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramform/pkg/renderers/tui"
)

func newPromptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Edit parameters interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := tui.New(tui.WithTheme(tui.Theme{InfoPrefix: "→ ", ErrorPrefix: "! "}))
			target, err := session.Run(cmd.Context(), app.newForm())
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
			return err
		},
	}
}
