package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramform/pkg/binding"
	"github.com/goliatone/go-paramform/pkg/query"
)

func newTargetCmd(app *App) *cobra.Command {
	var (
		sets   []string
		from   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Apply edits and print the resulting request target",
		Long: strings.TrimSpace(`
Starts from the schema defaults (or --from, a query string), applies every
--set name=value edit in order through the same validation as the panel
inputs, and prints the request target. Edits that fail validation are skipped
and reported on stderr.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := app.newForm()
			if from != "" {
				edits, err := query.Decode(from, app.Schema)
				if err != nil {
					return writeErr(cmd, err)
				}
				if _, err := form.Store().Apply(edits); err != nil {
					return writeErr(cmd, err)
				}
			}

			var skipped []string
			for _, raw := range sets {
				name, value, ok := strings.Cut(raw, "=")
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid --set %q: expected name=value", raw))
				}
				if form.Commit(strings.TrimSpace(name), value) == binding.Rejected {
					skipped = append(skipped, raw)
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", raw)
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"target":  form.Target(),
					"values":  form.State().Values(),
					"skipped": skipped,
				})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), form.Target())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Edit as name=value (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Starting state as a query string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print target, values and skipped edits as JSON")
	return cmd
}
