package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramform/pkg/openapi"
)

func newOpenAPICmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI description of the request target",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openapi.Describe(cmd.Context(), app.Schema, app.Config.BasePath, openapi.Options{Title: app.Config.Title})
			if err != nil {
				return writeErr(cmd, err)
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return writeErr(cmd, err)
			}
			switch format {
			case "json":
			case "yaml":
				var generic any
				if err := json.Unmarshal(data, &generic); err != nil {
					return writeErr(cmd, err)
				}
				if data, err = yaml.Marshal(generic); err != nil {
					return writeErr(cmd, err)
				}
			default:
				return writeErr(cmd, fmt.Errorf("unsupported format %q", format))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|yaml)")
	return cmd
}
