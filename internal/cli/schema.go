package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramform/pkg/schemafile"
)

func newSchemaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the active schema as a YAML schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schemafile.MarshalYAML(app.Schema, app.Config.BasePath)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
