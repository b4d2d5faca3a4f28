// Package cli wires the paramform command tree.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	paramform "github.com/goliatone/go-paramform"
	"github.com/goliatone/go-paramform/internal/config"
	"github.com/goliatone/go-paramform/internal/logging"
	"github.com/goliatone/go-paramform/pkg/schema"
	"github.com/goliatone/go-paramform/pkg/schemafile"
)

// App carries settings shared by every command.
type App struct {
	SchemaFile string
	BasePath   string
	LogLevel   string
	LogFormat  string

	Config config.Config
	Logger *slog.Logger
	Schema *schema.Schema
}

// NewRootCmd builds the command tree. Environment settings are read before
// any command runs; flags override them.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "paramform",
		Short:        "Parameter panel that derives generation request targets",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Print the target for a few edits
  paramform target --set seed=5 --set flat=true

  # Edit parameters interactively
  paramform prompt

  # Serve the panel page
  paramform serve --addr :8080
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.SchemaFile, "schema", "", "Schema file (YAML or JSON); defaults to the stereogram panel")
	cmd.PersistentFlags().StringVar(&app.BasePath, "base-path", "", "Base path of request targets")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFormat, "log-format", "", "Log format (text|json)")

	cmd.AddCommand(newTargetCmd(app))
	cmd.AddCommand(newPromptCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newOpenAPICmd(app))
	cmd.AddCommand(newSchemaCmd(app))

	return cmd
}

func (app *App) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if app.SchemaFile != "" {
		cfg.SchemaFile = app.SchemaFile
	}
	if app.LogLevel != "" {
		cfg.LogLevel = app.LogLevel
	}
	if app.LogFormat != "" {
		cfg.LogFormat = app.LogFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	s := paramform.StereogramSchema()
	if cfg.SchemaFile != "" {
		doc, err := schemafile.LoadFile(cfg.SchemaFile)
		if err != nil {
			return err
		}
		s = doc.Schema
		if doc.BasePath != "" {
			cfg.BasePath = doc.BasePath
		}
	}
	if app.BasePath != "" {
		cfg.BasePath = app.BasePath
	}

	app.Config = cfg
	app.Logger = logger
	app.Schema = s
	return nil
}

func (app *App) newForm(options ...paramform.FormOption) *paramform.Form {
	base := []paramform.FormOption{
		paramform.WithBasePath(app.Config.BasePath),
		paramform.WithLogger(app.Logger),
	}
	return paramform.NewForm(app.Schema, append(base, options...)...)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
