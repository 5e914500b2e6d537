// Package cli is the indice command line: generate and analyze from the
// terminal, or serve the HTTP API.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/cristiansanchez/indice/internal/controller"
	"github.com/cristiansanchez/indice/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds the services used by CLI commands.
type App struct {
	Index      service.IIndexService
	Enrichment service.IEnrichmentService
	Analysis   service.IAnalysisService
	Models     controller.ModelCatalog

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error

	// IsTerminal reports whether w is an interactive terminal.
	IsTerminal func(w io.Writer) bool
}

// NewRootCmd creates the top-level "indice" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.IsTerminal == nil {
		app.IsTerminal = StdoutIsTerminal
	}

	root := &cobra.Command{
		Use:           "indice",
		Short:         "Turn free-form notes into a learning index",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newGenerateCmd(app),
		newAnalyzeCmd(app),
		newModelsCmd(app),
	)

	return root
}

// StdoutIsTerminal is true when w is os.Stdout attached to a terminal.
func StdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context())
		},
	}
}
