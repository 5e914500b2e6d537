package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/pkg/render"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		file   string
		model  string
		enrich bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate a learning index from text (file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				file = args[0]
			}
			return runGenerate(cmd, app, file, model, enrich, format)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (default: configured LLM_MODEL)")
	cmd.Flags().BoolVar(&enrich, "enrich", false, "Attach search resources to every module")
	cmd.Flags().StringVarP(&format, "format", "o", formatAuto, "Output format: auto, json or markdown")
	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, file, model string, enrich bool, format string) error {
	out := cmd.OutOrStdout()
	terminal := app.IsTerminal(out)
	format, err := resolveFormat(format, terminal)
	if err != nil {
		return err
	}

	text, err := readInput(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, err := app.Index.GenerateIndex(ctx, &dto.GenerateIndexRequest{Text: text, Model: model})
	if err != nil {
		return err
	}

	if enrich {
		enriched, err := app.Enrichment.EnrichIndex(ctx, &res.Index)
		if err != nil {
			return err
		}
		if len(enriched.Failed) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "search failed for modules %v\n", enriched.Failed)
		}
	}

	if format == formatJSON {
		return writeJSON(out, res)
	}
	return writeMarkdown(out, render.Markdown(&res.Index), terminal)
}

// readInput reads file, or r when file is empty or "-".
func readInput(r io.Reader, file string) (string, error) {
	if file != "" && file != "-" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
