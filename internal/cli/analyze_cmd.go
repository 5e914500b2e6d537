package cli

import (
	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/pkg/render"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		title  string
		url    string
		model  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Produce a technical analysis of a resource's content (file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}

			out := cmd.OutOrStdout()
			terminal := app.IsTerminal(out)
			format, err := resolveFormat(format, terminal)
			if err != nil {
				return err
			}

			content, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			res, err := app.Analysis.AnalyzeResource(cmd.Context(), &dto.AnalysisRequest{
				Resource: dto.AnalysisResourceRequest{Title: title, URL: url, RawContent: content},
				Model:    model,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(out, res)
			}
			return writeMarkdown(out, render.AnalysisMarkdown(title, &res.Analysis), terminal)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Resource title")
	cmd.Flags().StringVar(&url, "url", "", "Resource URL")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (default: configured LLM_MODEL)")
	cmd.Flags().StringVarP(&format, "format", "o", formatAuto, "Output format: auto, json or markdown")
	return cmd
}
