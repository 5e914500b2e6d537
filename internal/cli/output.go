package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

const (
	formatAuto     = "auto"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// resolveFormat turns "auto" into markdown on a terminal and json otherwise.
func resolveFormat(format string, terminal bool) (string, error) {
	switch format {
	case formatAuto, "":
		if terminal {
			return formatMarkdown, nil
		}
		return formatJSON, nil
	case formatJSON, formatMarkdown:
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q (use json or markdown)", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeMarkdown styles md with glamour on a terminal and writes it raw elsewhere.
func writeMarkdown(w io.Writer, md string, terminal bool) error {
	if terminal {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if out, err := renderer.Render(md); err == nil {
				_, err = io.WriteString(w, out)
				return err
			}
		}
	}
	_, err := io.WriteString(w, md)
	return err
}
