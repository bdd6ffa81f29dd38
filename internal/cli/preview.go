package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thruflo/crosswatch/internal/client"
	"github.com/thruflo/crosswatch/internal/render"
)

var previewRaw bool

var previewCmd = &cobra.Command{
	Use:   "preview <structure|words> <file>",
	Short: "Show a structure or word list file from the service",
	Long: `Load a data file from the crossword service and print a preview.

Structures are drawn with '#' for blocked cells and '.' for fillable ones.
Word lists show the first 10 words followed by a count of the rest.

Example:
  crosswatch preview structure structure0.txt
  crosswatch preview words words0.txt --raw`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{client.PreviewTypeStructure, client.PreviewTypeWords},
	RunE:      runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print the raw file contents")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return showPreview(commandContext(cmd), cmd.OutOrStdout(), newClient(cfg), args[0], args[1], previewRaw)
}

func showPreview(ctx context.Context, out io.Writer, c *client.Client, kind, filename string, raw bool) error {
	switch kind {
	case client.PreviewTypeStructure:
		p, err := c.PreviewStructure(ctx, filename)
		if err != nil {
			return err
		}
		if raw {
			fmt.Fprint(out, p.Raw)
			return nil
		}
		fmt.Fprintln(out, strings.Join(render.StructurePreview(p.Structure), "\n"))
	case client.PreviewTypeWords:
		p, err := c.PreviewWords(ctx, filename)
		if err != nil {
			return err
		}
		if raw {
			fmt.Fprint(out, p.Raw)
			return nil
		}
		fmt.Fprintln(out, render.WordsPreview(p.Words, render.MaxPreviewWords))
	default:
		return fmt.Errorf("unknown preview type %q: expected %s or %s", kind, client.PreviewTypeStructure, client.PreviewTypeWords)
	}
	return nil
}
