package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/crosswatch/internal/client"
	"github.com/thruflo/crosswatch/internal/config"
)

var (
	generateSessionID string
	generateFlags     pollFlags
)

var generateCmd = &cobra.Command{
	Use:   "generate <structure> <words>",
	Short: "Generate a crossword and watch it being solved",
	Long: `Start a solve of a structure file with a word list on the crossword
service, then poll its progress and replay every step until the puzzle is
complete. File names are resolved by the service, relative to its data
directory.

When the solve completes, the final grid is printed and the image is saved
to <output.dir>/crossword_<session>.png unless --out is given.

Example:
  crosswatch generate structure0.txt words0.txt
  crosswatch generate structure1.txt words1.txt --quiet --max-polls 500`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateSessionID, "session-id", "", "Session id to use (default: a new UUID)")
	generateFlags.register(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	generateFlags.apply(cmd, cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return generateSession(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), newClient(cfg), args[0], args[1], generateSessionID, cfg, generateFlags)
}

// generateSession starts a solve and watches it. An interrupt while the
// request is in flight stops the command the same way as one while polling.
func generateSession(ctx context.Context, out, errOut io.Writer, c *client.Client, structure, words, requestedID string, cfg *config.Config, flags pollFlags) error {
	sessionID, err := c.Generate(ctx, structure, words, requestedID)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(out, "\nStopped.")
			return nil
		}
		return err
	}
	fmt.Fprintf(errOut, "Session %s\n", sessionID)

	return watchSession(ctx, out, c, sessionID, cfg, flags)
}
