package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/crosswatch/internal/config"
	"github.com/thruflo/crosswatch/internal/logging"
	"github.com/thruflo/crosswatch/internal/poller"
	"github.com/thruflo/crosswatch/internal/progress"
	"github.com/thruflo/crosswatch/internal/render"
)

// displayLogLines is how many recent log entries the live panel shows.
const displayLogLines = 10

// pollFlags are the polling overrides shared by generate and watch.
type pollFlags struct {
	out      string
	quiet    bool
	maxPolls int
	interval time.Duration
	deadline time.Duration
}

func (f *pollFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "PNG output path (default: <output.dir>/crossword_<session>.png)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Print log lines instead of the live panel")
	cmd.Flags().IntVar(&f.maxPolls, "max-polls", 0, "Maximum number of progress polls (overrides config)")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "Poll interval (overrides config)")
	cmd.Flags().DurationVar(&f.deadline, "deadline", 0, "Wall-clock limit for solving, 0 for none (overrides config)")
}

// apply copies the flags that were set over cfg.
func (f *pollFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("max-polls") {
		cfg.Polling.MaxPolls = f.maxPolls
	}
	if cmd.Flags().Changed("interval") {
		cfg.Polling.Interval = f.interval
	}
	if cmd.Flags().Changed("deadline") {
		cfg.Polling.Deadline = f.deadline
	}
}

var watchFlags pollFlags

var watchCmd = &cobra.Command{
	Use:   "watch <session-id>",
	Short: "Follow the solving progress of an existing session",
	Long: `Poll the solving feed of a session that was already started and replay
its steps until the service reports completion or an error.

Example:
  crosswatch watch 6f1c0f9e-2b1d-4d0c-9a53-5b0b6d1d8f11
  crosswatch watch 6f1c0f9e-2b1d-4d0c-9a53-5b0b6d1d8f11 --quiet --deadline 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	watchFlags.apply(cmd, cfg)
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchSession(ctx, cmd.OutOrStdout(), newClient(cfg), args[0], cfg, watchFlags)
}

// watchSession polls sessionID to a terminal outcome, rendering progress to
// out. On completion the result image is written to disk.
func watchSession(ctx context.Context, out io.Writer, fetcher poller.ProgressFetcher, sessionID string, cfg *config.Config, flags pollFlags) error {
	path := flags.out
	if path == "" {
		var err error
		if path, err = defaultImagePath(cfg.Output.Dir, sessionID); err != nil {
			return err
		}
	}

	tty := render.IsTerminal(out)
	display := render.NewDisplay(out, cfg.Display.Color && tty, !flags.quiet && tty, displayLogLines)
	logger := logging.With("session", sessionID)

	p := poller.New(fetcher, poller.Options{
		Interval:    cfg.Polling.Interval,
		MaxPolls:    cfg.Polling.MaxPolls,
		Deadline:    cfg.Polling.Deadline,
		StepDelay:   cfg.Polling.StepDelay,
		FinalDelay:  cfg.Polling.FinalDelay,
		LogCapacity: cfg.Display.LogCapacity,
		Logger:      logger,
		OnStep:      display.Step,
		OnComplete:  display.Final,
	})

	res := p.Run(ctx, sessionID)
	switch res.Reason {
	case poller.ExitReasonCompleted:
	case poller.ExitReasonCanceled:
		fmt.Fprintln(out, "\nStopped.")
		return nil
	default:
		return res.Err
	}

	if res.Result == nil || res.Result.Image == "" {
		fmt.Fprintln(out, "Solved, but the service returned no image.")
		return nil
	}

	if err := writeImage(path, res.Result); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s\n", path)
	return nil
}

// defaultImagePath names the result image after the session. Ids that could
// leave dir are rejected.
func defaultImagePath(dir, sessionID string) (string, error) {
	name := fmt.Sprintf("crossword_%s.png", sessionID)
	if strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") || !filepath.IsLocal(name) {
		return "", fmt.Errorf("session id %q cannot be used in a file name; use --out", sessionID)
	}
	return filepath.Join(dir, name), nil
}

func writeImage(path string, result *progress.Result) error {
	data, err := progress.DecodeImage(result)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
