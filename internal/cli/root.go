package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thruflo/crosswatch/internal/client"
	"github.com/thruflo/crosswatch/internal/config"
	"github.com/thruflo/crosswatch/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	serverURL string
	configDir string
	logLevel  string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "crosswatch",
	Short: "Watch a crossword service build a puzzle step by step",
	Long: `crosswatch submits a structure and a word list to a crossword service,
polls its solving feed and replays every solver step in the terminal until
the puzzle is complete. The finished grid is printed and its image is saved
as a PNG.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("crosswatch version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&serverURL, "server", "", "Crossword service URL (overrides config)")
	flags.StringVar(&configDir, "config-dir", "", "Directory containing .crosswatch/ and .env (default: current directory)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings resolves the config for a command run: the config file, then
// the environment, then root flags.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	base := configDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		base = cwd
	}

	cfg, err := config.Load(base)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("server") {
		cfg.Server.URL = serverURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if noColor {
		cfg.Display.Color = false
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)

	return cfg, nil
}

func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.Server.URL,
		client.WithTimeout(cfg.Server.Timeout),
		client.WithUserAgent("crosswatch/"+Version),
		client.WithLogger(logging.Default()),
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}
