package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/cliptrim/internal/platform/config"
	"github.com/chrisuehlinger/cliptrim/internal/platform/logger"
)

var (
	cfg       config.Config
	log       *slog.Logger
	envFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "cliptrim",
	Short: "Pick the start and end of a clip before upload",
	Long: `cliptrim is a clip trimming tool. It shows a timeline with two draggable
handles, loops playback inside the selected range, and hands the chosen range
and a video name to the upload form.

The trimmer can run in a desktop window, replay scripted interactions
headlessly, or be driven interactively from a JavaScript shell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment and defaults still apply.
		_ = config.Load(envFile)
		cfg = config.FromEnv()
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		log = logger.New(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(replCmd)
}
