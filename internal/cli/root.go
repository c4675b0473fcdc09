package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attrib",
	Short: "IHC multi-touch marketing attribution pipeline",
	Long: `Attrib rebuilds customer journeys from raw marketing sessions,
assigns each touchpoint a fractional Initializer/Holder/Closer credit,
and rolls credit up into per-channel daily reporting with CPO and ROAS.

It reads sessions, costs, and conversions from a relational store
(SQLite or Postgres), snapshots the built journeys to CSV, writes the
attribution and channel reporting tables back to the store, and exports
the final report with metrics as CSV.`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
