// Command pumpsim runs the fireground pump hydraulics calculation
// engine against a system-state snapshot.
package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

func init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))
}

var rootCmd = &cobra.Command{
	Use:   "pumpsim",
	Short: "Fireground pump hydraulics calculator",
	Long: `pumpsim evaluates hydrant supply-side flow and pressure and discharge-side
friction loss and required pump discharge pressure from a system-state
snapshot, the same calculation a pump operator's panel display runs on
every gauge update.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("pumpsim failed", "error", err)
		os.Exit(1)
	}
}
