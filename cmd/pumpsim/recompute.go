package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexshd/pumphydraulics"
	"github.com/spf13/cobra"
)

var (
	recomputeStrictHose   bool
	recomputeStrictNozzle bool
	recomputeStrictState  bool
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Read a SystemState JSON snapshot from stdin and print its Derived result as JSON",
	Long: `recompute is the engine's conformance-harness entry point: it reads one
SystemState JSON document from stdin, runs Engine.Recompute, and writes the
resulting Derived JSON document to stdout. An unreadable or malformed input
document, or a validation failure in strict mode, is reported on stderr and
exits non-zero; every other outcome exits 0 and writes exactly one JSON
document to stdout.`,
	RunE: runRecompute,
}

func init() {
	rootCmd.AddCommand(recomputeCmd)

	recomputeCmd.Flags().BoolVar(&recomputeStrictHose, "strict-hose", false, "reject unknown hose friction coefficients instead of falling back")
	recomputeCmd.Flags().BoolVar(&recomputeStrictNozzle, "strict-nozzle", false, "reject invalid nozzle specs instead of treating them as zero flow")
	recomputeCmd.Flags().BoolVar(&recomputeStrictState, "strict-state", false, "reject a non-convergent supply solve instead of returning a best estimate")
}

func runRecompute(cmd *cobra.Command, args []string) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	var state pumphydraulics.SystemState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("parsing system state: %w", err)
	}

	tables, err := pumphydraulics.NewTables()
	if err != nil {
		return fmt.Errorf("loading data tables: %w", err)
	}

	config := pumphydraulics.Config{
		StrictHose:   recomputeStrictHose,
		StrictNozzle: recomputeStrictNozzle,
		StrictState:  recomputeStrictState,
	}
	engine := pumphydraulics.NewEngine(tables, config)

	derived, err := engine.Recompute(state)
	if err != nil {
		slog.Error("recompute rejected", "error", err)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(derived)
}
