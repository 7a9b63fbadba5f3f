package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexshd/pumphydraulics"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a SystemState JSON snapshot under full strict mode",
	Long: `validate reads one SystemState JSON document from stdin and runs it through
Engine.Recompute with every strict flag enabled (StrictHose, StrictNozzle,
StrictState). It prints "ok" and exits 0 if the state is fully valid and the
supply solver converges; otherwise it prints the rejecting *ValidationError
and exits non-zero. Unlike recompute, it never writes a Derived document.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	engine := pumphydraulics.NewEngine(tables, pumphydraulics.Config{
		StrictHose:   true,
		StrictNozzle: true,
		StrictState:  true,
	})

	if _, err := engine.Recompute(state); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	fmt.Println("ok")
	return nil
}
