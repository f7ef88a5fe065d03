package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/go-dws/internal/core"
	"github.com/cwbudde/go-dws/internal/parc"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	parcEnable    bool
	parcDisable   bool
	parcTraceJSON bool
	parcQuery     string
)

var parcCmd = &cobra.Command{
	Use:   "parc [fixture.yaml]",
	Short: "Run the PARC reference-counting pass over a Core IR fixture",
	Long: `Decode a YAML Core-IR fixture, run the PARC pass over it, and print
the resulting program.

A fixture describes a small Core program (a type registry plus top-level
definitions) as data; see internal/core's DecodeProgram for the schema.
This command exists to drive the pass outside of a test binary, for
inspecting what dup/drop insertions a given definition produces.

Examples:
  # Print the transformed program
  dwscript parc fixture.yaml

  # Force the pass on regardless of KK_PARC
  dwscript parc --enable fixture.yaml

  # Emit a per-definition dup/drop trace as JSON
  dwscript parc --trace-json fixture.yaml

  # Pull one field out of the trace with a gjson path
  dwscript parc --trace-json --query "defs.0.dups" fixture.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runParc,
}

func init() {
	rootCmd.AddCommand(parcCmd)

	parcCmd.Flags().BoolVar(&parcEnable, "enable", false, "force the pass on regardless of KK_PARC")
	parcCmd.Flags().BoolVar(&parcDisable, "disable", false, "force the pass off regardless of KK_PARC")
	parcCmd.Flags().BoolVar(&parcTraceJSON, "trace-json", false, "emit a per-definition dup/drop trace as JSON instead of the program text")
	parcCmd.Flags().StringVar(&parcQuery, "query", "", "gjson path to extract from the trace JSON (implies --trace-json)")
}

func runParc(cmd *cobra.Command, args []string) error {
	if parcEnable && parcDisable {
		return fmt.Errorf("--enable and --disable are mutually exclusive")
	}

	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", filename, err)
	}

	before, reg, err := core.DecodeProgram(data)
	if err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", filename, err)
	}

	opts := parc.Options{}
	switch {
	case parcEnable:
		enabled := true
		opts.Enabled = &enabled
	case parcDisable:
		disabled := false
		opts.Enabled = &disabled
	}

	after, err := parc.Run(before, reg, opts)
	if err != nil {
		return fmt.Errorf("parc: %w", err)
	}

	if parcQuery != "" {
		parcTraceJSON = true
	}

	if !parcTraceJSON {
		for _, g := range after.Groups {
			for _, d := range g.Defs {
				fmt.Printf("%s = %s\n", d.Name.String(), d.Body.String())
			}
		}
		return nil
	}

	trace := parc.BuildTrace(before, after)
	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}

	traceJSON, err = sjson.SetBytes(traceJSON, "source", filename)
	if err != nil {
		return fmt.Errorf("failed to annotate trace with source: %w", err)
	}

	if parcQuery != "" {
		result := gjson.GetBytes(traceJSON, parcQuery)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing in the trace", parcQuery)
		}
		fmt.Println(result.String())
		return nil
	}

	fmt.Println(string(traceJSON))
	return nil
}
