package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dwscript",
	Short: "PARC reference-counting pass driver",
	Long: `dwscript drives the PARC pass: it decodes a Core IR program from a
YAML fixture, inserts dup/drop/is-unique/free/reuse primitives according
to per-use ownership and liveness, and prints the rewritten program or a
per-definition diagnostic trace.

See the "parc" subcommand for the actual pass; this binary carries no
DWScript front end of its own.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
