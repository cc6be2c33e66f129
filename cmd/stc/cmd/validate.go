package cmd

import (
	"fmt"
	"os"

	"github.com/hyperdrive-technology/core-sub001/internal/driver"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Run the fast incremental validation pass on a single file",
	Long: `Validate runs the lex/parse/lower/validate stages against a single
file and reports its diagnostics with 0-based line and column
positions, without retaining a compiled AST.
This mirrors the entry point a host calls on every edit, rather than
the full batch compile.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	result := driver.ValidateIncremental(filename, string(data))
	hasError := false
	for _, d := range result.Diagnostics {
		loc := fmt.Sprintf("%s:%d:%d", d.Source, d.Line, d.Column)
		fmt.Printf("%s: %s: %s\n", loc, d.Severity, d.Message)
		if d.Severity == "error" {
			hasError = true
		}
	}
	if hasError {
		return fmt.Errorf("validation failed")
	}
	return nil
}
