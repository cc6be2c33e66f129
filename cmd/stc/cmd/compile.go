package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperdrive-technology/core-sub001/internal/driver"
	"github.com/spf13/cobra"
)

var compileJSON bool

var compileCmd = &cobra.Command{
	Use:   "compile <files...>",
	Short: "Compile one or more Structured Text files",
	Long: `Compile lexes, parses, lowers, and validates every named file and
reports the aggregated diagnostics. It succeeds only if every file is
free of errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "emit the batch result as JSON")
}

func runCompile(cmd *cobra.Command, args []string) error {
	files := make([]driver.SourceFile, 0, len(args))
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		files = append(files, driver.SourceFile{Name: name, Content: string(data)})
	}

	result := driver.CompileBatch(files)

	if compileJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		for _, d := range result.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
			if d.Source != "" {
				loc = d.Source + ":" + loc
			}
			fmt.Printf("%s: %s: %s\n", loc, d.Severity, d.Message)
		}
		fmt.Printf("%d file(s), %d diagnostic(s)\n", result.FileCount, len(result.Diagnostics))
	}

	if !result.Success {
		return fmt.Errorf("compilation failed")
	}
	return nil
}
