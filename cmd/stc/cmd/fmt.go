package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperdrive-technology/core-sub001/internal/formatter"
	"github.com/spf13/cobra"
)

var (
	fmtWrite bool
	fmtList  bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Re-indent Structured Text source files",
	Long: `fmt re-indents Structured Text source by tracking structural
keyword nesting (PROGRAM/END_PROGRAM, IF/END_IF, and so on). It works
on the raw text and never requires the input to parse cleanly.

By default it formats the files named on the command line and writes
the result to standard output; with no files it reads from stdin.`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting would change")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "show a diff instead of rewriting files")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}
	if fmtWrite && fmtDiff {
		return fmt.Errorf("cannot use -w and -d together")
	}

	if len(args) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		fmt.Print(formatter.Format(string(src)))
		return nil
	}

	hasErrors := false
	for _, path := range args {
		if err := formatFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", path, err)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("formatting failed for one or more files")
	}
	return nil
}

func formatFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	original := string(data)
	formatted := formatter.Format(original)
	changed := formatted != original

	switch {
	case fmtList:
		if changed {
			fmt.Println(path)
		}
	case fmtDiff:
		if changed {
			fmt.Printf("--- %s\n+++ %s (formatted)\n", path, path)
			printDiff(original, formatted)
		}
	case fmtWrite:
		if changed {
			return os.WriteFile(path, []byte(formatted), 0644)
		}
	default:
		fmt.Print(formatted)
	}
	return nil
}

func printDiff(a, b string) {
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")
	max := len(aLines)
	if len(bLines) > max {
		max = len(bLines)
	}
	for i := 0; i < max; i++ {
		var aLine, bLine string
		if i < len(aLines) {
			aLine = aLines[i]
		}
		if i < len(bLines) {
			bLine = bLines[i]
		}
		if aLine != bLine {
			if i < len(aLines) {
				fmt.Printf("-%s\n", aLine)
			}
			if i < len(bLines) {
				fmt.Printf("+%s\n", bLine)
			}
		}
	}
}
