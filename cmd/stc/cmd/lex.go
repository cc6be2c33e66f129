package cmd

import (
	"fmt"
	"os"

	"github.com/hyperdrive-technology/core-sub001/internal/lexer"
	"github.com/hyperdrive-technology/core-sub001/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowPos  bool
	lexShowKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Structured Text file or expression",
	Long: `Tokenize a Structured Text source file and print the resulting
tokens, for debugging the lexer.

Examples:
  stc lex program.st
  stc lex -e "x := T#500ms;"
  stc lex --show-kind --show-pos program.st`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
	lexCmd.Flags().BoolVar(&lexShowKind, "show-kind", false, "show each token's kind")
}

func runLex(cmd *cobra.Command, args []string) error {
	var input, filename string
	switch {
	case lexEval != "":
		input, filename = lexEval, "<eval>"
	case len(args) == 1:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filename, err)
		}
		input = string(data)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	l := lexer.New(input)
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	if l.Diagnostics().HasErrors() {
		for _, d := range l.Diagnostics().All() {
			fmt.Fprintln(os.Stderr, d.String())
		}
		return fmt.Errorf("lexical errors in %s", filename)
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("%q", tok.Literal)
	if lexShowKind {
		out = fmt.Sprintf("[%s] %s", tok.Kind, out)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Range.Start.Line+1, tok.Range.Start.Column+1)
	}
	fmt.Println(out)
}
