package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperdrive-technology/core-sub001/internal/token"
	"github.com/spf13/cobra"
)

var tokensJSON bool

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Print the authoritative token-kind table used for editor syntax highlighting",
	Long: `tokens dumps the closed set of token kinds the lexer can ever
produce, each tagged with the highlighting category (keyword, literal,
operator, punctuation, other) an editor host maps to a color.

This is the static table described by the worker boundary's
token/highlighting surface: the core owns it, the editor only consumes
it.`,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "emit the table as JSON")
}

type tokenKindEntry struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	kinds := token.AllKinds()
	entries := make([]tokenKindEntry, 0, len(kinds))
	for _, k := range kinds {
		entries = append(entries, tokenKindEntry{Kind: string(k), Category: k.Category().String()})
	}

	if tokensJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		fmt.Printf("%-20s %s\n", e.Kind, e.Category)
	}
	return nil
}
