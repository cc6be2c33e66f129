// Command stc is the command-line front end for the Structured Text
// compiler pipeline: lexing, parsing, compiling, and formatting.
package main

import (
	"os"

	"github.com/hyperdrive-technology/core-sub001/cmd/stc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
