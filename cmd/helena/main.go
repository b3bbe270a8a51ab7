// Command helena is a small demo CLI over the Helena core: it tokenizes,
// parses, disassembles and runs scripts using the pkg/helena facade and
// its stand-in command set.
package main

import (
	"os"

	"github.com/helena-lang/helena/cmd/helena/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
