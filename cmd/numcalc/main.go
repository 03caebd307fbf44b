// Command numcalc compiles expressions of x and applies numerical methods to
// them.
package main

import (
	"fmt"
	"os"

	"github.com/zephyrtronium/numcalc/cmd/numcalc/commands"
)

func main() {
	if err := commands.NewRootCmd().ExecuteArgs(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
