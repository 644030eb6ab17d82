// Command patch-single-array replaces either the G1 or, with --use-secondary, the G2 array
// declaration of a file with a pre-rendered block.
package main

import (
	"os"

	"slotpatch.lol/cli"
)

func main() {
	os.Exit(cli.SingleArray(os.Args[1:], os.Stdout, os.Stderr))
}
