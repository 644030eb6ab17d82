// Command patch-from-lists renders the G1 and G2 array declarations of a file from space
// separated value lists.
package main

import (
	"os"

	"slotpatch.lol/cli"
)

func main() {
	os.Exit(cli.FromLists(os.Args[1:], os.Stdout, os.Stderr))
}
