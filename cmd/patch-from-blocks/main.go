// Command patch-from-blocks replaces the G1 and G2 array declarations of a file with
// pre-rendered blocks, each given literally or as a file.
package main

import (
	"os"

	"slotpatch.lol/cli"
)

func main() {
	os.Exit(cli.FromBlocks(os.Args[1:], os.Stdout, os.Stderr))
}
