// Package log exposes the level printers of the main lol.Logger under short names, so call
// sites read log.I.F(...), log.W.Ln(...) and so on.
package log

import (
	"slotpatch.lol/lol"
)

var F, E, W, I, D, T lol.LevelPrinter

func init() {
	l := lol.Main.Log
	F, E, W, I, D, T = l.F, l.E, l.W, l.I, l.D, l.T
}
