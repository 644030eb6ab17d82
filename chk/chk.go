// Package chk exposes the error checks of the main lol.Logger. chk.E(err) logs a non-nil err
// at error level and reports whether it was non-nil, for use in if statements.
package chk

import (
	"slotpatch.lol/lol"
)

var F, E, W, I, D, T lol.Chk

func init() {
	c := lol.Main.Check
	F, E, W, I, D, T = c.F, c.E, c.W, c.I, c.D, c.T
}
