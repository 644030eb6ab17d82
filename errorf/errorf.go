// Package errorf exposes the log-and-return error constructors of the main lol.Logger.
// errorf.E(format, ...) logs at error level and returns the formatted error.
package errorf

import (
	"slotpatch.lol/lol"
)

var F, E, W, I, D, T lol.Err

func init() {
	e := lol.Main.Errorf
	F, E, W, I, D, T = e.F, e.E, e.W, e.I, e.D, e.T
}
