package text

import (
	"slotpatch.lol/lol"
)

var errorf = lol.Main.Errorf
