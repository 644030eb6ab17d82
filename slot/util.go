package slot

import (
	"slotpatch.lol/lol"
)

var log = lol.Main.Log
