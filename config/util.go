package config

import (
	"slotpatch.lol/lol"
)

var log = lol.Main.Log
