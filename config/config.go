// Package config loads the settings shared by the patch commands from the environment, with
// defaults taken from an optional .env file in the XDG config directory.
package config

import (
	"io"
	"os"
	"strings"

	"go-simpler.org/env"

	"slotpatch.lol/chk"
	"slotpatch.lol/config/keyvalue"
	envfile "slotpatch.lol/env"
	"slotpatch.lol/lol"
)

// DefaultAppName names the config directory when APP_NAME is not set.
const DefaultAppName = "slotpatch"

// C is the configuration of a patch run. Slot names and the element type select which
// declarations are rewritten, the rest controls rendering, writing and diagnostics.
type C struct {
	AppName           string `env:"APP_NAME" default:"slotpatch" usage:"name of the config directory holding an optional .env file"`
	LogLevel          string `env:"LOG_LEVEL" default:"info" usage:"debug level: off fatal error warn info debug trace"`
	G1Slot            string `env:"G1_SLOT" default:"G1_PAIRS" usage:"name of the first array declaration patched from lists or blocks"`
	G2Slot            string `env:"G2_SLOT" default:"G2_PAIRS" usage:"name of the second array declaration patched from lists or blocks"`
	G1PointsSlot      string `env:"G1_POINTS_SLOT" default:"G1_POINTS" usage:"name of the primary array declaration patched by patch-single-array"`
	G2PointsSlot      string `env:"G2_POINTS_SLOT" default:"G2_POINTS" usage:"name of the secondary array declaration patched by patch-single-array --use-secondary"`
	DeclarationPrefix string `env:"DECLARATION_PREFIX" default:"declare" usage:"words before the element type in a declaration, e.g. 'private static readonly'"`
	ElementType       string `env:"ELEMENT_TYPE" default:"string" usage:"element type in the declaration signature"`
	IndentWidth       int    `env:"INDENT_WIDTH" default:"4" usage:"spaces before each element of a rendered block"`
	AtomicWrite       bool   `env:"ATOMIC_WRITE" default:"false" usage:"write to a temporary file and rename it over the target"`
	Pprof             bool   `env:"PPROF" default:"false" usage:"write a CPU profile of the run"`
	ProfileDir        string `env:"PROFILE_DIR" default:"." usage:"directory the CPU profile is written to"`
}

// appName is the APP_NAME from the process environment, which decides where the .env file
// is looked for before anything else is loaded.
func appName() string {
	if n := strings.TrimSpace(os.Getenv("APP_NAME")); n != "" {
		return n
	}
	return DefaultAppName
}

// New loads the configuration and applies the log level.
func New() (c *C, err error) {
	c = &C{}
	if err = env.Load(c, &env.Options{Source: envfile.Load(appName())}); chk.E(err) {
		return
	}
	if c.IndentWidth < 0 {
		c.IndentWidth = 0
	}
	lol.SetLogLevel(strings.ToLower(c.LogLevel))
	log.T.C(func() string {
		var b strings.Builder
		keyvalue.PrintEnv(*c, &b)
		return "effective configuration:\n" + b.String()
	})
	return
}

// Indent is the string placed before each element of a rendered block.
func (c *C) Indent() string { return strings.Repeat(" ", c.IndentWidth) }

// PrintHelp writes the list of environment variables and their defaults to w.
func PrintHelp(w io.Writer) {
	env.Usage(&C{}, w, nil)
}

// Usage is PrintHelp as a string, for command help epilogues.
func Usage() string {
	var b strings.Builder
	b.WriteString("environment variables (also read from " + envfile.Path(appName()) + "):\n\n")
	PrintHelp(&b)
	return b.String()
}
