// Package env is an implementation of the env.Source interface from
// go-simpler.org that layers the process environment over a .env file.
package env

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"slotpatch.lol/apputil"
	"slotpatch.lol/chk"
	"slotpatch.lol/log"
)

// Env is a key/value map used to represent environment variables loaded from a file. Keys set
// in the process environment take precedence over it.
type Env map[string]string

// GetEnv reads a file of KEY=value lines in the format understood by godotenv (comments,
// quoting and `export` prefixes are allowed).
func GetEnv(path string) (env Env, err error) {
	var m map[string]string
	if m, err = godotenv.Read(path); chk.T(err) {
		return
	}
	env = Env(m)
	return
}

// Path returns the location of the .env file for an application, under the XDG config home
// (for example ~/.config/<appName>/.env on linux).
func Path(appName string) string {
	return filepath.Join(xdg.ConfigHome, appName, ".env")
}

// Load returns the values of the application's .env file, or an empty Env when there is none
// or it cannot be read.
func Load(appName string) (env Env) {
	p := Path(appName)
	if !apputil.FileExists(p) {
		log.T.F("no config file at %s", p)
		return Env{}
	}
	var err error
	if env, err = GetEnv(p); err != nil {
		log.W.F("ignoring config file %s: %s", p, err)
		return Env{}
	}
	log.D.F("loaded %d values from %s", len(env), p)
	return
}

// LookupEnv returns the raw string value associated with a provided key name, used as a custom
// environment variable loader for go-simpler.org/env. The process environment is consulted
// first.
func (env Env) LookupEnv(key string) (value string, ok bool) {
	if value, ok = os.LookupEnv(key); ok {
		return
	}
	value, ok = env[key]
	return
}
