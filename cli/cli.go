// Package cli implements the patch commands as functions that take the command line arguments
// and return the process exit code, so that the main packages are one line and the commands
// can be exercised in tests.
package cli

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"

	"slotpatch.lol/block"
	"slotpatch.lol/config"
	"slotpatch.lol/log"
	"slotpatch.lol/patcher"
)

const (
	ExitOK = iota
	// ExitFailure covers usage errors, a missing target file and every other failure.
	ExitFailure
)

// Common are the flags every command accepts.
type Common struct {
	Strict bool `arg:"--strict" help:"exit with an error, writing nothing, when a slot declaration is not found"`
	DryRun bool `arg:"--dry-run" help:"print the patched file to stdout instead of writing it"`
}

// Epilogue lists the environment configuration below the command help.
func (Common) Epilogue() string { return config.Usage() }

type listArgs struct {
	File string `arg:"positional,required" help:"file containing the declarations to replace"`
	G1   string `arg:"positional,required" help:"space separated values of the first array"`
	G2   string `arg:"positional,required" help:"space separated values of the second array"`
	Common
}

func (listArgs) Description() string {
	return "Replaces the two array declarations with ones rendered from the given values.\n"
}

type blockArgs struct {
	File string `arg:"positional,required" help:"file containing the declarations to replace"`
	G1   string `arg:"positional,required" help:"declaration replacing the first array, or a file holding it"`
	G2   string `arg:"positional,required" help:"declaration replacing the second array, or a file holding it"`
	Common
}

func (blockArgs) Description() string {
	return "Replaces the two array declarations with pre-rendered blocks.\n"
}

type singleArgs struct {
	File         string `arg:"positional,required" help:"file containing the declaration to replace"`
	Block        string `arg:"positional,required" help:"declaration replacing the array, or a file holding it"`
	UseSecondary bool   `arg:"--use-secondary" help:"replace the secondary (G2_POINTS) array instead of the primary (G1_POINTS)"`
	Common
}

func (singleArgs) Description() string {
	return "Replaces one array declaration with a pre-rendered block.\n"
}

// builder produces the replacements of a command once the configuration is known.
type builder func(c *config.C, p *patcher.Patcher) (reps []patcher.Replacement, err error)

// FromLists is patch-from-lists: FILE G1 G2, with G1 and G2 space separated value lists.
func FromLists(args []string, stdout, stderr io.Writer) int {
	var a listArgs
	if code, ok := parse("patch-from-lists", &a, args, stdout, stderr); !ok {
		return code
	}
	return execute(a.File, a.Common, stdout, stderr,
		func(c *config.C, p *patcher.Patcher) ([]patcher.Replacement, error) {
			return []patcher.Replacement{
				p.Render(c.G1Slot, block.Split(a.G1)),
				p.Render(c.G2Slot, block.Split(a.G2)),
			}, nil
		})
}

// FromBlocks is patch-from-blocks: FILE G1 G2, with G1 and G2 each either a pre-rendered
// declaration or the path of a file containing one.
func FromBlocks(args []string, stdout, stderr io.Writer) int {
	var a blockArgs
	if code, ok := parse("patch-from-blocks", &a, args, stdout, stderr); !ok {
		return code
	}
	return execute(a.File, a.Common, stdout, stderr,
		func(c *config.C, p *patcher.Patcher) (reps []patcher.Replacement, err error) {
			var g1, g2 string
			if g1, err = resolve(c.G1Slot, a.G1); err != nil {
				return
			}
			if g2, err = resolve(c.G2Slot, a.G2); err != nil {
				return
			}
			reps = []patcher.Replacement{p.Raw(c.G1Slot, g1), p.Raw(c.G2Slot, g2)}
			return
		})
}

// SingleArray is patch-single-array: FILE BLOCK [--use-secondary]. It targets the point
// arrays, G1_POINTS_SLOT or with --use-secondary G2_POINTS_SLOT.
func SingleArray(args []string, stdout, stderr io.Writer) int {
	var a singleArgs
	if code, ok := parse("patch-single-array", &a, args, stdout, stderr); !ok {
		return code
	}
	return execute(a.File, a.Common, stdout, stderr,
		func(c *config.C, p *patcher.Patcher) (reps []patcher.Replacement, err error) {
			name := c.G1PointsSlot
			if a.UseSecondary {
				name = c.G2PointsSlot
			}
			var s string
			if s, err = resolve(name, a.Block); err != nil {
				return
			}
			reps = []patcher.Replacement{p.Raw(name, s)}
			return
		})
}

// resolve reads the replacement block for slotName from the file named by arg, or takes arg
// as the block itself when no such file exists.
func resolve(slotName, arg string) (s string, err error) {
	var fromFile bool
	if s, fromFile, err = block.Resolve(arg); err != nil {
		return
	}
	if fromFile {
		log.I.F("%s: replacement block read from %s", slotName, arg)
	} else {
		log.D.F("%s: no file named by the argument, using it as the replacement block", slotName)
	}
	return
}

// parse fills dest from args. When ok is false the command is over and code is its exit code:
// help goes to stdout and exits 0, anything else is a usage error.
func parse(program string, dest any, args []string, stdout, stderr io.Writer) (code int, ok bool) {
	p, err := arg.NewParser(arg.Config{Program: program}, dest)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return ExitFailure, false
	}
	switch err = p.Parse(args); {
	case err == arg.ErrHelp:
		p.WriteHelp(stdout)
		return ExitOK, false
	case err != nil:
		p.WriteUsage(stderr)
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return ExitFailure, false
	}
	return ExitOK, true
}

func execute(path string, common Common, stdout, stderr io.Writer, build builder) int {
	c, err := config.New()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: configuration: %s\n", err)
		return ExitFailure
	}
	if c.Pprof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(c.ProfileDir),
			profile.NoShutdownHook, profile.Quiet).Stop()
	}
	p := patcher.New(c.DeclarationPrefix, c.ElementType, c.Indent())
	var reps []patcher.Replacement
	if reps, err = build(c, p); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return ExitFailure
	}
	opts := patcher.Options{Atomic: c.AtomicWrite, Strict: common.Strict}
	if common.DryRun {
		opts.DryRun = stdout
	}
	var rep patcher.Report
	if rep, err = p.Run(path, opts, reps...); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s\n", err)
		return ExitFailure
	}
	log.D.S(rep)
	return ExitOK
}
