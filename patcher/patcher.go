// Package patcher applies a set of slot replacements to a document and writes the result.
package patcher

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"slotpatch.lol/block"
	"slotpatch.lol/chk"
	"slotpatch.lol/document"
	"slotpatch.lol/log"
	"slotpatch.lol/slot"
)

// ErrSlotNotFound is returned by Run in strict mode when a slot has no declaration in the
// document.
var ErrSlotNotFound = errors.New("slot declaration not found")

// Replacement is the new declaration text for one slot.
type Replacement struct {
	Slot string
	Text string
}

// Outcome is what happened to one slot.
type Outcome struct {
	Slot    string
	Patched bool
	// Found is the number of declarations of the slot in the document. Only the first one
	// is replaced.
	Found int
}

// Report lists the outcome of every replacement, in the order they were applied.
type Report []Outcome

// Missing returns the slots that were not patched.
func (r Report) Missing() (slots []string) {
	for _, o := range r {
		if !o.Patched {
			slots = append(slots, o.Slot)
		}
	}
	return
}

// Options controls how Run writes its result.
type Options struct {
	// Atomic writes through a temporary file renamed over the target.
	Atomic bool
	// Strict turns an unmatched slot into ErrSlotNotFound, and nothing is written.
	Strict bool
	// DryRun sends the patched document to DryRun instead of the target file.
	DryRun io.Writer
}

// Patcher rewrites declarations of a fixed element type whose header opens with Prefix.
type Patcher struct {
	Prefix      string
	ElementType string
	Indent      string
}

// New creates a Patcher for declarations of elementType opened by prefix, rendering elements
// with indent.
func New(prefix, elementType, indent string) *Patcher {
	return &Patcher{Prefix: prefix, ElementType: elementType, Indent: indent}
}

// Render is the replacement for slot holding values.
func (p *Patcher) Render(slotName string, values []string) Replacement {
	return Replacement{Slot: slotName, Text: block.Render(values, p.declaration(slotName), p.Indent)}
}

func (p *Patcher) declaration(slotName string) block.Declaration {
	return block.Declaration{Prefix: p.Prefix, ElementType: p.ElementType, Name: slotName}
}

// Raw is the replacement for slot taken from a pre-rendered block.
func (p *Patcher) Raw(slotName, text string) Replacement {
	return Replacement{Slot: slotName, Text: block.AcceptRaw(text)}
}

// Apply patches each slot of reps into text in turn. Slots without a declaration are left as
// they are.
func (p *Patcher) Apply(text string, reps ...Replacement) (out string, rep Report) {
	out = text
	for _, r := range reps {
		s := &slot.T{Prefix: p.Prefix, Name: r.Slot, ElementType: p.ElementType}
		var o Outcome
		o.Slot = r.Slot
		out, o.Patched, o.Found = s.Patch(out, r.Text)
		switch {
		case !o.Patched:
			log.W.F("no declaration %s found, left unchanged", p.declaration(r.Slot).Header())
		case o.Found > 1:
			log.W.F("%d declarations of %s found, only the first was replaced", o.Found, r.Slot)
		default:
			log.I.F("patched %s", r.Slot)
		}
		rep = append(rep, o)
	}
	return
}

// Run loads the document at path, applies reps and writes it back. A missing target is an
// error matching document.ErrNotFound and nothing is written.
func (p *Patcher) Run(path string, opts Options, reps ...Replacement) (rep Report, err error) {
	var d *document.T
	if d, err = document.Load(path); err != nil {
		return
	}
	d.Text, rep = p.Apply(d.Text, reps...)
	if missing := rep.Missing(); opts.Strict && len(missing) > 0 {
		err = errors.Wrapf(ErrSlotNotFound, "%s in %s", strings.Join(missing, ", "), path)
		return
	}
	if opts.DryRun != nil {
		var b []byte
		if b, err = d.Bytes(); chk.E(err) {
			return
		}
		_, err = opts.DryRun.Write(b)
		return
	}
	err = document.Write(d, opts.Atomic)
	return
}
