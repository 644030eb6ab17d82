// Package document reads a target source file into memory and writes the patched text back.
package document

import (
	"bytes"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"
	xunicode "golang.org/x/text/encoding/unicode"

	"slotpatch.lol/apputil"
	"slotpatch.lol/chk"
	"slotpatch.lol/log"
)

// ErrNotFound is returned by Load when the path does not name an existing regular file.
var ErrNotFound = errors.New("target file not found")

var bom = []byte{0xEF, 0xBB, 0xBF}

// T is the full text of a target file.
type T struct {
	Path string
	Text string
	// BOM records that the file started with a UTF-8 byte order mark, which is not part of
	// Text and is put back by Write.
	BOM  bool
	Mode os.FileMode
}

// Load reads the file at path. The content is decoded as UTF-8; content that is not valid
// UTF-8 is kept as is.
func Load(path string) (d *T, err error) {
	if !apputil.FileExists(path) {
		err = errors.Wrap(ErrNotFound, path)
		return
	}
	var fi os.FileInfo
	if fi, err = os.Stat(path); chk.E(err) {
		return
	}
	var b []byte
	if b, err = os.ReadFile(path); chk.E(err) {
		err = errors.Wrapf(err, "reading %s", path)
		return
	}
	d = &T{Path: path, Mode: fi.Mode().Perm()}
	if !utf8.Valid(b) {
		log.W.F("%s is not valid UTF-8, patching it byte for byte", path)
		d.Text = string(b)
		return
	}
	if bytes.HasPrefix(b, bom) {
		d.BOM = true
		if b, err = xunicode.UTF8BOM.NewDecoder().Bytes(b); chk.E(err) {
			return
		}
	}
	d.Text = string(b)
	log.D.F("loaded %s (%d bytes)", path, len(d.Text))
	return
}

// Bytes returns the encoded content of the document as it will be written.
func (d *T) Bytes() (b []byte, err error) {
	b = []byte(d.Text)
	if d.BOM {
		if b, err = xunicode.UTF8BOM.NewEncoder().Bytes(b); chk.E(err) {
			return
		}
	}
	return
}

// Write stores the document at its path. With atomic the content goes to a temporary file in
// the same directory that is renamed over the target, otherwise the target is truncated and
// rewritten in place.
func Write(d *T, atomic bool) (err error) {
	var b []byte
	if b, err = d.Bytes(); err != nil {
		return
	}
	mode := d.Mode
	if mode == 0 {
		mode = 0o644
	}
	if atomic {
		err = writeAtomic(d.Path, b, mode)
	} else {
		err = os.WriteFile(d.Path, b, mode)
	}
	if err != nil {
		err = errors.Wrapf(err, "writing %s", d.Path)
		return
	}
	log.D.F("wrote %s (%d bytes, atomic=%v)", d.Path, len(b), atomic)
	return
}

func writeAtomic(dest string, b []byte, mode os.FileMode) (err error) {
	var tmp *os.File
	if tmp, err = os.CreateTemp(filepath.Dir(dest), ".slotpatch-*"); chk.E(err) {
		return
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()
	if _, err = tmp.Write(b); chk.E(err) {
		_ = tmp.Close()
		return
	}
	if err = tmp.Sync(); chk.E(err) {
		_ = tmp.Close()
		return
	}
	if err = tmp.Close(); chk.E(err) {
		return
	}
	if err = os.Chmod(tmpPath, mode); chk.E(err) {
		return
	}
	err = os.Rename(tmpPath, dest)
	return
}
