// Package block builds the replacement text for an array declaration, either rendered from a
// list of values or accepted as a pre-rendered block, and reads the values back out of one.
package block

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"slotpatch.lol/apputil"
	"slotpatch.lol/chk"
	"slotpatch.lol/errorf"
	"slotpatch.lol/text"
)

// Terminator ends every declaration statement.
const Terminator = ';'

// DefaultPrefix is the keyword that opens a declaration when none is configured.
const DefaultPrefix = "declare"

// Declaration is the signature of an array declaration: the words before the element type
// (DefaultPrefix, or modifiers such as "private static readonly"), the element type and the
// name.
type Declaration struct {
	Prefix      string
	ElementType string
	Name        string
}

// Header is the declaration up to the name, with the words of Prefix separated by single
// spaces.
func (d Declaration) Header() string {
	words := append(strings.Fields(d.Prefix), d.ElementType+"[]", d.Name)
	return strings.Join(words, " ")
}

// Render produces a declaration holding values:
//
//	declare string[] NAME = new string[]
//	{
//	    "value1",
//	    "value2"
//	};
//
// The last element carries no separator. An empty values list gives an empty initializer.
func Render(values []string, d Declaration, indent string) string {
	b := make([]byte, 0, 64+len(values)*(len(indent)+72))
	b = append(b, d.Header()...)
	b = append(b, " = new "...)
	b = append(b, d.ElementType...)
	b = append(b, "[]\n{\n"...)
	for i, v := range values {
		b = append(b, indent...)
		b = text.QuoteEscaped(b, []byte(v))
		if i != len(values)-1 {
			b = append(b, ',')
		}
		b = append(b, '\n')
	}
	b = append(b, '}', Terminator)
	return string(b)
}

// AcceptRaw normalizes a block produced elsewhere: trailing whitespace is trimmed and the
// statement terminator is added when missing. Nothing else about the block is checked.
func AcceptRaw(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if !strings.HasSuffix(s, string(Terminator)) {
		s += string(Terminator)
	}
	return s
}

// Split turns a space separated argument into values. Runs of whitespace count as one
// separator and an empty argument yields no values.
func Split(arg string) []string { return strings.Fields(arg) }

// Resolve returns the contents of the file named by arg if there is one, otherwise arg itself.
// fromFile reports which of the two was used.
func Resolve(arg string) (s string, fromFile bool, err error) {
	if !apputil.FileExists(arg) {
		return arg, false, nil
	}
	var b []byte
	if b, err = os.ReadFile(arg); chk.E(err) {
		err = errors.Wrapf(err, "reading replacement block %s", arg)
		return
	}
	return string(b), true, nil
}

// Values extracts the quoted elements of the initializer of a declaration as produced by
// Render. Only the first brace delimited initializer is read.
func Values(block string) (values []string, err error) {
	b := []byte(block)
	open := bytes.IndexByte(b, '{')
	if open < 0 {
		err = errorf.E("no initializer in block")
		return
	}
	rem := b[open+1:]
	values = []string{}
	for {
		rem = bytes.TrimLeft(rem, " \t\r\n,")
		if len(rem) == 0 {
			err = errorf.E("unterminated initializer")
			return
		}
		if rem[0] == '}' {
			return
		}
		if rem[0] != '"' {
			err = errorf.E("unexpected %q in initializer", rem[0])
			return
		}
		var content []byte
		if content, rem, err = text.UnmarshalQuoted(rem); err != nil {
			if err == io.EOF {
				err = errorf.E("unterminated string in initializer")
			}
			return
		}
		values = append(values, string(content))
	}
}
