package text

import (
	"io"
)

// UnmarshalQuoted finds the next double quoted string in b and returns its
// unescaped content and whatever follows the closing quote. The content is
// unescaped in place, so b is mangled by the call. io.EOF is returned if no
// opening quote is found or the string is never closed.
func UnmarshalQuoted(b []byte) (content, rem []byte, err error) {
	rem = b
	for len(rem) > 0 && rem[0] != '"' {
		rem = rem[1:]
	}
	if len(rem) == 0 {
		err = io.EOF
		return
	}
	rem = rem[1:]
	start := rem
	var escaping bool
	for i := 0; i < len(rem); i++ {
		switch c := rem[i]; {
		case escaping:
			escaping = false
		case c == '\\':
			escaping = true
		case c == '"':
			content = Unescape(start[:i])
			rem = rem[i+1:]
			return
		case c == '\n':
			err = errorf.E("line break in quoted string at offset %d", i)
			return
		}
	}
	err = io.EOF
	return
}
