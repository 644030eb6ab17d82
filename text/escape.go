package text

// Escape appends src to dst with the characters that cannot appear verbatim
// inside a double quoted C-family string literal replaced by their backslash
// escapes:
//
//	- A double quote, 0x22, as \"
//	- A backslash, 0x5C, as \\
//	- A line break, 0x0A, as \n
//	- A carriage return, 0x0D, as \r
//	- A tab character, 0x09, as \t
//	- A backspace, 0x08, as \b
//	- A form feed, 0x0C, as \f
//
// Everything else, including all UTF-8 sequences, is copied as is.
func Escape(dst, src []byte) []byte {
	for _, c := range src {
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// Unescape reverses Escape in place and returns the shortened slice. Escapes
// that Escape never produces (\u, \x, octal...) are preserved with their
// backslash so that they survive a round trip through Escape unchanged in
// meaning for the target language.
func Unescape(dst []byte) (b []byte) {
	var r, w int
	for ; r < len(dst); r++ {
		if dst[r] != '\\' || r == len(dst)-1 {
			dst[w] = dst[r]
			w++
			continue
		}
		r++
		switch c := dst[r]; c {
		case '"', '\\':
			dst[w] = c
		case 'n':
			dst[w] = '\n'
		case 'r':
			dst[w] = '\r'
		case 't':
			dst[w] = '\t'
		case 'b':
			dst[w] = '\b'
		case 'f':
			dst[w] = '\f'
		default:
			dst[w] = '\\'
			w++
			dst[w] = c
		}
		w++
	}
	b = dst[:w]
	return
}
