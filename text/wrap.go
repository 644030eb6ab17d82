package text

type AppendBytesClosure func(dst, src []byte) []byte

func AppendQuote(dst, src []byte, ac AppendBytesClosure) []byte {
	dst = append(dst, '"')
	dst = ac(dst, src)
	dst = append(dst, '"')
	return dst
}

// QuoteEscaped wraps src in double quotes, escaping its content with Escape.
func QuoteEscaped(dst, src []byte) []byte { return AppendQuote(dst, src, Escape) }
