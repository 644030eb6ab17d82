// Package slot finds named array declarations in a document and replaces them.
//
// A declaration starts with a header of the form
//
//	<prefix> <type>[] <name> =
//
// where prefix is one or more words such as "declare" or "private static readonly" and may be
// empty. It ends at the first statement terminator that is not nested inside brackets, braces
// or parentheses and not part of a string, character literal or comment. Headers that appear
// inside comments or string literals are not declarations.
package slot

import (
	"regexp"
	"sort"
	"strings"

	"slotpatch.lol/block"
)

// T names a declaration to look for. Prefix is matched word by word with any whitespace in
// between.
type T struct {
	Prefix      string
	Name        string
	ElementType string
}

// Span is the byte range [Start, End) of a declaration, terminator included.
type Span struct{ Start, End int }

func (s *T) header() *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`\b`)
	for _, w := range strings.Fields(s.Prefix) {
		b.WriteString(regexp.QuoteMeta(w) + `\s+`)
	}
	b.WriteString(regexp.QuoteMeta(s.ElementType) + `\s*\[\s*\]\s+` + regexp.QuoteMeta(s.Name) + `\s*=`)
	return regexp.MustCompile(b.String())
}

// Find returns the spans of every complete declaration of the slot in doc, in document order.
func (s *T) Find(doc string) (spans []Span) {
	sc := scan(doc)
	for _, m := range s.header().FindAllStringIndex(doc, -1) {
		if !sc.code(m[0]) {
			continue
		}
		if len(spans) > 0 && m[0] < spans[len(spans)-1].End {
			continue
		}
		end, ok := sc.terminator(m[1])
		if !ok {
			log.D.F("declaration of %s at offset %d is never terminated", s.Name, m[0])
			continue
		}
		spans = append(spans, Span{m[0], end + 1})
	}
	return
}

// Patch replaces the first declaration of the slot with replacement. When there is none, doc
// is returned unchanged and found is false. n is the number of declarations of the slot that
// were present.
func (s *T) Patch(doc, replacement string) (out string, found bool, n int) {
	spans := s.Find(doc)
	if n = len(spans); n == 0 {
		return doc, false, 0
	}
	sp := spans[0]
	return doc[:sp.Start] + replacement + doc[sp.End:], true, n
}

// Patch replaces the first declaration of name with element type elementType in doc, using
// the default declaration prefix.
func Patch(doc, name, elementType, replacement string) (out string, found bool) {
	s := &T{Prefix: block.DefaultPrefix, Name: name, ElementType: elementType}
	out, found, _ = s.Patch(doc, replacement)
	return
}

// scanner knows which parts of a document are comments and literals.
type scanner struct {
	doc string
	// skip holds the sorted, non-overlapping [start, end) ranges that are not code.
	skip []Span
}

func scan(doc string) (sc *scanner) {
	sc = &scanner{doc: doc}
	for i := 0; i < len(doc); {
		switch c := doc[i]; {
		case c == '/' && i+1 < len(doc) && doc[i+1] == '/':
			end := i + 2
			for end < len(doc) && doc[end] != '\n' {
				end++
			}
			sc.skip = append(sc.skip, Span{i, end})
			i = end
		case c == '/' && i+1 < len(doc) && doc[i+1] == '*':
			end := i + 2
			for end < len(doc) && !(doc[end] == '*' && end+1 < len(doc) && doc[end+1] == '/') {
				end++
			}
			end = min(end+2, len(doc))
			sc.skip = append(sc.skip, Span{i, end})
			i = end
		case c == '"' && verbatimAt(doc, i):
			end := verbatim(doc, i)
			sc.skip = append(sc.skip, Span{i, end})
			i = end
		case c == '"' || c == '\'':
			end := quoted(doc, i)
			sc.skip = append(sc.skip, Span{i, end})
			i = end
		default:
			i++
		}
	}
	return
}

// quoted returns the offset just past the literal opened by the quote at start. A literal
// without a closing quote ends at the line break.
func quoted(doc string, start int) int {
	q := doc[start]
	for i := start + 1; i < len(doc); i++ {
		switch doc[i] {
		case '\\':
			i++
		case q:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(doc)
}

// verbatimAt reports whether the quote at i opens a verbatim string, @"..." or $@"..." or
// @$"...".
func verbatimAt(doc string, i int) bool {
	return i > 0 && (doc[i-1] == '@' || (doc[i-1] == '$' && i > 1 && doc[i-2] == '@'))
}

// verbatim returns the offset just past the verbatim string opened by the quote at start.
// Backslashes are literal, a doubled quote stands for one quote and line breaks are allowed.
func verbatim(doc string, start int) int {
	for i := start + 1; i < len(doc); i++ {
		if doc[i] != '"' {
			continue
		}
		if i+1 < len(doc) && doc[i+1] == '"' {
			i++
			continue
		}
		return i + 1
	}
	return len(doc)
}

// code reports whether offset i is outside every comment and literal.
func (sc *scanner) code(i int) bool {
	k := sort.Search(len(sc.skip), func(k int) bool { return sc.skip[k].End > i })
	return k == len(sc.skip) || sc.skip[k].Start > i
}

// terminator finds the offset of the statement terminator closing a declaration whose body
// starts at from. A closing bracket that was never opened means the declaration ran into the
// end of its enclosing scope without a terminator, and ok is false.
func (sc *scanner) terminator(from int) (end int, ok bool) {
	depth := 0
	k := sort.Search(len(sc.skip), func(k int) bool { return sc.skip[k].End > from })
	for i := from; i < len(sc.doc); i++ {
		if k < len(sc.skip) && i >= sc.skip[k].Start {
			i = sc.skip[k].End - 1
			k++
			continue
		}
		switch sc.doc[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth == 0 {
				return 0, false
			}
			depth--
		case ';':
			if depth == 0 {
				return i, true
			}
		}
	}
	return
}
