// Package problem defines the validation problem model emitted by the
// evaluator: a structured record of a single keyword failure, with optional
// branches for compound problems raised by oneOf/anyOf/not.
package problem

import (
	"strconv"
	"strings"
)

// Problem describes one keyword evaluation failure.
type Problem struct {
	Path     string            // JSON pointer to the offending instance location.
	Keyword  string            // the keyword that raised the problem, e.g. "minLength".
	Code     string            // stable message key looked up in the i18n catalog.
	Params   map[string]string // substitution values for the rendered message.
	Schema   string            // JSON pointer to the schema keyword, for diagnostics.
	Branches []List            // set only for oneOf.few/oneOf.many/anyOf-style compound problems.
}

// List is a sequence of Problems. It implements error so a List can be
// returned wherever Go code expects an error; non-branching code need not
// know about Problem at all.
type List []Problem

func (l List) Error() string {
	if len(l) == 0 {
		return "no problems"
	}
	var b strings.Builder
	n := len(l)
	if n > 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(l[i].Path)
		b.WriteString(": ")
		b.WriteString(l[i].Code)
	}
	if len(l) > 3 {
		b.WriteString(" ... (total ")
		b.WriteString(strconv.Itoa(len(l)))
		b.WriteString(")")
	}
	return b.String()
}

// Append is a small helper mirroring append's ergonomics while keeping call
// sites free of nil-slice special cases.
func Append(l List, p ...Problem) List { return append(l, p...) }
