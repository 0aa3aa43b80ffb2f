// Package hl7 provides core types and utilities for HL7 v2.x message processing.
package hl7

import "strings"

// StringDivision is an immutable span into a divider's value: the half-open
// byte range [Offset, Offset+Length). A zero Length denotes an empty slot
// between two consecutive delimiters (or the whole value, if it contains no
// delimiter at all).
type StringDivision struct {
	Offset int
	Length int
}

// divide splits buffer on delim and returns the resulting spans. An empty
// buffer yields exactly one zero-length span; n occurrences of delim yield
// n+1 spans, and adjacent delimiters yield zero-length spans between them.
// Offsets are byte offsets into buffer; a division never includes delim
// itself.
func divide(buffer string, delim rune) []StringDivision {
	if buffer == "" {
		return []StringDivision{{Offset: 0, Length: 0}}
	}

	divs := make([]StringDivision, 0, 4)
	start := 0
	for i, r := range buffer {
		if r == delim {
			divs = append(divs, StringDivision{Offset: start, Length: i - start})
			start = i + len(string(r))
		}
	}
	divs = append(divs, StringDivision{Offset: start, Length: len(buffer) - start})
	return divs
}

// padded computes, for a write into slot index, the value extended with the
// minimum number of trailing delimiters so that slot index exists, and
// returns the fresh division table for the padded value. If index already
// addresses an existing slot, value is returned unchanged.
func padded(value string, index int, delim rune) (string, []StringDivision) {
	divs := divide(value, delim)
	if index < len(divs) {
		return value, divs
	}
	need := index - len(divs) + 1
	out := value + strings.Repeat(string(delim), need)
	return out, divide(out, delim)
}

// splice returns a new string with source[offset:offset+length] replaced by
// replacement.
func splice(source string, offset, length int, replacement string) string {
	return source[:offset] + replacement + source[offset+length:]
}
