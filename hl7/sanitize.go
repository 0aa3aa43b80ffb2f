package hl7

import "strings"

// SanitizeLineEndings normalizes every line ending in data to a bare
// carriage return, the HL7 segment terminator. CRLF pairs are collapsed
// first so a lone LF pass doesn't split them into two segments.
func SanitizeLineEndings(data string) string {
	data = strings.ReplaceAll(data, "\r\n", "\r")
	data = strings.ReplaceAll(data, "\n", "\r")
	return data
}
