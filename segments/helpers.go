package segments

import (
	"strings"

	"github.com/dshills/hl7cursor/hl7"
)

// getFieldValue extracts a string value from a segment field at the given position.
// Returns an empty string if the field does not exist.
func getFieldValue(seg *hl7.Segment, fieldNum int) string {
	return seg.Field(fieldNum).Value()
}

// getComponentValue extracts a single component out of a composite field
// (e.g. component 1 of PID-5, the family name in an XPN). Returns an empty
// string if the field or component does not exist.
func getComponentValue(seg *hl7.Segment, fieldNum, componentNum int) string {
	f, ok := seg.Field(fieldNum).(*hl7.Field)
	if !ok {
		return ""
	}
	return f.Component(componentNum).Value()
}

// compositeComponent splits an already-extracted composite field value (as stored
// on a typed segment struct, e.g. PID.PatientName) on the default component
// delimiter and returns the n-th (1-based) piece. Typed segment structs hold
// plain strings with no Delimiters of their own, so this always uses the
// standard "^" separator rather than a message's configured one; callers
// needing a non-default delimiter should read the component off the
// originating *hl7.Segment directly via getComponentValue instead.
func compositeComponent(value string, n int) string {
	parts := strings.Split(value, string(hl7.DefaultDelimiters().Component))
	if n < 1 || n > len(parts) {
		return ""
	}
	return parts[n-1]
}

// buildSegmentData constructs a segment string from a name and slice of field values.
// Empty trailing fields are omitted to avoid unnecessary trailing delimiters.
func buildSegmentData(name string, fields []string, delims *hl7.Delimiters) string {
	if delims == nil {
		delims = hl7.DefaultDelimiters()
	}

	fieldSep := string(delims.Field)

	// Find the last non-empty field to avoid trailing delimiters
	lastNonEmpty := -1
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] != "" {
			lastNonEmpty = i
			break
		}
	}

	data := name

	// Append fields up to and including the last non-empty field
	for i := 0; i <= lastNonEmpty; i++ {
		data += fieldSep + fields[i]
	}

	return data
}
