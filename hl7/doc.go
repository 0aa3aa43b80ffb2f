// Package hl7 provides a cursor-based view over HL7 v2.x message text:
// reading, navigating, and editing a message works directly against its
// textual representation rather than through an intermediate parsed object
// graph.
//
// # Divider chain
//
// A Message owns one mutable buffer. Every node below it — Segment, Field,
// FieldRepetition, Component, Subcomponent — is a Divider pinned to one
// division of its parent's value, recursively, so a write anywhere always
// ends up mutating the root buffer and bumping its version counter. Each
// divider's division table is cached against that version and recomputed
// lazily on the next read after a write invalidates it.
//
// # Element tree
//
// Message, Segment, Field, FieldRepetition, Component, Subcomponent, and
// HeaderField all satisfy Element, sharing one generic base (see
// element.go) rather than an inheritance hierarchy. Child(i) returns the
// one-based child at i, materializing it (via padding) on first write if i
// is past the current count.
//
// Segment is the one irregular level: its field-addressable text strips a
// leading (up to three-character) identifier and the field separator
// immediately following it, and MSH further reserves field 1 for the
// separator character itself (synthetic, read-only) so that field 2 is the
// first backed by a division.
//
// # Location syntax
//
// The package uses a location string syntax to address values within
// messages. The format is: SEG[idx].field[rep].component.subcomponent
//
// Examples:
//   - "PID" - entire PID segment
//   - "PID.5" - field 5 of PID
//   - "PID.5.1" - component 1 of field 5
//   - "PID.5.1.2" - subcomponent 2 of component 1
//   - "PID[1].5" - field 5 of the second PID segment
//   - "PID.5[0].1" - component 1 of the first repetition of field 5
//
// Field, Component, and SubComponent indices are 1-based per HL7
// convention. Segment and Repetition indices are 0-based. Omitting a part
// of the path stops descent at the deepest part given, rather than
// erroring.
//
// # Delimiters
//
// HL7 v2.x messages define their delimiters in the MSH segment:
//   - MSH-1: Field separator (typically |)
//   - MSH-2: Encoding characters (typically ^~\&)
//
// # Escape sequences
//
// Special characters within data values are represented using escape
// sequences:
//   - \F\ for field separator (|)
//   - \S\ for component separator (^)
//   - \T\ for subcomponent separator (&)
//   - \R\ for repetition separator (~)
//   - \E\ for escape character (\)
//   - \Xhh...\ for hexadecimal data
//   - \.br\ for line breaks
//
// # Example usage
//
//	msg, err := hl7.New(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	name, err := msg.Get("PID.5")
//	lastName, err := msg.Get("PID.5.1")
//	ids, err := msg.GetAll("PID.3")
//	err = msg.Set("PID.5.1", "SMITH")
//
//	pid, ok := msg.Segment("PID")
//	for _, obx := range msg.Segments("OBX") {
//	    fmt.Println("Observation:", obx.Field(5).Value())
//	}
//
// Using Location for efficient repeated access:
//
//	loc, err := hl7.ParseLocation("PID.5.1")
//	for _, msg := range messages {
//	    name, _ := msg.GetAt(loc)
//	}
//
// Parsing, encoding, validation, and acknowledgment live in the parse,
// encode, validate, and ack packages, each built against *Message directly
// rather than a capability interface of this package's own.
package hl7
