// Package ack provides functionality for building HL7 v2.x acknowledgment (ACK) messages.
//
// ACK messages are used to confirm receipt and acceptance of HL7 messages.
// The package supports all standard acknowledgment codes:
//   - AA (Application Accept): Message accepted successfully
//   - AE (Application Error): Message contains errors but was received
//   - AR (Application Reject): Message rejected, not processed
//   - CA (Commit Accept): Message committed to storage
//   - CE (Commit Error): Commit failed with errors
//   - CR (Commit Reject): Commit rejected
//
// An ACK message consists of:
//   - MSH segment: Message header with swapped sending/receiving applications
//   - MSA segment: Message acknowledgment with code and original message control ID
//   - ERR segment (optional): Error details when acknowledgment indicates an error
package ack

import (
	"strings"

	"github.com/dshills/hl7cursor/hl7"
)

// Code represents an HL7 acknowledgment code.
// Acknowledgment codes indicate the result of processing the original message.
type Code string

// Standard HL7 acknowledgment codes, grouped by what they tell the sender
// about the original message (accepted / errored / rejected) and whether
// the acknowledgment is at the application or the commit-to-storage level.
const (
	ApplicationAccept Code = "AA"
	ApplicationError  Code = "AE"
	ApplicationReject Code = "AR"
	CommitAccept      Code = "CA"
	CommitError       Code = "CE"
	CommitReject      Code = "CR"
)

var codeDescriptions = map[Code]string{
	ApplicationAccept: "message accepted for processing",
	ApplicationError:  "message received, contains errors preventing processing",
	ApplicationReject: "message received but rejected, not processed",
	CommitAccept:      "message committed to safe storage",
	CommitError:       "commit to safe storage failed with errors",
	CommitReject:      "commit to safe storage rejected",
}

// String returns the string representation of the acknowledgment code.
func (c Code) String() string {
	return string(c)
}

// Description returns a human-readable summary of what the code means, or
// "" if c isn't one of the standard six.
func (c Code) Description() string {
	return codeDescriptions[c]
}

// IsAccept returns true if the code represents an accept condition (AA or CA).
func (c Code) IsAccept() bool {
	return c == ApplicationAccept || c == CommitAccept
}

// IsError returns true if the code represents an error condition (AE or CE).
func (c Code) IsError() bool {
	return c == ApplicationError || c == CommitError
}

// IsReject returns true if the code represents a reject condition (AR or CR).
func (c Code) IsReject() bool {
	return c == ApplicationReject || c == CommitReject
}

// IsValid returns true if the code is one of the standard six acknowledgment codes.
func (c Code) IsValid() bool {
	_, ok := codeDescriptions[c]
	return ok
}

// ACK represents acknowledgment data used to construct an ACK message.
// It contains all the information needed to build MSA and optional ERR segments.
type ACK struct {
	// Code is the acknowledgment code (AA, AE, AR, CA, CE, CR).
	// This is placed in MSA-1.
	Code Code

	// ControlID is the message control ID from the original message (MSH-10).
	// This is placed in MSA-2 to correlate the ACK with the original message.
	ControlID string

	// TextMessage is an optional text message describing the acknowledgment.
	// This is placed in MSA-3.
	TextMessage string

	// ErrorCode is the error code for the ERR segment (ERR-3).
	// An ERR segment is included only when the acknowledgment code is an
	// error or reject code and some error information is set (see
	// NeedsERRSegment).
	// Common values include:
	//   - "0"   : Message accepted
	//   - "100" : Segment sequence error
	//   - "101" : Required field missing
	//   - "102" : Data type error
	//   - "103" : Table value not found
	//   - "200" : Unsupported message type
	//   - "201" : Unsupported event code
	//   - "202" : Unsupported processing id
	//   - "203" : Unsupported version id
	//   - "204" : Unknown key identifier
	//   - "205" : Duplicate key identifier
	//   - "206" : Application record locked
	//   - "207" : Application internal error
	ErrorCode string

	// ErrorLocation is the HL7 location path where the error occurred.
	// Format: "SEG-Field-Component-SubComponent" (e.g., "PID-3-1").
	// It is written to both ERR-1 (HL7 v2.3 and earlier) and ERR-2 (Error
	// Location, HL7 v2.4+), whatever the message version.
	ErrorLocation string

	// ErrorMessage provides additional details about the error.
	// This is placed in ERR-7 (Diagnostic Information) in HL7 v2.5+.
	ErrorMessage string

	// Severity indicates the error severity for the ERR segment.
	// Values: "E" (Error), "W" (Warning), "I" (Information).
	// This is placed in ERR-4 in HL7 v2.5+.
	Severity string
}

// NewAcceptACK creates an ACK struct for accepting a message.
func NewAcceptACK(controlID string) ACK {
	return ACK{
		Code:      ApplicationAccept,
		ControlID: controlID,
	}
}

// NewErrorACK creates an ACK struct for an error response.
func NewErrorACK(controlID string, errorCode string, message string) ACK {
	return ACK{
		Code:         ApplicationError,
		ControlID:    controlID,
		ErrorCode:    errorCode,
		TextMessage:  message,
		ErrorMessage: message,
		Severity:     "E",
	}
}

// NewRejectACK creates an ACK struct for rejecting a message.
func NewRejectACK(controlID string, reason string) ACK {
	return ACK{
		Code:        ApplicationReject,
		ControlID:   controlID,
		TextMessage: reason,
		Severity:    "E",
	}
}

// HasError returns true if the ACK includes error information.
func (a ACK) HasError() bool {
	return a.ErrorCode != "" || a.ErrorLocation != "" || a.ErrorMessage != ""
}

// ParsedErrorLocation parses ErrorLocation as a dotted hl7 path
// ("PID.3.1") rather than the legacy dash form ("PID-3-1") ERR-2 carries on
// the wire. ok is false if ErrorLocation is empty or not a valid path.
func (a ACK) ParsedErrorLocation() (loc *hl7.Location, ok bool) {
	if a.ErrorLocation == "" {
		return nil, false
	}
	dotted := strings.ReplaceAll(a.ErrorLocation, "-", ".")
	loc, err := hl7.ParseLocation(dotted)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// NeedsERRSegment returns true if the ACK should include an ERR segment.
// An ERR segment is included when there is error information and the
// acknowledgment code indicates an error or reject condition.
func (a ACK) NeedsERRSegment() bool {
	return a.HasError() && (a.Code.IsError() || a.Code.IsReject())
}
