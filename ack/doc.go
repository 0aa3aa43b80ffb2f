// Package ack provides HL7 v2.x acknowledgment (ACK) message generation.
//
// The ack package builds ACK messages in response to incoming HL7 messages.
// It supports positive acknowledgment (AA - Application Accept) and negative
// acknowledgment (AE - Application Error, AR - Application Reject), plus the
// commit-level codes (CA, CE, CR) via ACK.Code directly.
//
// # ACK Message Structure
//
// An ACK message consists of:
//   - MSH: Message header, mirrored from the original with sending and
//     receiving applications/facilities swapped
//   - MSA: Message acknowledgment segment containing:
//   - MSA-1: Acknowledgment code (AA, AE, AR, CA, CE, CR)
//   - MSA-2: Message control ID (from the original MSH-10)
//   - MSA-3: Text message (optional)
//   - ERR: Error segment (optional, included when the ACK carries error
//     information and its code indicates an error or reject condition)
//
// # Basic Usage
//
//	b := ack.NewBuilder()
//
//	// Positive acknowledgment
//	ackMsg, err := b.Accept(original)
//
//	// Negative acknowledgment with a reason
//	ackMsg, err := b.Reject(original, "invalid message format")
//
//	// Error acknowledgment wrapping a Go error
//	ackMsg, err := b.Error(original, fmt.Errorf("patient ID not found"))
//
// Each method returns a fully built *hl7.Message ready for encode.Encoder.
//
// # Custom Acknowledgments
//
// Use Custom with an ACK value for full control over the acknowledgment
// code, text, and error detail:
//
//	ackMsg, err := b.Custom(original, ack.ACK{
//	    Code:          ack.ApplicationError,
//	    ControlID:     original.ControlID(),
//	    TextMessage:   "validation failed",
//	    ErrorCode:     "101",
//	    ErrorLocation: "PID-3-1",
//	    ErrorMessage:  "patient ID is required",
//	    Severity:      "E",
//	})
//
// ACK also provides constructors for the common cases:
//
//	ack.NewAcceptACK(controlID)
//	ack.NewErrorACK(controlID, errorCode, message)
//	ack.NewRejectACK(controlID, reason)
//
// # Builder Options
//
// NewBuilder accepts functional options for testing and control ID
// generation:
//
//	b := ack.NewBuilder(
//	    ack.WithTimeFunc(func() time.Time { return fixedTime }),
//	    ack.WithControlIDFunc(func() string { return "ACK00001" }),
//	)
//
// # Example: Complete ACK Workflow
//
//	func handleHL7Message(data []byte) ([]byte, error) {
//	    msg, err := parse.New().Parse(data)
//	    if err != nil {
//	        return nil, fmt.Errorf("parse error: %w", err)
//	    }
//
//	    result := validate.NewWithRuleSet(validate.ADTRules()).Validate(msg)
//	    b := ack.NewBuilder()
//	    if !result.Valid() {
//	        errs := result.Errors()
//	        ackMsg, _ := b.Custom(msg, ack.NewErrorACK(msg.ControlID(), "101", errs[0].Error()))
//	        return encode.New().Encode(ackMsg)
//	    }
//
//	    if err := processMessage(msg); err != nil {
//	        ackMsg, _ := b.Error(msg, err)
//	        return encode.New().Encode(ackMsg)
//	    }
//
//	    ackMsg, _ := b.Accept(msg)
//	    return encode.New().Encode(ackMsg)
//	}
//
// # Example ACK Message
//
// For an incoming ADT^A01 message, a successful ACK looks like:
//
//	MSH|^~\&#|RECEIVING_APP|RECEIVING_FAC|SENDING_APP|SENDING_FAC|20240115120000||ACK^A01|ACK12345|P|2.5.1
//	MSA|AA|MSG12345
//
// An error ACK:
//
//	MSH|^~\&#|RECEIVING_APP|RECEIVING_FAC|SENDING_APP|SENDING_FAC|20240115120000||ACK^A01|ACK12346|P|2.5.1
//	MSA|AE|MSG12345|patient ID not found
//	ERR|||207|E|||patient ID not found
package ack
