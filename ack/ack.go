package ack

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/hl7cursor/hl7"
)

// Errors returned by the ACK builder.
var (
	// ErrNilMessage indicates a nil message was provided.
	ErrNilMessage = errors.New("nil message")

	// ErrMissingControlID indicates the original message has no control ID.
	ErrMissingControlID = errors.New("original message missing control ID (MSH-10)")

	// ErrMissingMSH indicates the original message has no MSH segment.
	ErrMissingMSH = errors.New("original message missing MSH segment")

	// ErrInvalidACKCode indicates an invalid acknowledgment code was provided.
	ErrInvalidACKCode = errors.New("invalid acknowledgment code")
)

// Builder creates HL7 acknowledgment messages from original messages.
// It handles the construction of MSH, MSA, and optional ERR segments.
type Builder interface {
	// Accept creates an acceptance ACK (AA) for the original message.
	// The ACK message will have:
	//   - MSH segment with swapped sending/receiving applications
	//   - MSA segment with code "AA" and original message control ID
	Accept(original *hl7.Message) (*hl7.Message, error)

	// Reject creates a rejection ACK (AR) for the original message.
	// The ACK message will have:
	//   - MSH segment with swapped sending/receiving applications
	//   - MSA segment with code "AR" and original message control ID
	//   - Optional reason text in MSA-3
	Reject(original *hl7.Message, reason string) (*hl7.Message, error)

	// Error creates an error ACK (AE) for the original message.
	// The ACK message will have:
	//   - MSH segment with swapped sending/receiving applications
	//   - MSA segment with code "AE" and original message control ID
	//   - Error message from err.Error() in MSA-3
	//   - ERR segment with error details
	Error(original *hl7.Message, err error) (*hl7.Message, error)

	// Custom creates an ACK with fully customized acknowledgment data.
	// Use this for advanced scenarios requiring specific error codes,
	// error locations, or non-standard acknowledgment handling.
	Custom(original *hl7.Message, ack ACK) (*hl7.Message, error)
}

// builder is the concrete implementation of Builder.
type builder struct {
	// timeFunc returns the current time. Used for testing.
	timeFunc func() time.Time

	// controlIDFunc generates unique control IDs for ACK messages.
	// If nil, uses timestamp-based generation.
	controlIDFunc func() string
}

// Option configures a Builder.
type Option func(*builder)

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(b *builder) {
		b.timeFunc = fn
	}
}

// WithControlIDFunc sets a custom control ID generator.
func WithControlIDFunc(fn func() string) Option {
	return func(b *builder) {
		b.controlIDFunc = fn
	}
}

// NewBuilder creates a new ACK Builder with the given options.
func NewBuilder(opts ...Option) Builder {
	b := &builder{
		timeFunc: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.controlIDFunc == nil {
		b.controlIDFunc = func() string {
			return fmt.Sprintf("ACK%d", b.timeFunc().UnixNano())
		}
	}

	return b
}

// Accept creates an acceptance ACK (AA) for the original message.
func (b *builder) Accept(original *hl7.Message) (*hl7.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	controlID := original.ControlID()
	if controlID == "" {
		return nil, ErrMissingControlID
	}

	return b.Custom(original, NewAcceptACK(controlID))
}

// Reject creates a rejection ACK (AR) for the original message.
func (b *builder) Reject(original *hl7.Message, reason string) (*hl7.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	controlID := original.ControlID()
	if controlID == "" {
		return nil, ErrMissingControlID
	}

	return b.Custom(original, NewRejectACK(controlID, reason))
}

// Error creates an error ACK (AE) for the original message.
func (b *builder) Error(original *hl7.Message, err error) (*hl7.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	controlID := original.ControlID()
	if controlID == "" {
		return nil, ErrMissingControlID
	}

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	ack := NewErrorACK(controlID, "207", errMsg) // 207 = Application internal error
	return b.Custom(original, ack)
}

// Custom creates an ACK with fully customized acknowledgment data.
func (b *builder) Custom(original *hl7.Message, ack ACK) (*hl7.Message, error) {
	if original == nil {
		return nil, ErrNilMessage
	}

	if !ack.Code.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidACKCode, ack.Code)
	}

	msh, ok := original.Segment("MSH")
	if !ok {
		return nil, ErrMissingMSH
	}

	delims := original.Delimiters()
	if delims == nil {
		delims = hl7.DefaultDelimiters()
	}

	return b.buildACKMessage(msh, delims, ack)
}

// buildACKMessage constructs the complete ACK message: an MSH header seeded
// from the original (with applications swapped), an MSA carrying the
// acknowledgment code, and an optional ERR segment.
func (b *builder) buildACKMessage(originalMSH *hl7.Segment, delims *hl7.Delimiters, ack ACK) (*hl7.Message, error) {
	skeleton := "MSH" + string(delims.Field) + delims.EncodingCharacters()
	msg, err := hl7.NewWithOptions(skeleton, delims, hl7.SegmentTerminator)
	if err != nil {
		return nil, fmt.Errorf("building ACK skeleton: %w", err)
	}

	mshSeg, _ := msg.Segment("MSH")
	if err := b.fillMSHSegment(mshSeg, originalMSH, delims); err != nil {
		return nil, fmt.Errorf("building MSH segment: %w", err)
	}

	msaSeg, err := msg.AddSegment("MSA")
	if err != nil {
		return nil, fmt.Errorf("adding MSA segment: %w", err)
	}
	if err := fillMSASegment(msaSeg, ack); err != nil {
		return nil, fmt.Errorf("building MSA segment: %w", err)
	}

	if ack.NeedsERRSegment() {
		errSeg, err := msg.AddSegment("ERR")
		if err != nil {
			return nil, fmt.Errorf("adding ERR segment: %w", err)
		}
		if err := fillERRSegment(errSeg, ack); err != nil {
			return nil, fmt.Errorf("building ERR segment: %w", err)
		}
	}

	return msg, nil
}

// fillMSHSegment populates the ACK's MSH segment, swapping sending and
// receiving applications from the original MSH.
func (b *builder) fillMSHSegment(seg, originalMSH *hl7.Segment, delims *hl7.Delimiters) error {
	// Swap sending and receiving applications
	// Original MSH-3 (Sending App) -> ACK MSH-5 (Receiving App)
	// Original MSH-4 (Sending Facility) -> ACK MSH-6 (Receiving Facility)
	// Original MSH-5 (Receiving App) -> ACK MSH-3 (Sending App)
	// Original MSH-6 (Receiving Facility) -> ACK MSH-4 (Sending Facility)
	originalSendingApp := originalMSH.Child(3).Value()
	originalSendingFacility := originalMSH.Child(4).Value()
	originalReceivingApp := originalMSH.Child(5).Value()
	originalReceivingFacility := originalMSH.Child(6).Value()

	if err := seg.Child(3).SetValue(originalReceivingApp); err != nil {
		return fmt.Errorf("setting MSH-3: %w", err)
	}
	if err := seg.Child(4).SetValue(originalReceivingFacility); err != nil {
		return fmt.Errorf("setting MSH-4: %w", err)
	}
	if err := seg.Child(5).SetValue(originalSendingApp); err != nil {
		return fmt.Errorf("setting MSH-5: %w", err)
	}
	if err := seg.Child(6).SetValue(originalSendingFacility); err != nil {
		return fmt.Errorf("setting MSH-6: %w", err)
	}

	// MSH-7: Date/Time of Message
	timestamp := b.timeFunc().Format("20060102150405")
	if err := seg.Child(7).SetValue(timestamp); err != nil {
		return fmt.Errorf("setting MSH-7: %w", err)
	}

	// MSH-9: Message Type, ACK^<trigger event from original>
	ackMsgType := "ACK"
	if triggerEvent := originalMSH.Child(9).Child(1).Child(2).Value(); triggerEvent != "" {
		ackMsgType = fmt.Sprintf("ACK%c%s", delims.Component, triggerEvent)
	}
	if err := seg.Child(9).SetValue(ackMsgType); err != nil {
		return fmt.Errorf("setting MSH-9: %w", err)
	}

	// MSH-10: Message Control ID (unique for the ACK)
	if err := seg.Child(10).SetValue(b.controlIDFunc()); err != nil {
		return fmt.Errorf("setting MSH-10: %w", err)
	}

	// MSH-11: Processing ID (copy from original)
	if processingID := originalMSH.Child(11).Value(); processingID != "" {
		if err := seg.Child(11).SetValue(processingID); err != nil {
			return fmt.Errorf("setting MSH-11: %w", err)
		}
	}

	// MSH-12: Version ID (copy from original)
	if versionID := originalMSH.Child(12).Value(); versionID != "" {
		if err := seg.Child(12).SetValue(versionID); err != nil {
			return fmt.Errorf("setting MSH-12: %w", err)
		}
	}

	return nil
}

// fillMSASegment populates the MSA (Message Acknowledgment) segment.
func fillMSASegment(seg *hl7.Segment, ack ACK) error {
	if err := seg.Child(1).SetValue(string(ack.Code)); err != nil {
		return fmt.Errorf("setting MSA-1: %w", err)
	}
	if err := seg.Child(2).SetValue(ack.ControlID); err != nil {
		return fmt.Errorf("setting MSA-2: %w", err)
	}
	if ack.TextMessage != "" {
		if err := seg.Child(3).SetValue(ack.TextMessage); err != nil {
			return fmt.Errorf("setting MSA-3: %w", err)
		}
	}
	return nil
}

// fillERRSegment populates the ERR (Error) segment for error/reject ACKs.
func fillERRSegment(seg *hl7.Segment, ack ACK) error {
	// ERR-1: Error Code and Location (HL7 v2.3 and earlier)
	// ERR-2: Error Location (HL7 v2.4+, more structured)
	if ack.ErrorLocation != "" {
		if err := seg.Child(1).SetValue(ack.ErrorLocation); err != nil {
			return fmt.Errorf("setting ERR-1: %w", err)
		}
		if err := seg.Child(2).SetValue(ack.ErrorLocation); err != nil {
			return fmt.Errorf("setting ERR-2: %w", err)
		}
	}

	// ERR-3: HL7 Error Code (HL7 v2.5+)
	if ack.ErrorCode != "" {
		if err := seg.Child(3).SetValue(ack.ErrorCode); err != nil {
			return fmt.Errorf("setting ERR-3: %w", err)
		}
	}

	// ERR-4: Severity (HL7 v2.5+)
	if ack.Severity != "" {
		if err := seg.Child(4).SetValue(ack.Severity); err != nil {
			return fmt.Errorf("setting ERR-4: %w", err)
		}
	}

	// ERR-7: Diagnostic Information (HL7 v2.5+)
	if ack.ErrorMessage != "" {
		if err := seg.Child(7).SetValue(ack.ErrorMessage); err != nil {
			return fmt.Errorf("setting ERR-7: %w", err)
		}
	}

	return nil
}
