// Package parse provides HL7 v2.x message parsing functionality.
package parse

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dshills/hl7cursor/hl7"
)

// MLLP (Minimal Lower Layer Protocol) framing bytes.
const (
	mllpStartByte = 0x0B // Vertical Tab (VT)
	mllpEndByte1  = 0x1C // File Separator (FS)
	mllpEndByte2  = 0x0D // Carriage Return (CR)
)

// Parser-specific errors.
var (
	// ErrTooManySegments is returned when the message exceeds maxSegments.
	ErrTooManySegments = errors.New("message exceeds maximum segment count")
	// ErrFieldTooLong is returned when a field exceeds maxFieldLength.
	ErrFieldTooLong = errors.New("field exceeds maximum length")
	// ErrContextCanceled is returned when the parsing context is canceled.
	ErrContextCanceled = errors.New("parsing canceled")
	// ErrEmptySegment is returned when an empty segment is found and not allowed.
	ErrEmptySegment = errors.New("empty segment not allowed")
)

// Parser defines the interface for HL7 message parsing.
type Parser interface {
	// Parse parses raw HL7 message data into a Message.
	// The input data may include MLLP framing which will be stripped.
	Parse(data []byte) (*hl7.Message, error)

	// ParseContext parses raw HL7 message data with context support.
	// Allows for cancellation during parsing of large messages.
	ParseContext(ctx context.Context, data []byte) (*hl7.Message, error)
}

// parser is the concrete implementation of Parser.
type parser struct {
	config parserConfig
}

// New creates a new Parser with the given options.
func New(opts ...ParserOption) Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &parser{config: cfg}
}

// Parse parses raw HL7 message data into a Message.
func (p *parser) Parse(data []byte) (*hl7.Message, error) {
	return p.ParseContext(context.Background(), data)
}

// ParseContext parses raw HL7 message data with context support. Unlike the
// teacher's segment-by-segment construction, the cursor engine divides the
// buffer lazily, so ParseContext's job is to strip framing, hand the
// resulting text to hl7.NewWithOptions, and then enforce the DoS-protection
// and strictness limits the options configure by walking the already-built
// tree.
func (p *parser) ParseContext(ctx context.Context, data []byte) (*hl7.Message, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
	default:
	}

	data = stripMLLP(data)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, hl7.ErrEmptyMessage
	}

	msg, err := hl7.NewWithOptions(string(data), p.config.customDelimiters, p.config.segmentTerminator)
	if err != nil {
		return nil, &hl7.ParseError{Message: "failed to parse message", Cause: err}
	}

	segs := msg.AllSegments()
	if len(segs) > p.config.maxSegments {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManySegments, len(segs), p.config.maxSegments)
	}

	for i, seg := range segs {
		if i%100 == 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
			default:
			}
		}

		if seg.Name() == "" {
			if p.config.allowEmptySegments {
				continue
			}
			if p.config.strictMode {
				return nil, &hl7.ParseError{Message: ErrEmptySegment.Error(), Line: i + 1}
			}
			continue
		}

		if err := p.checkFieldLengths(seg); err != nil {
			return nil, &hl7.ParseError{Message: err.Error(), Line: i + 1, Cause: err}
		}
	}

	return msg, nil
}

// stripMLLP removes MLLP framing from the data if present.
// MLLP format: <VT>message<FS><CR> where VT=0x0B, FS=0x1C, CR=0x0D
func stripMLLP(data []byte) []byte {
	if len(data) == 0 {
		return data
	}

	// Check for start byte
	if data[0] == mllpStartByte {
		data = data[1:]
	}

	// Check for end bytes (FS CR)
	if len(data) >= 2 {
		if data[len(data)-2] == mllpEndByte1 && data[len(data)-1] == mllpEndByte2 {
			data = data[:len(data)-2]
		} else if data[len(data)-1] == mllpEndByte1 {
			// Some implementations only use FS without CR
			data = data[:len(data)-1]
		}
	}

	return data
}

// checkFieldLengths validates that no field of seg exceeds the configured
// maximum length, walking the already-divided Field elements rather than
// re-scanning raw bytes.
func (p *parser) checkFieldLengths(seg *hl7.Segment) error {
	n := seg.DescendantCount()
	for i := 1; i <= n; i++ {
		if fieldLen := len(seg.Field(i).Value()); fieldLen > p.config.maxFieldLength {
			return fmt.Errorf("%w: field %d is %d bytes, max %d",
				ErrFieldTooLong, i, fieldLen, p.config.maxFieldLength)
		}
	}
	return nil
}
