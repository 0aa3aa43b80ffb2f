// Package encode turns a cursor-engine [hl7.Message] back into wire bytes.
//
// Because a Message already is a lazy view over one buffer, encoding a
// segment is just reading Value() off it — there is no per-element tree
// walk to reassemble. What this package adds on top is line-ending
// normalization, optional MLLP framing, and writer-based streaming with
// context cancellation.
//
// # Basic usage
//
//	enc := encode.New()
//	data, err := enc.Encode(msg)
//	if err != nil {
//	    log.Fatal("encode error:", err)
//	}
//
// Streaming straight to a connection:
//
//	ctx := context.Background()
//	if err := enc.EncodeToWriter(ctx, conn, msg); err != nil {
//	    log.Fatal("encode error:", err)
//	}
//
// # Options
//
//	enc := encode.New(
//	    encode.WithLineEnding("\r\n"),        // CRLF instead of bare CR
//	    encode.WithMLLP(true),                // wrap in MLLP framing
//	    encode.WithTrailingDelimiters(true),   // recorded only; segments are written as they stand
//	)
//
// # Line endings
//
// HL7 v2.x segments are terminated with a bare carriage return (0x0D),
// which is the default. Some receivers expect CRLF or LF instead:
//
//	encode.New(encode.WithLineEnding("\r\n")) // Windows-style
//	encode.New(encode.WithLineEnding("\n"))   // Unix-style
//
// # MLLP framing
//
// When WithMLLP(true) is set, the encoded message is wrapped with a start
// block (0x0B) and an end block (0x1C 0x0D):
//
//	<VT>MSH|^~\&|...<CR>PID|...<CR>...<FS><CR>
//
// The same three constants this package exports (MLLPStartBlock,
// MLLPEndBlock, MLLPCarriageReturn) are what the mllp package's own
// Frame/Unframe functions use, so framing stays consistent whether a
// message is wrapped here or at the transport layer.
//
// # Error handling
//
// Encoding failures are returned as *Error, carrying the offending segment
// name and an optional wrapped cause:
//
//	if _, err := enc.Encode(msg); err != nil {
//	    var encErr *encode.Error
//	    if errors.As(err, &encErr) {
//	        log.Printf("encode failed at %s: %s (%v)", encErr.Segment, encErr.Message, encErr.Cause)
//	    }
//	}
//
// # Example: parse, mutate, send
//
//	parser := parse.New()
//	msg, err := parser.Parse(incomingData)
//	if err != nil {
//	    return err
//	}
//	msg.Set("MSH.5", "RECEIVING_APP")
//	msg.Set("MSH.6", "RECEIVING_FACILITY")
//
//	enc := encode.New(encode.WithMLLP(true))
//	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
//	defer cancel()
//	if err := enc.EncodeToWriter(ctx, conn, msg); err != nil {
//	    return fmt.Errorf("failed to send message: %w", err)
//	}
package encode
