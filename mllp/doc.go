// Package mllp provides MLLP (Minimal Lower Layer Protocol) support for HL7 v2.x.
//
// MLLP is the standard transport protocol for HL7 messages over TCP/IP. It defines
// a simple framing mechanism using control characters to delimit message boundaries.
//
// # MLLP Frame Format
//
// An MLLP frame consists of:
//   - Start Block: 0x0B (vertical tab, VT)
//   - HL7 Message Data
//   - End Block: 0x1C (file separator, FS)
//   - Carriage Return: 0x0D (CR)
//
// Frame structure:
//
//	<VT>...HL7 Message Data...<FS><CR>
//	 |                        |   |
//	 0x0B                   0x1C 0x0D
//
// # Server Usage
//
// Create an MLLP server to receive HL7 messages:
//
//	// Define message handler
//	handler := mllp.HandlerFunc(func(ctx context.Context, msg *hl7.Message) (*hl7.Message, error) {
//	    log.Printf("Received: %s", msg.Type())
//	    return ack.NewBuilder().Accept(msg)
//	})
//
//	server := mllp.NewServer(mllp.WithHandler(handler))
//
//	listener, err := net.Listen("tcp", ":2575")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(server.Serve(listener))
//
// Server with options:
//
//	server := mllp.NewServer(
//	    mllp.WithHandler(handler),
//	    mllp.WithMaxConnections(100),
//	    mllp.WithReadTimeout(30*time.Second),
//	    mllp.WithWriteTimeout(30*time.Second),
//	    mllp.WithTLSConfig(tlsConfig),
//	)
//
// # Client Usage
//
// Create an MLLP client to send HL7 messages:
//
//	// Connect to server
//	client, err := mllp.Dial("localhost:2575")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Send message and receive ACK
//	ackMsg, err := client.Send(ctx, msg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Check acknowledgment
//	ackCode, _ := ackMsg.Get("MSA.1")
//	if ackCode != "AA" {
//	    log.Printf("Message not accepted: %s", ackCode)
//	}
//
// Client with options:
//
//	client, err := mllp.NewClient("localhost:2575",
//	    mllp.WithTimeout(10*time.Second),
//	    mllp.WithRetry(3, time.Second),
//	    mllp.WithTLS(tlsConfig),
//	)
//
// Fire-and-forget sends that don't wait for an ACK use SendAsync:
//
//	if err := client.SendAsync(ctx, msg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Reading and Writing Frames
//
// For low-level control, use the Reader and Writer types directly:
//
// Reading MLLP frames:
//
//	reader := mllp.NewReader(conn, mllp.MaxMessageSize)
//	for {
//	    data, err := reader.ReadMessage()
//	    if err != nil {
//	        if errors.Is(err, io.EOF) {
//	            break
//	        }
//	        log.Fatal(err)
//	    }
//	    // data contains the unwrapped HL7 message
//	    msg, _ := parser.Parse(data)
//	}
//
// Writing MLLP frames:
//
//	writer := mllp.NewWriter(conn)
//	if err := writer.WriteMessage(hl7Data); err != nil {
//	    log.Fatal(err)
//	}
//
// Frame and Unframe operate on a single buffer without an underlying
// connection, useful for tests or non-streaming transports:
//
//	framed := mllp.Frame(hl7Data)
//	raw, err := mllp.Unframe(framed)
//
// # Error Handling
//
// MLLP operations return sentinel errors for protocol-level failures:
//
//	_, err := client.Send(ctx, msg)
//	switch {
//	case errors.Is(err, mllp.ErrConnectionClosed):
//	    // reconnect and retry
//	case errors.Is(err, mllp.ErrMessageTooLarge):
//	    // reject, message exceeded the configured max size
//	default:
//	    log.Printf("send failed: %v", err)
//	}
//
// # TLS Support
//
// Enable TLS for secure connections:
//
// Server:
//
//	cert, _ := tls.LoadX509KeyPair("server.crt", "server.key")
//	tlsConfig := &tls.Config{
//	    Certificates: []tls.Certificate{cert},
//	    MinVersion:   tls.VersionTLS12,
//	}
//
//	server := mllp.NewServer(
//	    mllp.WithHandler(handler),
//	    mllp.WithTLSConfig(tlsConfig),
//	)
//
// Client:
//
//	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
//	client, _ := mllp.NewClient("localhost:2575", mllp.WithTLS(tlsConfig))
//
// # Graceful Shutdown
//
// Properly shutdown server connections:
//
//	server := mllp.NewServer(mllp.WithHandler(handler))
//	listener, _ := net.Listen("tcp", ":2575")
//
//	go func() {
//	    if err := server.Serve(listener); err != nil && !errors.Is(err, mllp.ErrServerClosed) {
//	        log.Printf("server stopped: %v", err)
//	    }
//	}()
//
//	sigCh := make(chan os.Signal, 1)
//	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
//	<-sigCh
//
//	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	if err := server.Shutdown(shutdownCtx); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Example: Complete MLLP Service
//
//	func main() {
//	    parser := parse.New()
//	    builder := ack.NewBuilder()
//	    validator := validate.NewWithRuleSet(validate.ADTRules())
//
//	    handler := mllp.HandlerFunc(func(_ context.Context, msg *hl7.Message) (*hl7.Message, error) {
//	        log.Printf("Received %s", msg.Type())
//
//	        if result := validator.Validate(msg); !result.Valid() {
//	            return builder.Reject(msg, result.Errors()[0].Error())
//	        }
//
//	        switch msg.Type() + "^" + msg.TriggerEvent() {
//	        case "ADT^A01":
//	            if err := handleAdmit(msg); err != nil {
//	                return builder.Error(msg, err)
//	            }
//	        default:
//	            return builder.Reject(msg, "unsupported message type")
//	        }
//
//	        return builder.Accept(msg)
//	    })
//
//	    server := mllp.NewServer(
//	        mllp.WithHandler(handler),
//	        mllp.WithReadTimeout(60*time.Second),
//	        mllp.WithWriteTimeout(30*time.Second),
//	    )
//
//	    listener, err := net.Listen("tcp", ":2575")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    log.Println("Starting MLLP server on :2575")
//	    log.Fatal(server.Serve(listener))
//	}
//
// # Constants
//
// MLLP framing constants are exported for custom implementations:
//
//	mllp.StartBlock      // 0x0B - vertical tab
//	mllp.EndBlock        // 0x1C - file separator
//	mllp.CarriageReturn  // 0x0D - carriage return
package mllp
