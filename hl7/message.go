package hl7

import "strings"

// Message is the root of the element tree: one HL7 message, dividing its
// buffer into Segments on the segment terminator. New is the only way to
// construct one; it enforces the input text contract (non-empty, long
// enough to carry an MSH header, and starting with the segment identifier
// "MSH") before any buffer is built.
type Message struct {
	element
	delims *Delimiters
}

func newMessage(root Divider, delims *Delimiters) *Message {
	m := &Message{delims: delims}
	m.element = element{
		divider: root,
		key:     "",
		selfRef: m,
		belowDiv: func(d Divider, idx int) Divider {
			return d.Child(idx, delims.Field)
		},
		newChild: func(childDiv Divider, anc Element, k string) Element {
			return newSegment(childDiv, anc, k, delims)
		},
		newDetach: func(r Divider) Element { return newMessage(r, delims) },
	}
	return m
}

// New parses data into a Message. It returns a *ConstructionError, wrapping
// one of ErrMessageDataNil, ErrMessageTooShort, or ErrMessageMustStartWithMSH,
// if data fails the input contract.
func New(data string) (*Message, error) {
	return NewWithOptions(data, nil, SegmentTerminator)
}

// NewWithOptions parses data into a Message the same way New does, but lets
// a caller override delimiter detection and the segment terminator. Passing
// a nil delims auto-detects from MSH, same as New.
func NewWithOptions(data string, delims *Delimiters, segTerm rune) (*Message, error) {
	if data == "" {
		return nil, &ConstructionError{Code: ErrMessageDataNil, Data: data}
	}
	if len(data) < minMSHLength {
		return nil, &ConstructionError{Code: ErrMessageTooShort, Data: data}
	}
	if !strings.HasPrefix(data, "MSH") {
		return nil, &ConstructionError{Code: ErrMessageMustStartWithMSH, Data: data}
	}

	clean := data
	if segTerm == SegmentTerminator {
		clean = SanitizeLineEndings(data)
	}
	clean = strings.TrimRight(clean, string(segTerm))
	if delims == nil {
		var err error
		delims, err = ParseDelimiters([]byte(clean))
		if err != nil {
			return nil, &ConstructionError{Code: ErrMessageMustStartWithMSH, Data: data}
		}
	}

	root := newRootDivider(clean, segTerm)
	return newMessage(root, delims), nil
}

// Delimiters returns the delimiter set this message was parsed with.
func (m *Message) Delimiters() *Delimiters { return m.delims }

// Bytes returns the message's current encoded text.
func (m *Message) Bytes() []byte { return []byte(m.Value()) }

// segmentChild asserts the element at one-based index i to *Segment; every
// child of a Message is built by newSegment, so this never fails.
func (m *Message) segmentChild(i int) *Segment { return m.Child(i).(*Segment) }

// SegmentAt returns the segment at the one-based index i, materializing a
// detached placeholder if i is past the current segment count.
func (m *Message) SegmentAt(i int) *Segment { return m.segmentChild(i) }

// Segment returns the first segment named name, case-insensitively.
func (m *Message) Segment(name string) (*Segment, bool) {
	name = strings.ToUpper(name)
	n := m.DescendantCount()
	for i := 1; i <= n; i++ {
		seg := m.segmentChild(i)
		if seg.Name() == name {
			return seg, true
		}
	}
	return nil, false
}

// Segments returns every segment named name, in message order.
func (m *Message) Segments(name string) []*Segment {
	name = strings.ToUpper(name)
	n := m.DescendantCount()
	out := make([]*Segment, 0, n)
	for i := 1; i <= n; i++ {
		seg := m.segmentChild(i)
		if seg.Name() == name {
			out = append(out, seg)
		}
	}
	return out
}

// AllSegments returns every segment in the message, in order.
func (m *Message) AllSegments() []*Segment {
	n := m.DescendantCount()
	out := make([]*Segment, n)
	for i := 1; i <= n; i++ {
		out[i-1] = m.segmentChild(i)
	}
	return out
}

// AddSegment appends a new segment named name and returns it.
func (m *Message) AddSegment(name string) (*Segment, error) {
	n := m.DescendantCount()
	seg := m.segmentChild(n + 1)
	if err := seg.SetValue(strings.ToUpper(name)); err != nil {
		return nil, err
	}
	return m.segmentChild(n + 1), nil
}

// InsertSegment inserts a new segment named name before the one-based index
// i, shifting i and every later segment down by one, and returns it.
func (m *Message) InsertSegment(i int, name string) (*Segment, error) {
	root := m.divider
	n := root.Count()
	vals := make([]string, 0, n+1)
	inserted := false
	for idx := 0; idx < n; idx++ {
		if idx == i-1 {
			vals = append(vals, strings.ToUpper(name))
			inserted = true
		}
		v, _ := root.Get(idx)
		vals = append(vals, v)
	}
	if !inserted {
		vals = append(vals, strings.ToUpper(name))
	}
	if err := root.SetValue(strings.Join(vals, string(root.Delimiter()))); err != nil {
		return nil, err
	}
	return m.segmentChild(i), nil
}

// RemoveSegment deletes the segment at the one-based index i.
func (m *Message) RemoveSegment(i int) error { return m.Child(i).Delete() }

// mshField is the shortcut every typed MSH accessor below uses; it assumes
// New already guaranteed an MSH segment exists.
func (m *Message) mshField(n int) Element {
	seg, ok := m.Segment("MSH")
	if !ok {
		return newHeaderField(nil, "MSH", m.delims)
	}
	return seg.Child(n)
}

// Type returns MSH-9's message type component (e.g. "ADT").
func (m *Message) Type() string { return m.mshField(9).Child(1).Child(1).Value() }

// TriggerEvent returns MSH-9's trigger event component (e.g. "A01").
func (m *Message) TriggerEvent() string { return m.mshField(9).Child(1).Child(2).Value() }

// ControlID returns MSH-10, the message control ID.
func (m *Message) ControlID() string { return m.mshField(10).Value() }

// ProcessingID returns MSH-11.
func (m *Message) ProcessingID() string { return m.mshField(11).Value() }

// VersionID returns MSH-12, the HL7 version this message declares.
func (m *Message) VersionID() string { return m.mshField(12).Value() }

// Security returns MSH-8.
func (m *Message) Security() string { return m.mshField(8).Value() }

// Sender returns MSH-3, the sending application.
func (m *Message) Sender() string { return m.mshField(3).Value() }

// Receiver returns MSH-5, the receiving application.
func (m *Message) Receiver() string { return m.mshField(5).Value() }

// Timestamp returns MSH-7, the message date/time.
func (m *Message) Timestamp() string { return m.mshField(7).Value() }

// Escape applies this message's delimiters to escape v.
func (m *Message) Escape(v string) string { return EscapeString(v, m.delims) }

// Unescape applies this message's delimiters to unescape v.
func (m *Message) Unescape(v string) string { return UnescapeString(v, m.delims) }

// Clone returns a detached copy of the message with its own buffer.
func (m *Message) Clone() *Message {
	root := newRootDivider(m.Value(), m.divider.Delimiter())
	return newMessage(root, m.delims)
}

// Validate checks the structural invariants New already enforced, for
// callers holding a Message assembled some other way (e.g. via Clone). It
// does not check per-segment field-count or content rules; that is the
// validate package's job.
func (m *Message) Validate() error {
	if _, ok := m.Segment("MSH"); !ok {
		return ErrMissingMSH
	}
	if m.DescendantCount() == 0 {
		return ErrEmptyMessage
	}
	return nil
}
