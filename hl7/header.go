package hl7

// HeaderField is MSH-1, the field separator character itself. It has no
// division slot of its own: the character is read from the message's
// Delimiters (their Field separator) and cannot be changed without
// re-encoding the whole segment, so writes are rejected.
type HeaderField struct {
	ancestor Element
	key      string
	delims   *Delimiters
}

func newHeaderField(ancestor Element, key string, delims *Delimiters) *HeaderField {
	return &HeaderField{ancestor: ancestor, key: key, delims: delims}
}

func (h *HeaderField) Value() string          { return string(h.delims.Field) }
func (h *HeaderField) SetValue(string) error  { return ErrHeaderFieldReadOnly }
func (h *HeaderField) Key() string            { return h.key }
func (h *HeaderField) Ancestor() Element       { return h.ancestor }
func (h *HeaderField) DescendantCount() int    { return 1 }
func (h *HeaderField) Values() []string        { return []string{h.Value()} }
func (h *HeaderField) SetValues([]string) error { return ErrHeaderFieldReadOnly }

func (h *HeaderField) Child(int) Element {
	return newHeaderField(h.ancestorSelf(), childKey(h.key, 0), h.delims)
}

func (h *HeaderField) ancestorSelf() Element { return h }

func (h *HeaderField) DescendantElements() []Element { return []Element{h.Child(1)} }
func (h *HeaderField) HasSignificantDescendants() bool { return true }

func (h *HeaderField) CloneDetached() Element {
	return newHeaderField(nil, "MSH1", h.delims)
}

func (h *HeaderField) Delete() error { return ErrHeaderFieldReadOnly }
func (h *HeaderField) Erase() error  { return ErrHeaderFieldReadOnly }
