package hl7

// Field is a segment's field, addressed below a Segment and dividing its
// value into FieldRepetitions on the repetition delimiter.
type Field struct {
	element
	delims *Delimiters
	seq    int
}

func newField(div Divider, ancestor Element, key string, delims *Delimiters, seq int) *Field {
	f := &Field{delims: delims, seq: seq}
	f.element = element{
		divider:  div,
		ancestor: ancestor,
		key:      key,
		selfRef:  f,
		belowDiv: func(d Divider, i int) Divider { return d.Child(i, delims.Component) },
		newChild: func(childDiv Divider, anc Element, k string) Element {
			return newFieldRepetition(childDiv, anc, k, delims)
		},
		newDetach: func(root Divider) Element {
			return newField(root, nil, "FLD", delims, 0)
		},
	}
	return f
}

// SeqNum is the field's one-based position within its segment.
func (f *Field) SeqNum() int { return f.seq }

// Repetition returns the repetition at the one-based index i.
func (f *Field) Repetition(i int) Element { return f.Child(i) }

// Component returns the component at the one-based index i from the first
// repetition, a common shortcut for non-repeating fields.
func (f *Field) Component(i int) Element { return f.Child(1).Child(i) }
