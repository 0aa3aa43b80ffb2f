package hl7

// FieldRepetition is one repeated instance of a Field's value, addressed
// below a Field and dividing its value into Components on the component
// delimiter.
type FieldRepetition struct {
	element
	delims *Delimiters
}

func newFieldRepetition(div Divider, ancestor Element, key string, delims *Delimiters) *FieldRepetition {
	r := &FieldRepetition{delims: delims}
	r.element = element{
		divider:  div,
		ancestor: ancestor,
		key:      key,
		selfRef:  r,
		belowDiv: func(d Divider, i int) Divider { return d.Child(i, delims.SubComponent) },
		newChild: func(childDiv Divider, anc Element, k string) Element {
			return newComponent(childDiv, anc, k, delims)
		},
		newDetach: func(root Divider) Element {
			return newFieldRepetition(root, nil, "REP", delims)
		},
	}
	return r
}

// Component returns the component at the one-based index i.
func (r *FieldRepetition) Component(i int) Element { return r.Child(i) }
