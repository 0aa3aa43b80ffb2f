package hl7

// Subcomponent is the finest-grained addressable leaf in the element tree.
// It has no delimiter of its own to subdivide on, so Child degenerates:
// index 1 passes through to the same value, anything else reads as an empty
// placeholder until written.
type Subcomponent struct {
	element
}

func newSubcomponent(div Divider, ancestor Element, key string) *Subcomponent {
	sc := &Subcomponent{}
	sc.element = element{
		divider:  div,
		ancestor: ancestor,
		key:      key,
		selfRef:  sc,
		belowDiv: func(d Divider, i int) Divider { return d.Child(i, 0) },
		newChild: func(childDiv Divider, anc Element, k string) Element {
			return newSubcomponent(childDiv, anc, k)
		},
		newDetach: func(root Divider) Element {
			return newSubcomponent(root, nil, "SUB")
		},
	}
	return sc
}
