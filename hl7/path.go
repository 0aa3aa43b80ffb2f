package hl7

// resolve descends from msg following loc. Repetition defaults to the first
// instance (index 0) whenever a field is addressed, since most fields don't
// repeat; an omitted field, component, or subcomponent simply stops the
// descent at its ancestor rather than erroring.
func resolve(msg *Message, loc *Location) (Element, bool) {
	segIdx := loc.SegmentIndex
	if segIdx < 0 {
		segIdx = 0
	}
	segs := msg.Segments(loc.Segment)
	if segIdx >= len(segs) {
		return nil, false
	}
	var cur Element = segs[segIdx]
	if !loc.HasField() {
		return cur, true
	}
	cur = cur.Child(loc.Field)

	rep := loc.Repetition
	if rep < 0 {
		rep = 0
	}
	cur = cur.Child(rep + 1)
	if !loc.HasComponent() {
		return cur, true
	}
	cur = cur.Child(loc.Component)
	if !loc.HasSubComponent() {
		return cur, true
	}
	return cur.Child(loc.SubComponent), true
}

// GetAt returns the string value addressed by loc, or "" if loc's segment
// does not exist.
func (m *Message) GetAt(loc *Location) (string, error) {
	if !loc.IsValid() {
		return "", &LocationError{Location: loc.String(), Reason: "invalid location"}
	}
	el, ok := resolve(m, loc)
	if !ok {
		return "", nil
	}
	return el.Value(), nil
}

// SetAt writes value at the location addressed by loc, appending segments
// and padding intermediate fields/components as needed to materialize it.
func (m *Message) SetAt(loc *Location, value string) error {
	if !loc.IsValid() {
		return &LocationError{Location: loc.String(), Reason: "invalid location"}
	}

	segIdx := loc.SegmentIndex
	if segIdx < 0 {
		segIdx = 0
	}
	segs := m.Segments(loc.Segment)
	for len(segs) <= segIdx {
		if _, err := m.AddSegment(loc.Segment); err != nil {
			return err
		}
		segs = m.Segments(loc.Segment)
	}
	seg := segs[segIdx]

	if !loc.HasField() {
		return seg.SetValue(value)
	}
	cur := seg.Child(loc.Field)

	rep := loc.Repetition
	if rep < 0 {
		rep = 0
	}
	cur = cur.Child(rep + 1)
	if !loc.HasComponent() {
		return cur.SetValue(value)
	}
	cur = cur.Child(loc.Component)
	if !loc.HasSubComponent() {
		return cur.SetValue(value)
	}
	return cur.Child(loc.SubComponent).SetValue(value)
}

// Get parses s as a Location and returns the addressed string value.
func (m *Message) Get(s string) (string, error) {
	loc, err := ParseLocation(s)
	if err != nil {
		return "", err
	}
	return m.GetAt(loc)
}

// Set parses s as a Location and writes value at the addressed position.
func (m *Message) Set(s string, value string) error {
	loc, err := ParseLocation(s)
	if err != nil {
		return err
	}
	return m.SetAt(loc, value)
}

// GetAllAt returns the value of every repetition of the field addressed by
// loc (ignoring loc.Repetition), or every matching segment's own value if
// loc has no field.
func (m *Message) GetAllAt(loc *Location) ([]string, error) {
	if !loc.IsValid() {
		return nil, &LocationError{Location: loc.String(), Reason: "invalid location"}
	}
	segs := m.Segments(loc.Segment)
	if !loc.HasField() {
		out := make([]string, len(segs))
		for i, s := range segs {
			out[i] = s.Value()
		}
		return out, nil
	}

	segIdx := loc.SegmentIndex
	if segIdx < 0 {
		segIdx = 0
	}
	if segIdx >= len(segs) {
		return nil, nil
	}
	field := segs[segIdx].Child(loc.Field)
	n := field.DescendantCount()
	out := make([]string, n)
	for i := 1; i <= n; i++ {
		out[i-1] = field.Child(i).Value()
	}
	return out, nil
}

// GetAll parses s as a Location and returns GetAllAt's result.
func (m *Message) GetAll(s string) ([]string, error) {
	loc, err := ParseLocation(s)
	if err != nil {
		return nil, err
	}
	return m.GetAllAt(loc)
}
