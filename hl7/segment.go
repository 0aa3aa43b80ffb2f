package hl7

import "strings"

// fieldsView is a Divider over a segment's field-addressable text: the
// segment's raw value with its (up to three-character) identifier, and the
// field separator immediately following it if present, stripped off. It
// implements Divider directly so Field dividers can be built with the usual
// Child(idx, delim) call, and so writes recompute the identifier prefix
// fresh rather than assuming it never moves.
type fieldsView struct {
	raw        Divider
	fieldDelim rune
	cache      divCache
	observers  []func(string)
}

func newFieldsView(raw Divider, fieldDelim rune) *fieldsView {
	return &fieldsView{raw: raw, fieldDelim: fieldDelim}
}

func (f *fieldsView) identifierLen() int {
	n := len(f.raw.Value())
	if n > 3 {
		return 3
	}
	return n
}

func (f *fieldsView) remainder() string {
	v := f.raw.Value()
	rest := v[f.identifierLen():]
	if len(rest) > 0 && rune(rest[0]) == f.fieldDelim {
		rest = rest[1:]
	}
	return rest
}

func (f *fieldsView) writeRemainder(v string) error {
	raw := f.raw.Value()
	identLen := f.identifierLen()
	prefix := raw[:identLen]
	sep := ""
	if identLen == 3 {
		sep = string(f.fieldDelim)
	}
	return f.raw.SetValue(prefix + sep + v)
}

func (f *fieldsView) Delimiter() rune { return f.fieldDelim }
func (f *fieldsView) Value() string   { return f.remainder() }
func (f *fieldsView) Version() int    { return f.raw.Version() }
func (f *fieldsView) Index() int      { return 0 }
func (f *fieldsView) ParentDivider() Divider { return f.raw }

func (f *fieldsView) SetValue(v string) error {
	if err := f.writeRemainder(v); err != nil {
		return err
	}
	f.fire(v)
	return nil
}

func (f *fieldsView) refresh() []StringDivision {
	if f.cache.divisions == nil || f.cache.stamp != f.raw.Version() {
		f.cache.divisions = divide(f.remainder(), f.fieldDelim)
		f.cache.stamp = f.raw.Version()
	}
	return f.cache.divisions
}

func (f *fieldsView) Divisions() []StringDivision { return f.refresh() }
func (f *fieldsView) Count() int                  { return len(f.refresh()) }

func (f *fieldsView) Get(i int) (string, bool) {
	divs := f.refresh()
	if i < 0 || i >= len(divs) {
		return "", false
	}
	val := f.remainder()
	d := divs[i]
	return val[d.Offset : d.Offset+d.Length], true
}

func (f *fieldsView) Set(i int, v string) error {
	if i < 0 {
		return nil
	}
	cur := f.remainder()
	pad, divs := padded(cur, i, f.fieldDelim)
	newVal := pad
	if i < len(divs) {
		d := divs[i]
		newVal = splice(pad, d.Offset, d.Length, v)
	}
	if err := f.writeRemainder(newVal); err != nil {
		return err
	}
	f.fire(v)
	return nil
}

func (f *fieldsView) Child(i int, delim rune) Divider {
	return newSubDivider(f, i, delim)
}

func (f *fieldsView) OnChange(fn func(string)) { f.observers = append(f.observers, fn) }

func (f *fieldsView) fire(v string) {
	for _, fn := range f.observers {
		fn(v)
	}
}

// Segment is one line of a message, addressed below the Message and
// dividing its field-addressable remainder into Fields on the field
// delimiter. MSH is special: field 1 is the field separator character
// itself (synthetic, read-only), so fields 2..n address remainder slots
// 0..n-2 rather than 0..n-1.
type Segment struct {
	element
	raw    Divider
	fields *fieldsView
	delims *Delimiters
}

func newSegment(div Divider, ancestor Element, key string, delims *Delimiters) *Segment {
	s := &Segment{raw: div, delims: delims}
	s.fields = newFieldsView(div, delims.Field)
	s.element = element{
		divider:  div,
		ancestor: ancestor,
		key:      key,
		selfRef:  s,
		newDetach: func(root Divider) Element {
			return newSegment(root, nil, "SEG", delims)
		},
	}
	return s
}

// NewSegment builds a standalone Segment from raw segment text, detached
// from any Message. Useful for encoding a segment value on its own, e.g.
// when a caller builds one from typed fields before appending it.
func NewSegment(data string, delims *Delimiters) *Segment {
	if delims == nil {
		delims = DefaultDelimiters()
	}
	root := newRootDivider(data, delims.Field)
	return newSegment(root, nil, "SEG", delims)
}

// Name returns the segment's (up to three-character) identifier, e.g. "MSH",
// "PID", "OBX".
func (s *Segment) Name() string {
	v := s.raw.Value()
	n := len(v)
	if n > 3 {
		n = 3
	}
	return strings.ToUpper(v[:n])
}

// Field returns the field at the one-based sequence number seq.
func (s *Segment) Field(seq int) Element { return s.Child(seq) }

func (s *Segment) Child(i int) Element {
	if s.Name() == "MSH" {
		if i == 1 {
			return newHeaderField(s.selfRef, childKey(s.key, 0), s.delims)
		}
		idx := i - 2
		fieldDiv := s.fields.Child(idx, s.delims.Repetition)
		return newField(fieldDiv, s.selfRef, childKey(s.key, i-1), s.delims, i)
	}
	idx := i - 1
	fieldDiv := s.fields.Child(idx, s.delims.Repetition)
	return newField(fieldDiv, s.selfRef, childKey(s.key, i-1), s.delims, i)
}

func (s *Segment) DescendantCount() int {
	if s.Name() == "MSH" {
		return 1 + s.fields.Count()
	}
	return s.fields.Count()
}

func (s *Segment) Values() []string {
	n := s.DescendantCount()
	out := make([]string, n)
	for i := 1; i <= n; i++ {
		out[i-1] = s.Child(i).Value()
	}
	return out
}

func (s *Segment) SetValues(vs []string) error {
	for i, v := range vs {
		if err := s.Child(i + 1).SetValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Segment) DescendantElements() []Element {
	n := s.DescendantCount()
	out := make([]Element, n)
	for i := 1; i <= n; i++ {
		out[i-1] = s.Child(i)
	}
	return out
}

func (s *Segment) HasSignificantDescendants() bool {
	if s.DescendantCount() > 1 {
		return true
	}
	for _, v := range s.Values() {
		if v != "" {
			return true
		}
	}
	return false
}
