package device

// Snapshot is an immutable, fully-formed device inventory. Once published to
// the consumer it is never modified; consumers may retain it safely across
// refreshes.
type Snapshot struct {
	Outputs []*Descriptor
	Inputs  []*Descriptor

	// DefaultOutput and DefaultInput index into the respective list,
	// or -1 when no default device was identified.
	DefaultOutput int
	DefaultInput  int
}

// NewSnapshot returns an empty snapshot with no defaults selected.
func NewSnapshot() *Snapshot {
	return &Snapshot{DefaultOutput: -1, DefaultInput: -1}
}

// Len returns the total descriptor count across both lists.
func (s *Snapshot) Len() int {
	return len(s.Outputs) + len(s.Inputs)
}

// append adds d to the list matching its purpose. When markDefault is set the
// list's default index becomes the position d is appended at.
func (s *Snapshot) append(d *Descriptor, markDefault bool) {
	list, def := &s.Outputs, &s.DefaultOutput
	if d.Purpose == Input {
		list, def = &s.Inputs, &s.DefaultInput
	}
	if markDefault {
		*def = len(*list)
	}
	*list = append(*list, d)
}
