package fields

// Ref points at another record, such as the person behind an author entry.
type Ref struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Row is one repeater row keyed by sub field key.
type Row map[string]string

// Value is what a field holds. Only the member matching the field type is set:
// Text for scalar fields, Refs for relationships, Rows for repeaters.
type Value struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Refs []Ref  `json:"refs,omitempty" yaml:"refs,omitempty"`
	Rows []Row  `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Text wraps a scalar value.
func Text(s string) Value { return Value{Text: s} }

// Empty reports whether the value holds nothing.
func (v Value) Empty() bool {
	return v.Text == "" && len(v.Refs) == 0 && len(v.Rows) == 0
}

// Values maps field keys to values for one record.
type Values map[string]Value

// Text returns the scalar value stored under key, or "".
func (vs Values) Text(key string) string {
	return vs[key].Text
}
