package fields

// Match evaluates a single rule against values.
func (r Rule) Match(values Values) bool {
	v := values[r.Field]
	switch r.Operator {
	case OpEqual:
		return v.Text == r.Value
	case OpNotEqual:
		return v.Text != r.Value
	case OpEmpty:
		return v.Empty()
	case OpNotEmpty:
		return !v.Empty()
	default:
		return false
	}
}

// Visible reports whether the logic shows its field for values.
func (l Logic) Visible(values Values) bool {
	if len(l) == 0 {
		return true
	}
	for _, and := range l {
		if len(and) == 0 {
			continue
		}
		ok := true
		for _, r := range and {
			if !r.Match(values) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// WithDefaults returns a copy of values where empty radio fields carry their
// default value.
func (g Group) WithDefaults(values Values) Values {
	out := make(Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, f := range g.Fields {
		if f.Type != TypeRadio || f.DefaultValue == "" {
			continue
		}
		if out[f.Key].Empty() {
			out[f.Key] = Text(f.DefaultValue)
		}
	}
	return out
}

// Visible returns the values of fields shown for the record, with defaults
// applied. Values of hidden or unknown fields are dropped.
func (g Group) Visible(values Values) Values {
	withDefaults := g.WithDefaults(values)
	out := make(Values)
	for _, f := range g.Fields {
		if !f.ConditionalLogic.Visible(withDefaults) {
			continue
		}
		if v, ok := withDefaults[f.Key]; ok {
			out[f.Key] = v
		}
	}
	return out
}
