package fields

// Type is the kind of input a field collects.
type Type string

const (
	TypeText         Type = "text"
	TypeURL          Type = "url"
	TypeDatePicker   Type = "date_picker"
	TypeRadio        Type = "radio"
	TypeRelationship Type = "relationship"
	TypeRepeater     Type = "repeater"
)

// Choice is one option of a radio field. Choices keep their declared order.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Rule compares the value of another field.
type Rule struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Conditional logic operators.
const (
	OpEqual    = "=="
	OpNotEqual = "!="
	OpEmpty    = "==empty"
	OpNotEmpty = "!=empty"
)

// Logic is an OR of AND-groups. A nil Logic means the field is always shown.
type Logic [][]Rule

// Field is a single field definition.
type Field struct {
	Key              string   `json:"key" yaml:"key"`
	Label            string   `json:"label" yaml:"label"`
	Name             string   `json:"name" yaml:"name"`
	Type             Type     `json:"type" yaml:"type"`
	Instructions     string   `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Required         bool     `json:"required" yaml:"required"`
	Choices          []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	AllowNull        bool     `json:"allow_null,omitempty" yaml:"allow_null,omitempty"`
	DefaultValue     string   `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Layout           string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	DisplayFormat    string   `json:"display_format,omitempty" yaml:"display_format,omitempty"`
	ReturnFormat     string   `json:"return_format,omitempty" yaml:"return_format,omitempty"`
	FirstDay         int      `json:"first_day,omitempty" yaml:"first_day,omitempty"`
	PostTypes        []string `json:"post_type,omitempty" yaml:"post_type,omitempty"`
	Filters          []string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Min              int      `json:"min,omitempty" yaml:"min,omitempty"`
	Max              int      `json:"max,omitempty" yaml:"max,omitempty"`
	SubFields        []Field  `json:"sub_fields,omitempty" yaml:"sub_fields,omitempty"`
	ConditionalLogic Logic    `json:"conditional_logic,omitempty" yaml:"conditional_logic,omitempty"`
}

// LocationRule selects the screens a field group is attached to.
type LocationRule struct {
	Param    string `json:"param" yaml:"param"`
	Operator string `json:"operator" yaml:"operator"`
	Value    string `json:"value" yaml:"value"`
}

// Group is a named set of fields attached to one or more locations.
type Group struct {
	Key      string           `json:"key" yaml:"key"`
	Title    string           `json:"title" yaml:"title"`
	Fields   []Field          `json:"fields" yaml:"fields"`
	Location [][]LocationRule `json:"location" yaml:"location"`
}

// Field returns the definition stored under key.
func (g Group) Field(key string) (Field, bool) {
	for _, f := range g.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// AppliesTo reports whether the group is attached to the given post type.
func (g Group) AppliesTo(postType string) bool {
	for _, and := range g.Location {
		ok := len(and) > 0
		for _, r := range and {
			if r.Param != "post_type" {
				ok = false
				break
			}
			switch r.Operator {
			case OpEqual:
				ok = ok && r.Value == postType
			case OpNotEqual:
				ok = ok && r.Value != postType
			default:
				ok = false
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// ChoiceValues lists the stored values of a radio field in order.
func (f Field) ChoiceValues() []string {
	out := make([]string, 0, len(f.Choices))
	for _, c := range f.Choices {
		out = append(out, c.Value)
	}
	return out
}
