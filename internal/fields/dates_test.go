package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		stored string
		format string
		want   string
	}{
		{"20200601", "M, Y", "Jun, 2020"},
		{"19990315", "Y", "1999"},
		{"20210704", "F j, Y", "July 4, 2021"},
		{"20210704", "d/m/y", "04/07/21"},
		{"20210704", `\Y Y`, "Y 2021"},
		{"Jun, 2020", "M, Y", "Jun, 2020"},
		{"", "Y", ""},
		{"20200601", "", "20200601"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.stored, tt.format), "%s with %q", tt.stored, tt.format)
	}
}

func TestField_Format(t *testing.T) {
	year := Field{Type: TypeDatePicker, ReturnFormat: "Y"}
	text := Field{Type: TypeText}

	assert.Equal(t, Text("2020"), year.Format(Text("20200601")))
	assert.Equal(t, Text("20200601"), text.Format(Text("20200601")))
}
