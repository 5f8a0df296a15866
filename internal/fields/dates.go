package fields

import (
	"strings"
	"time"
)

// StoredDateLayout is how date_picker values are persisted (PHP "Ymd").
const StoredDateLayout = "20060102"

var phpDateLetters = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'n': "1",
	'd': "02",
	'j': "2",
	'M': "Jan",
	'F': "January",
	'D': "Mon",
	'l': "Monday",
}

// FormatDate renders a stored Ymd value using a PHP-style date format such as
// "M, Y". Values that are not Ymd dates are returned as stored.
func FormatDate(stored, format string) string {
	if stored == "" || format == "" {
		return stored
	}
	t, err := time.Parse(StoredDateLayout, stored)
	if err != nil {
		return stored
	}

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == '\\' && i+1 < len(format) {
			i++
			b.WriteByte(format[i])
			continue
		}
		if layout, ok := phpDateLetters[c]; ok {
			b.WriteString(t.Format(layout))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Format returns v as the field hands it to readers. Only date pickers change.
func (f Field) Format(v Value) Value {
	if f.Type != TypeDatePicker {
		return v
	}
	return Value{Text: FormatDate(v.Text, f.ReturnFormat)}
}
