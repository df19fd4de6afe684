package extract

import (
	"encoding/json"
	"sort"
)

// Value is a record entry: either free text or a proficiency flag.
type Value struct {
	text   string
	flag   bool
	isFlag bool
}

// Text wraps a string value.
func Text(s string) Value { return Value{text: s} }

// Flag wraps a boolean proficiency flag.
func Flag(b bool) Value { return Value{flag: b, isFlag: true} }

// IsFlag reports whether the value is a boolean flag.
func (v Value) IsFlag() bool { return v.isFlag }

// String renders flags the way spreadsheets do.
func (v Value) String() string {
	if !v.isFlag {
		return v.text
	}
	if v.flag {
		return "TRUE"
	}
	return "FALSE"
}

// Interface returns the underlying string or bool.
func (v Value) Interface() any {
	if v.isFlag {
		return v.flag
	}
	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Record maps field names to extracted values. It is built up stage by stage
// and written out once.
type Record map[string]Value

// Text returns a text field.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v.isFlag {
		return "", false
	}
	return v.text, true
}

// Flag returns a flag field.
func (r Record) Flag(field string) (bool, bool) {
	v, ok := r[field]
	if !ok || !v.isFlag {
		return false, false
	}
	return v.flag, true
}

// Fields returns the populated field names in sorted order.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
