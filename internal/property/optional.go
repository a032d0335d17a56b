package property

import "encoding/json"

// Optional is a string value that is either present or absent.
// An empty string can be present; absence is tracked separately.
type Optional struct {
	value   string
	present bool
}

// Some returns a present value.
func Some(v string) Optional {
	return Optional{value: v, present: true}
}

// None returns an absent value.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) {
	return o.value, o.present
}

// IsPresent reports whether the value is present.
func (o Optional) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or def when absent.
func (o Optional) OrElse(def string) string {
	if !o.present {
		return def
	}
	return o.value
}

// String returns the value, or "" when absent.
func (o Optional) String() string {
	return o.value
}

// MarshalJSON encodes an absent value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
