package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// SlotKind tags the variant held by a SlotValue
type SlotKind int

const (
	SlotAbsent SlotKind = iota
	SlotString
	SlotNumber
	SlotList
)

// SlotValue is a classifier parameter: a string, a number, an ordered list
// of scalars, or absent. The zero value is absent. Accessors never panic.
type SlotValue struct {
	kind SlotKind
	str  string
	num  float64
	list []SlotValue
}

// StringSlot builds a string slot value
func StringSlot(s string) SlotValue {
	return SlotValue{kind: SlotString, str: s}
}

// NumberSlot builds a numeric slot value
func NumberSlot(n float64) SlotValue {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return SlotValue{}
	}
	return SlotValue{kind: SlotNumber, num: n}
}

// ListSlot builds a list slot value. Non-scalar elements are dropped.
func ListSlot(values ...SlotValue) SlotValue {
	scalars := make([]SlotValue, 0, len(values))
	for _, v := range values {
		if v.kind == SlotString || v.kind == SlotNumber {
			scalars = append(scalars, v)
		}
	}
	return SlotValue{kind: SlotList, list: scalars}
}

// Kind returns the variant tag
func (v SlotValue) Kind() SlotKind {
	return v.kind
}

// IsAbsent reports whether the slot carries no usable value.
// Blank strings and empty lists count as absent.
func (v SlotValue) IsAbsent() bool {
	_, ok := v.Text()
	if ok {
		return false
	}
	_, ok = v.Number()
	return !ok
}

// Text returns the slot as trimmed, non-empty text.
// Numbers are formatted without trailing zeros; lists yield their first
// element that has text.
func (v SlotValue) Text() (string, bool) {
	switch v.kind {
	case SlotString:
		s := strings.TrimSpace(v.str)
		return s, s != ""
	case SlotNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case SlotList:
		for _, elem := range v.list {
			if s, ok := elem.Text(); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Number returns the slot as a number. Only numeric values (or the first
// numeric element of a list) qualify; numeric-looking strings do not.
func (v SlotValue) Number() (float64, bool) {
	switch v.kind {
	case SlotNumber:
		return v.num, true
	case SlotList:
		for _, elem := range v.list {
			if elem.kind == SlotNumber {
				return elem.num, true
			}
		}
	}
	return 0, false
}

// Int returns the slot as an integer, accepting numbers and digit strings.
// Fractional numbers are truncated and values outside the int32 range are
// clamped to it.
func (v SlotValue) Int() (int, bool) {
	if n, ok := v.Number(); ok {
		return int(clampInt32(n)), true
	}
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		// Digit strings too long for int64
		if strings.HasPrefix(s, "-") {
			return math.MinInt32, true
		}
		return math.MaxInt32, true
	}
	return int(clampInt32(float64(n))), true
}

func clampInt32(n float64) float64 {
	return math.Max(math.MinInt32, math.Min(math.MaxInt32, n))
}

// Values returns the scalar elements of the slot, a single-element slice
// for scalars, or nil when absent.
func (v SlotValue) Values() []SlotValue {
	switch v.kind {
	case SlotString, SlotNumber:
		return []SlotValue{v}
	case SlotList:
		out := make([]SlotValue, len(v.list))
		copy(out, v.list)
		return out
	}
	return nil
}

// MarshalJSON renders the slot as plain JSON (null when absent)
func (v SlotValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case SlotString:
		return json.Marshal(v.str)
	case SlotNumber:
		return json.Marshal(v.num)
	case SlotList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts plain JSON scalars and arrays as well as the
// protobuf Struct value shape ({"stringValue": ...}, {"numberValue": ...},
// {"listValue": {"values": [...]}}). Anything else decodes as absent and
// never returns an error.
func (v *SlotValue) UnmarshalJSON(data []byte) error {
	*v = parseSlotValue(data)
	return nil
}

func parseSlotValue(data []byte) SlotValue {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return SlotValue{}
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return SlotValue{}
		}
		return StringSlot(s)
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return SlotValue{}
		}
		values := make([]SlotValue, 0, len(raws))
		for _, raw := range raws {
			values = append(values, parseSlotValue(raw))
		}
		return ListSlot(values...)
	case '{':
		return parseStructValue(data)
	case 'n', 't', 'f':
		return SlotValue{}
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return SlotValue{}
	}
	return NumberSlot(n)
}

// parseStructValue decodes the google.protobuf.Value JSON shape
func parseStructValue(data []byte) SlotValue {
	var field struct {
		StringValue *string  `json:"stringValue"`
		NumberValue *float64 `json:"numberValue"`
		ListValue   *struct {
			Values []json.RawMessage `json:"values"`
		} `json:"listValue"`
	}
	if err := json.Unmarshal(data, &field); err != nil {
		return SlotValue{}
	}

	switch {
	case field.StringValue != nil:
		return StringSlot(*field.StringValue)
	case field.NumberValue != nil:
		return NumberSlot(*field.NumberValue)
	case field.ListValue != nil:
		values := make([]SlotValue, 0, len(field.ListValue.Values))
		for _, raw := range field.ListValue.Values {
			values = append(values, parseSlotValue(raw))
		}
		return ListSlot(values...)
	}
	return SlotValue{}
}

// Slots maps slot keys to values
type Slots map[string]SlotValue

// Get returns the value for key, or an absent value. Safe on a nil map.
func (s Slots) Get(key string) SlotValue {
	if s == nil {
		return SlotValue{}
	}
	return s[key]
}

// Text is shorthand for Get(key).Text()
func (s Slots) Text(key string) (string, bool) {
	return s.Get(key).Text()
}

// ParseSlots decodes a JSON object of classifier parameters.
// Malformed input yields an empty map.
func ParseSlots(data []byte) Slots {
	slots := Slots{}
	if len(bytes.TrimSpace(data)) == 0 {
		return slots
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return slots
	}
	for key, value := range raw {
		slots[key] = parseSlotValue(value)
	}
	return slots
}
