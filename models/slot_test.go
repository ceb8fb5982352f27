package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlots_PlainJSON(t *testing.T) {
	slots := ParseSlots([]byte(`{
		"item": "milk",
		"quantity": 2,
		"brand": "",
		"tags": ["organic", 3, {"nested": true}],
		"flag": true,
		"nothing": null
	}`))

	item, ok := slots.Text("item")
	require.True(t, ok)
	assert.Equal(t, "milk", item)

	qty, ok := slots.Get("quantity").Int()
	require.True(t, ok)
	assert.Equal(t, 2, qty)

	assert.True(t, slots.Get("brand").IsAbsent())
	assert.True(t, slots.Get("flag").IsAbsent())
	assert.True(t, slots.Get("nothing").IsAbsent())
	assert.True(t, slots.Get("missing").IsAbsent())

	tags := slots.Get("tags")
	assert.Equal(t, SlotList, tags.Kind())
	assert.Len(t, tags.Values(), 2)
	first, _ := tags.Text()
	assert.Equal(t, "organic", first)
	n, ok := tags.Number()
	require.True(t, ok)
	assert.Equal(t, 3.0, n)
}

func TestParseSlots_StructValueShape(t *testing.T) {
	slots := ParseSlots([]byte(`{
		"item": {"stringValue": "bread"},
		"quantity": {"numberValue": 4},
		"items": {"listValue": {"values": [{"stringValue": "apple"}, {"numberValue": 1}]}},
		"other": {"structValue": {}}
	}`))

	item, ok := slots.Text("item")
	require.True(t, ok)
	assert.Equal(t, "bread", item)

	qty, ok := slots.Get("quantity").Int()
	require.True(t, ok)
	assert.Equal(t, 4, qty)

	items := slots.Get("items")
	require.Len(t, items.Values(), 2)
	first, _ := items.Text()
	assert.Equal(t, "apple", first)

	assert.True(t, slots.Get("other").IsAbsent())
}

func TestParseSlots_Malformed(t *testing.T) {
	for _, input := range []string{"", "   ", "not json", `["a"]`, `{"item":`} {
		t.Run(input, func(t *testing.T) {
			slots := ParseSlots([]byte(input))
			assert.NotNil(t, slots)
			assert.Empty(t, slots)
		})
	}
}

func TestSlotValue_Accessors(t *testing.T) {
	tests := []struct {
		name     string
		value    SlotValue
		text     string
		hasText  bool
		number   float64
		hasNum   bool
		integer  int
		hasInt   bool
		isAbsent bool
	}{
		{"zero value", SlotValue{}, "", false, 0, false, 0, false, true},
		{"string", StringSlot(" eggs "), "eggs", true, 0, false, 0, false, false},
		{"blank string", StringSlot("  "), "", false, 0, false, 0, false, true},
		{"digit string", StringSlot("7"), "7", true, 0, false, 7, true, false},
		{"number", NumberSlot(2.5), "2.5", true, 2.5, true, 2, true, false},
		{"nan", NumberSlot(math.NaN()), "", false, 0, false, 0, false, true},
		{"empty list", ListSlot(), "", false, 0, false, 0, false, true},
		{"list", ListSlot(StringSlot(""), StringSlot("tea"), NumberSlot(3)), "tea", true, 3, true, 3, true, false},
		{"huge number", NumberSlot(3e9), "3000000000", true, 3e9, true, math.MaxInt32, true, false},
		{"huge negative", NumberSlot(-3e9), "-3000000000", true, -3e9, true, math.MinInt32, true, false},
		{"huge digit string", StringSlot("3000000000"), "3000000000", true, 0, false, math.MaxInt32, true, false},
		{"overflowing digit string", StringSlot("99999999999999999999999"), "99999999999999999999999", true, 0, false, math.MaxInt32, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := tt.value.Text()
			assert.Equal(t, tt.hasText, ok)
			assert.Equal(t, tt.text, text)

			number, ok := tt.value.Number()
			assert.Equal(t, tt.hasNum, ok)
			assert.Equal(t, tt.number, number)

			integer, ok := tt.value.Int()
			assert.Equal(t, tt.hasInt, ok)
			assert.Equal(t, tt.integer, integer)

			assert.Equal(t, tt.isAbsent, tt.value.IsAbsent())
		})
	}
}

func TestSlots_NilSafe(t *testing.T) {
	var slots Slots
	assert.True(t, slots.Get("item").IsAbsent())
	_, ok := slots.Text("item")
	assert.False(t, ok)
}

func TestSlotValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Slots{
		"item":     StringSlot("milk"),
		"quantity": NumberSlot(2),
		"list":     ListSlot(StringSlot("a"), NumberSlot(1)),
		"empty":    ListSlot(),
		"absent":   {},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":"milk","quantity":2,"list":["a",1],"empty":[],"absent":null}`, string(data))
}

func TestNormalizeIntentName(t *testing.T) {
	tests := map[string]IntentName{
		"AddItemIntent":          IntentAddItem,
		"additem":                IntentAddItem,
		" RemoveItem ":           IntentRemoveItem,
		"GETLISTINTENT":          IntentGetList,
		"SearchItem":             IntentSearchItem,
		"Suggestions":            IntentSuggestions,
		"substitutesintent":      IntentSubstitutes,
		"Default Welcome Intent": IntentUnknown,
		"":                       IntentUnknown,
		"Intent":                 IntentUnknown,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, NormalizeIntentName(input))
		})
	}
}
