package models

import (
	"strings"
)

// IntentName identifies the classified purpose of an utterance
type IntentName string

const (
	IntentAddItem     IntentName = "AddItemIntent"
	IntentRemoveItem  IntentName = "RemoveItemIntent"
	IntentGetList     IntentName = "GetListIntent"
	IntentSearchItem  IntentName = "SearchItemIntent"
	IntentSuggestions IntentName = "SuggestionsIntent"
	IntentSubstitutes IntentName = "SubstitutesIntent"
	IntentUnknown     IntentName = "UnknownIntent"
)

// Classification sources
const (
	SourceDialogflow = "dialogflow"
	SourceFallback   = "fallback"
)

var knownIntents = []IntentName{
	IntentAddItem,
	IntentRemoveItem,
	IntentGetList,
	IntentSearchItem,
	IntentSuggestions,
	IntentSubstitutes,
	IntentUnknown,
}

// NormalizeIntentName maps a classifier display name onto a known intent.
// Matching is case-insensitive and the "Intent" suffix is optional, so
// "additem", "AddItem" and "AddItemIntent" are equivalent. Anything else
// is UnknownIntent.
func NormalizeIntentName(name string) IntentName {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSuffix(key, "intent")
	if key == "" {
		return IntentUnknown
	}
	for _, known := range knownIntents {
		if strings.TrimSuffix(strings.ToLower(string(known)), "intent") == key {
			return known
		}
	}
	return IntentUnknown
}

// Classification is the normalized output of an intent classifier
type Classification struct {
	Intent          IntentName
	RawIntent       string // Display name as returned by the classifier
	Slots           Slots
	FulfillmentText string
	QueryText       string
	Source          string
}

// QueryRequest represents the request body for POST /api/dialogflow/query
type QueryRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}
