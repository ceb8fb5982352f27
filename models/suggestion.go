package models

// Suggestion priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Suggestion represents an item the assistant proposes adding
type Suggestion struct {
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// Substitute represents an alternative to a requested item
type Substitute struct {
	Name         string `json:"name"`
	Reason       string `json:"reason"`
	IsSubstitute bool   `json:"isSubstitute,omitempty"`
}
