package models

// Assistant actions
const (
	ActionAdd         = "add"
	ActionRemove      = "remove"
	ActionList        = "list"
	ActionSearch      = "search"
	ActionSubstitutes = "substitutes"
	ActionSuggestions = "suggestions"
)

// AssistantResponse represents the result of dispatching a classified query.
// Collections use omitzero so a nil slice is omitted while an empty one is
// rendered as [] for the actions that produce it.
type AssistantResponse struct {
	Intent          string        `json:"intent"`
	Action          string        `json:"action,omitempty"`
	Item            string        `json:"item,omitempty"`
	Data            *ListItem     `json:"data,omitempty"`
	Items           []ListItem    `json:"items,omitzero"`
	Results         []CatalogItem `json:"results,omitzero"`
	Substitutes     []Substitute  `json:"substitutes,omitzero"`
	Suggestions     []Suggestion  `json:"suggestions,omitzero"`
	Parameters      Slots         `json:"parameters,omitzero"`
	Error           string        `json:"error,omitempty"`
	ResponseMessage string        `json:"responseMessage,omitempty"`
	QueryText       string        `json:"queryText,omitempty"`
	Source          string        `json:"source,omitempty"`
}

// ErrorResponse is the JSON body for client and server failures
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
	Method  string `json:"method,omitempty"`
}

// HealthResponse represents the response of GET /api/health
type HealthResponse struct {
	OK          bool   `json:"ok"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Store       string `json:"store"`
	Classifier  string `json:"classifier"`
}
