package models

import "time"

// ListItem represents an entry on the user's shopping list
type ListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddListItemRequest represents the request body for POST /api/list
type AddListItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

// DeleteListItemResponse represents the response after deleting a list item
type DeleteListItemResponse struct {
	Message string `json:"message"`
}
