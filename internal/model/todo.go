package model

// Todo is the domain model for a todo entry as the server returns it.
// IDs are server-assigned and immutable; UserID ties the entry to its owner.
type Todo struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Done   bool   `json:"done"`
	UserID int    `json:"userId"`
}
