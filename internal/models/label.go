package models

// Label represents a tag that can be attached to todos
// Labels have no update operation; they are created, listed, and deleted.
type Label struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
