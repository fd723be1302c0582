package models

// Todo is the aggregate returned to callers: the todo row together with its
// fully materialized label list. Labels is derived from the association table
// at read time and is never nil in a hydrated Todo, so it serializes as [].
type Todo struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Labels    []Label `json:"labels"`
}
