package repository

import (
	"unicode/utf8"

	"github.com/thenoetrevino/lista/internal/validate"
)

const maxTextLength = 100

// CreateTodo is the validated command for creating a todo.
type CreateTodo struct {
	Text     string `json:"text"`
	LabelIDs []int  `json:"labels"`
}

// Validate checks field constraints and aggregates every violation.
func (c *CreateTodo) Validate() error {
	violations := checkText("text", c.Text)
	if len(violations) > 0 {
		return &validate.ValidationError{Violations: violations}
	}
	return nil
}

// UpdateTodo is the validated command for a partial update. Nil fields mean
// "leave unchanged". A non-nil empty LabelIDs replaces the association set
// with nothing, which is distinct from leaving it alone.
type UpdateTodo struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	LabelIDs  *[]int  `json:"labels"`
}

func (c *UpdateTodo) Validate() error {
	if c.Text == nil {
		return nil
	}
	violations := checkText("text", *c.Text)
	if len(violations) > 0 {
		return &validate.ValidationError{Violations: violations}
	}
	return nil
}

// CreateLabel is the validated command for creating a label.
type CreateLabel struct {
	Name string `json:"name"`
}

func (c *CreateLabel) Validate() error {
	violations := checkText("name", c.Name)
	if len(violations) > 0 {
		return &validate.ValidationError{Violations: violations}
	}
	return nil
}

// checkText enforces the shared 1..100 character rule for text fields.
func checkText(field, value string) []string {
	var violations []string
	if utf8.RuneCountInString(value) < 1 {
		violations = append(violations, field+" can not be empty")
	}
	if utf8.RuneCountInString(value) > maxTextLength {
		violations = append(violations, field+" is over 100 characters")
	}
	return violations
}
