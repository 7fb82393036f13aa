package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is an upvote of an idea by a user. A user can like an idea at most
// once; the ideas.upvotes counter is kept equal to the number of like rows.
type Like struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	IdeaID     uuid.UUID  `json:"idea_id"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
