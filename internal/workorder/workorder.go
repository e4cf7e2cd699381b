package workorder

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusClosed     = "CLOSED"

	PriorityLow  = "LOW"
	PriorityMed  = "MED"
	PriorityHigh = "HIGH"
)

// WorkOrder is a trackable task owned by the user who created it and
// optionally assigned to another user.
type WorkOrder struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	CreatedByID  int    `json:"createdById"`
	AssignedToID *int   `json:"assignedToId,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`

	// denormalized at read time from the users table
	CreatedBy  *UserSummary `json:"createdBy,omitempty"`
	AssignedTo *UserSummary `json:"assignedTo,omitempty"`
}

// UserSummary is the slice of a user record attached to orders in responses.
type UserSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
