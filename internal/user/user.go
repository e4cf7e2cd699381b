package user

// Roles recognized by the access rules. Anything else is carried through
// untouched and gets no write permissions.
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
)

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
