package domain

import "time"

// Role is a person's role on the board.
type Role string

const (
	RoleManager   Role = "manager"
	RoleDeveloper Role = "developer"
	RoleDesigner  Role = "designer"
	RoleTester    Role = "tester"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleDeveloper, RoleDesigner, RoleTester:
		return true
	}
	return false
}

// Person is a user who can create, be assigned and comment on tasks.
// Email is the natural key.
type Person struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PersonInput holds the fields used when a person is first created.
type PersonInput struct {
	Email string
	Name  string
	Role  Role
}
