package user

import "time"

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// User represents a registered user.
type User struct {
	ID        int64     `json:"id"        mapstructure:"id"`
	Username  string    `json:"username"  mapstructure:"username"`
	Role      Role      `json:"role"      mapstructure:"role"`
	CreatedAt time.Time `json:"createdAt" mapstructure:"-"`
	UpdatedAt time.Time `json:"updatedAt" mapstructure:"-"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
