package models

// Role is a user's access level.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleAuditor      Role = "AUDITOR"
	RoleCollaborator Role = "COLLABORATOR"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAuditor, RoleCollaborator:
		return true
	}
	return false
}

// User is an account that submits readings or resolves alerts.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
