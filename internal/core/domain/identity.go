package domain

// RoleAdmin is the app_metadata role granting admin access.
const RoleAdmin = "admin"

// Identity is a verified caller as reported by the auth provider.
// Role comes only from app_metadata, which users cannot edit.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
}

// IsAdmin reports whether the server-controlled role is admin.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
