package auth

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// CanViewMatrix gates the organization-wide compliance views. Employees see
// only their own checklist.
func CanViewMatrix(role string) bool {
	switch role {
	case RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}
