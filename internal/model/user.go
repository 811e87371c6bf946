package model

type UserRole string

const (
	Teacher   UserRole = "teacher"
	Inspector UserRole = "inspector"
	Admin     UserRole = "admin"
)

// User is the identity carried in dashboard tokens. Accounts live in the
// school API; this service only reads the claims.
type User struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
