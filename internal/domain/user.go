package domain

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleReception UserRole = "reception"
)

// User is the authenticated staff actor. Identity issuance happens elsewhere;
// this service only consumes validated claims.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}
