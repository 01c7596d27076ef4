package domain

// Role is the caller's privilege level. Anonymous is the zero value so an
// unauthenticated request carries a usable Role without a nil check.
type Role string

const (
	Anonymous Role = ""
	Customer  Role = "customer"
	Admin     Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case Customer, Admin:
		return Role(s), true
	}
	return Anonymous, false
}

type User struct {
	ID        string `db:"id" json:"id"`
	FullName  string `db:"full_name" json:"fullName"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password_hash" json:"-"`
	Role      Role   `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// PublicUser is the name/email projection attached to populated orders.
type PublicUser struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"fullName"`
	Email    string `db:"email" json:"email"`
}
