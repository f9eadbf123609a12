package models

// Role values for User.Role
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the public identity. The credential never lives here.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // user, admin
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SignupInput is what a visitor submits to register.
type SignupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
