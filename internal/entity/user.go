package entity

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type UserLoginData struct {
	ID       string
	Username string
	Email    string
	Role     string
}

func (u UserLoginData) IsAdmin() bool {
	return u.Role == RoleAdmin
}
