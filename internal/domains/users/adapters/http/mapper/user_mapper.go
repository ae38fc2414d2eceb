package mapper

import (
	"time"

	userdomain "github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
)

// Register is the sign-up request body.
type Register struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// User is the transport-level user payload. Password hashes never leave
// the service.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	OrderIDs  []string  `json:"orders"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is returned after a successful login.
type Session struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
	User    User   `json:"user"`
}

func ToRegisterInput(payload Register) userports.RegisterInput {
	return userports.RegisterInput{Name: payload.Name, Email: payload.Email, Password: payload.Password}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	orderIDs := append([]string{}, user.OrderIDs...)
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		OrderIDs:  orderIDs,
		CreatedAt: user.CreatedAt,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}

func FromLoginResult(result *userports.LoginResult) Session {
	if result == nil {
		return Session{}
	}
	user := FromDomainUser(result.User)
	return Session{Token: result.Token, IsAdmin: user.IsAdmin, User: user}
}
