package user

import (
	"time"

	"voyager-be/internal/auth"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the session identity of u.
func (u *User) Principal() auth.Principal {
	return auth.Principal{UserID: u.ID, Role: u.Role, Name: u.Name, Email: u.Email}
}

// Summary is the owner block embedded in order and booking listings.
type Summary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type CreateInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateInput struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

type UpdateParams struct {
	Name *string
	Role *auth.Role
}
