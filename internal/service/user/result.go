package user

import "github.com/heartmarshall/conduit-backend/internal/domain"

// AuthResult is a user together with a freshly issued JWT.
type AuthResult struct {
	Token string
	User  *domain.User
}
