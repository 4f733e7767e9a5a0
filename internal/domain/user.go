package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Bio and Image are nullable on the
// wire and stay pointers all the way through.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Bio          *string
	Image        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the viewer-relative public view of a user.
// Following is always false when the profile belongs to the viewer.
type Profile struct {
	Username  string
	Bio       *string
	Image     *string
	Following bool
}

// ProfileOf builds a Profile for the given user with the supplied follow state.
func ProfileOf(u *User, following bool) Profile {
	return Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}
