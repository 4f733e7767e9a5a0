package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Update applies a partial self-update to the authenticated user and issues
// a fresh token. Bio and image may be set to empty strings to clear them;
// absent fields stay untouched.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*AuthResult, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Username != nil {
		u.Username = strings.TrimSpace(*input.Username)
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cfg.PasswordHashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if input.Bio != nil {
		u.Bio = input.Bio
	}
	if input.Image != nil {
		u.Image = input.Image
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	token, err := s.jwt.GenerateToken(updated.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user updated", "user_id", updated.ID)

	return &AuthResult{Token: token, User: updated}, nil
}
