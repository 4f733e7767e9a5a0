package user

import (
	"context"
	"fmt"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Current returns the authenticated user with a refreshed token.
func (s *Service) Current(ctx context.Context) (*AuthResult, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: u}, nil
}
