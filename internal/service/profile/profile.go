package profile

import (
	"context"
	"fmt"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Get returns the profile of the named user. Works for anonymous viewers;
// a viewer in the context resolves the following flag, which stays false
// for the viewer's own profile.
func (s *Service) Get(ctx context.Context, username string) (*domain.Profile, error) {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID, ok := ctxutil.UserIDFromCtx(ctx); ok && viewerID != target.ID {
		following, err = s.follows.Exists(ctx, viewerID, target.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve following: %w", err)
		}
	}

	p := domain.ProfileOf(target, following)
	return &p, nil
}

// Follow makes the viewer follow the named user and returns the refreshed
// profile. Following an already-followed user is a no-op success; following
// yourself is rejected.
func (s *Service) Follow(ctx context.Context, username string) (*domain.Profile, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == viewerID {
		return nil, fmt.Errorf("follow self: %w", domain.ErrInvalidOperation)
	}

	if err := s.follows.Upsert(ctx, viewerID, target.ID); err != nil {
		return nil, fmt.Errorf("follow %s: %w", username, err)
	}

	s.log.InfoContext(ctx, "user followed", "follower_id", viewerID, "username", username)

	p := domain.ProfileOf(target, true)
	return &p, nil
}

// Unfollow removes the viewer's follow edge and returns the refreshed
// profile. Unfollowing a non-followed user is a no-op success; unfollowing
// yourself is rejected.
func (s *Service) Unfollow(ctx context.Context, username string) (*domain.Profile, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == viewerID {
		return nil, fmt.Errorf("unfollow self: %w", domain.ErrInvalidOperation)
	}

	if err := s.follows.Delete(ctx, viewerID, target.ID); err != nil {
		return nil, fmt.Errorf("unfollow %s: %w", username, err)
	}

	s.log.InfoContext(ctx, "user unfollowed", "follower_id", viewerID, "username", username)

	p := domain.ProfileOf(target, false)
	return &p, nil
}
