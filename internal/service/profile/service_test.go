package profile

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

type mockUserRepo struct {
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrNotFound
}

type mockFollowRepo struct {
	UpsertFunc func(ctx context.Context, followerID, followingID uuid.UUID) error
	DeleteFunc func(ctx context.Context, followerID, followingID uuid.UUID) error
	ExistsFunc func(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)

	upsertCalls int
	deleteCalls int
}

func (m *mockFollowRepo) Upsert(ctx context.Context, followerID, followingID uuid.UUID) error {
	m.upsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepo) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	m.deleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, followerID, followingID)
	}
	return false, nil
}

func newTestService() (*Service, *mockUserRepo, *mockFollowRepo) {
	users := &mockUserRepo{}
	follows := &mockFollowRepo{}
	return NewService(slog.Default(), users, follows), users, follows
}

func makeUser(username string) *domain.User {
	return &domain.User{ID: uuid.New(), Email: username + "@example.com", Username: username}
}

func TestService_Get_Anonymous(t *testing.T) {
	t.Parallel()
	svc, users, _ := newTestService()

	target := makeUser("celeb")
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return target, nil
	}

	p, err := svc.Get(context.Background(), "celeb")
	require.NoError(t, err)
	assert.Equal(t, "celeb", p.Username)
	assert.False(t, p.Following)
}

func TestService_Get_ViewerFollows(t *testing.T) {
	t.Parallel()
	svc, users, follows := newTestService()

	viewerID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), viewerID)

	target := makeUser("celeb")
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return target, nil
	}
	follows.ExistsFunc = func(_ context.Context, followerID, followingID uuid.UUID) (bool, error) {
		assert.Equal(t, viewerID, followerID)
		assert.Equal(t, target.ID, followingID)
		return true, nil
	}

	p, err := svc.Get(ctx, "celeb")
	require.NoError(t, err)
	assert.True(t, p.Following)
}

func TestService_Get_OwnProfileNeverFollowing(t *testing.T) {
	t.Parallel()
	svc, users, follows := newTestService()

	self := makeUser("me")
	ctx := ctxutil.WithUserID(context.Background(), self.ID)
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return self, nil
	}
	existsCalled := false
	follows.ExistsFunc = func(_ context.Context, _, _ uuid.UUID) (bool, error) {
		existsCalled = true
		return true, nil
	}

	p, err := svc.Get(ctx, "me")
	require.NoError(t, err)
	assert.False(t, p.Following)
	assert.False(t, existsCalled, "own profile must not query the follow edge")
}

func TestService_Follow_HappyPath(t *testing.T) {
	t.Parallel()
	svc, users, follows := newTestService()

	viewerID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), viewerID)
	target := makeUser("celeb")
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return target, nil
	}

	p, err := svc.Follow(ctx, "celeb")
	require.NoError(t, err)
	assert.True(t, p.Following)
	assert.Equal(t, 1, follows.upsertCalls)
}

func TestService_Follow_SelfRejectedWithoutWrite(t *testing.T) {
	t.Parallel()
	svc, users, follows := newTestService()

	self := makeUser("me")
	ctx := ctxutil.WithUserID(context.Background(), self.ID)
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return self, nil
	}

	_, err := svc.Follow(ctx, "me")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Zero(t, follows.upsertCalls, "self-follow must not reach the repository")
}

func TestService_Follow_Unauthorized(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()

	_, err := svc.Follow(context.Background(), "celeb")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Follow_UnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService()
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.Follow(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Unfollow_SelfRejectedWithoutWrite(t *testing.T) {
	t.Parallel()
	svc, users, follows := newTestService()

	self := makeUser("me")
	ctx := ctxutil.WithUserID(context.Background(), self.ID)
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return self, nil
	}

	_, err := svc.Unfollow(ctx, "me")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Zero(t, follows.deleteCalls)
}

func TestService_Unfollow_Idempotent(t *testing.T) {
	t.Parallel()
	svc, users, follows := newTestService()

	viewerID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), viewerID)
	target := makeUser("celeb")
	users.GetByUsernameFunc = func(_ context.Context, _ string) (*domain.User, error) {
		return target, nil
	}

	p, err := svc.Unfollow(ctx, "celeb")
	require.NoError(t, err)
	assert.False(t, p.Following)

	// Repeating is still a success.
	p, err = svc.Unfollow(ctx, "celeb")
	require.NoError(t, err)
	assert.False(t, p.Following)
	assert.Equal(t, 2, follows.deleteCalls)
}
