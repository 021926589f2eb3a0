package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/model"
	"ai-interview-coach-backend/internal/repository"
)

type fakeUserRepo struct {
	profiles map[string]*model.UserProfile
	getErr   error
}

func (r *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*model.UserProfile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.profiles[uid]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return p, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, profile *model.UserProfile) error {
	r.profiles[profile.UID] = profile
	return nil
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns an existing profile", func(t *testing.T) {
		repo := &fakeUserRepo{profiles: map[string]*model.UserProfile{
			"uid-1": {UID: "uid-1", Email: "stored@example.com", DisplayName: "Stored"},
		}}
		svc := NewUserService(repo, zap.NewNop())

		p, err := svc.Profile(ctx, "uid-1", "token@example.com", "Token Name")

		require.NoError(t, err)
		assert.Equal(t, "stored@example.com", p.Email)
		assert.Equal(t, "Stored", p.DisplayName)
	})

	t.Run("creates a profile from the claims on first access", func(t *testing.T) {
		repo := &fakeUserRepo{profiles: map[string]*model.UserProfile{}}
		svc := NewUserService(repo, zap.NewNop())

		p, err := svc.Profile(ctx, "uid-new", "new@example.com", "New User")

		require.NoError(t, err)
		assert.Equal(t, "uid-new", p.UID)
		assert.Equal(t, "new@example.com", p.Email)
		assert.Equal(t, "New User", p.DisplayName)
		assert.False(t, p.CreatedAt.IsZero())
		require.Contains(t, repo.profiles, "uid-new")
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := &fakeUserRepo{getErr: assert.AnError}
		svc := NewUserService(repo, zap.NewNop())

		_, err := svc.Profile(ctx, "uid-1", "u@example.com", "")

		assert.ErrorIs(t, err, assert.AnError)
	})
}
