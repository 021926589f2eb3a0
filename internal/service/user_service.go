package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/model"
	"ai-interview-coach-backend/internal/repository"
)

// UserService serves user profiles, creating a basic one on first access.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserService creates a user service.
func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// Profile returns the caller's profile, lazily creating it from the
// verified identity claims when none exists yet.
func (s *UserService) Profile(ctx context.Context, uid, email, displayName string) (*model.UserProfile, error) {
	profile, err := s.users.GetByUID(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	profile = &model.UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	s.logger.Info("user profile created", zap.String("uid", uid))

	return profile, nil
}
