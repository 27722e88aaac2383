package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	ErrMissingUser  = errors.New("user id is required")
	ErrUnknownLabel = errors.New("unknown author field")
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetGitProfile returns the stored profile or an empty one for new users
func (s *Service) GetGitProfile(ctx context.Context, userID string) (*GitProfile, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	profile, err := s.repo.GetGitProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load git profile: %w", err)
	}
	if profile == nil {
		return &GitProfile{UserID: userID}, nil
	}
	return profile, nil
}

// UpdateGitProfile replaces both author fields
func (s *Service) UpdateGitProfile(ctx context.Context, userID string, info AuthorInfo) (*GitProfile, error) {
	profile, err := s.GetGitProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.AuthorInfo = info
	return s.save(ctx, profile)
}

// SetAuthorField updates a single author field by label
func (s *Service) SetAuthorField(ctx context.Context, userID, label, value string) (*GitProfile, error) {
	profile, err := s.GetGitProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	info, ok := SetAuthorField(profile.AuthorInfo, label, value)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLabel, label)
	}
	profile.AuthorInfo = info
	return s.save(ctx, profile)
}

func (s *Service) save(ctx context.Context, profile *GitProfile) (*GitProfile, error) {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if err := s.repo.SaveGitProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save git profile: %w", err)
	}
	s.logger.Info("Git profile updated", zap.String("user_id", profile.UserID))
	return profile, nil
}
