package service

import (
	"context"
	"errors"
	"time"

	"touchbase/internal/logger"
	"touchbase/internal/model"
	"touchbase/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) (*model.User, error) {
	existing, err := s.userRepo.FindByGoogleID(ctx, googleID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		newUser := model.NewUser(googleID, email, name, accessToken, refreshToken, tokenExpiry)
		if err := s.userRepo.Create(ctx, newUser); err != nil {
			s.logger.Error("Failed to create user:", err)
			return nil, err
		}
		s.logger.Info("Created new user:", newUser.ID)
		return newUser, nil
	}

	// Known user signing in again: refresh the stored tokens.
	if accessToken != "" || refreshToken != "" {
		existing.AccessToken = accessToken
		existing.RefreshToken = refreshToken
		if !tokenExpiry.IsZero() {
			existing.TokenExpiry = tokenExpiry
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			s.logger.Error("Failed to update user tokens:", err)
			return nil, err
		}
	}
	return existing, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) UpdateSettings(ctx context.Context, userID string, name *string, staleThresholdDays *int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != "" {
		user.Name = *name
	}
	if staleThresholdDays != nil {
		user.StaleThresholdDays = model.ClampStaleThreshold(*staleThresholdDays)
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user settings:", err)
		return nil, err
	}
	return user, nil
}
