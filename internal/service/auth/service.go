package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/internal/service/audit"
	"github.com/smilecare/clinic-api/pkg/auth"
	"github.com/smilecare/clinic-api/pkg/errors"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type Service struct {
	userRepo    repository.UserRepository
	jwtSvc      auth.JWTService
	auditor     *audit.Service
	tokenExpiry time.Duration
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, auditor *audit.Service, tokenExpiry time.Duration) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtSvc:      jwtSvc,
		auditor:     auditor,
		tokenExpiry: tokenExpiry,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if user.Status == model.UserStatusLocked {
		if time.Since(user.LastLoginAttempt) < lockoutDuration {
			return nil, errors.Unauthorized(fmt.Errorf("account is locked"))
		}
		user.Status = model.UserStatusActive
		user.LoginAttempts = 0
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.LoginAttempts++
		user.LastLoginAttempt = time.Now()
		if user.LoginAttempts >= maxLoginAttempts {
			user.Status = model.UserStatusLocked
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update login attempts: %w", err)
		}
		return nil, errors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	user.LoginAttempts = 0
	user.LastLoginAttempt = time.Now()
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.auditor.Log(ctx, user.ID, model.AuditActionLogin, model.AuditEntityUser, user.ID, &audit.LogOptions{
		Metadata: map[string]interface{}{"email": user.Email},
	})

	return tokens, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	userID, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}
	if user.Status != model.UserStatusActive {
		return nil, errors.Unauthorized(fmt.Errorf("account is not active"))
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return tokens, nil
}

func (s *Service) generateTokens(user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenExpiry.Seconds()),
	}, nil
}
