package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
	"github.com/smilecare/clinic-api/internal/service/audit"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/security"
)

type Service struct {
	repo    repository.UserRepository
	hasher  security.PasswordHasher
	auditor *audit.Service
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, auditor *audit.Service) *Service {
	return &Service{repo: repo, hasher: hasher, auditor: auditor}
}

func (s *Service) CreateUser(ctx context.Context, actorID uuid.UUID, req *model.CreateUserRequest) (*model.User, error) {
	if existing, _ := s.repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, errors.Conflict("email already in use", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		Department:   req.Department,
		Status:       model.UserStatusActive,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionCreate, model.AuditEntityUser, user.ID, &audit.LogOptions{
		Metadata: map[string]interface{}{"email": user.Email, "role": user.Role},
	})
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, actorID, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionUpdate, model.AuditEntityUser, id, &audit.LogOptions{
		Changes: req,
	})
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.auditor.Log(ctx, actorID, model.AuditActionDelete, model.AuditEntityUser, id, nil)
	return nil
}

func (s *Service) ListUsers(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	return s.repo.List(ctx, filters)
}
