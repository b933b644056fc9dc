package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

// Service records who touched what. Every entry goes to the database and
// to a structured trail file, so the trail survives a database incident.
type Service struct {
	repo  repository.AuditRepository
	trail *zap.Logger
}

func NewService(repo repository.AuditRepository, trail *zap.Logger) *Service {
	if trail == nil {
		trail = zap.NewNop()
	}
	return &Service{repo: repo, trail: trail}
}

type LogOptions struct {
	Changes   interface{}
	Metadata  interface{}
	IPAddress string
	UserAgent string
}

// Log creates an audit log entry
func (s *Service) Log(ctx context.Context, userID uuid.UUID, action, entityType string, entityID uuid.UUID, opts *LogOptions) error {
	var changes, metadata json.RawMessage
	var err error

	ipAddress := ""
	userAgent := ""

	if opts != nil {
		if opts.Changes != nil {
			changes, err = json.Marshal(opts.Changes)
			if err != nil {
				return err
			}
		}
		if opts.Metadata != nil {
			metadata, err = json.Marshal(opts.Metadata)
			if err != nil {
				return err
			}
		}
		ipAddress = opts.IPAddress
		userAgent = opts.UserAgent
	}

	if gc, ok := ctx.(*gin.Context); ok && ipAddress == "" {
		ipAddress = gc.ClientIP()
		userAgent = gc.GetHeader("User-Agent")
	}

	entry := &model.AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		Metadata:   metadata,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	}

	s.trail.Info("audit",
		zap.String("user_id", userID.String()),
		zap.String("action", action),
		zap.String("entity_type", entityType),
		zap.String("entity_id", entityID.String()),
		zap.String("ip_address", ipAddress),
	)

	return s.repo.Create(ctx, entry)
}

func (s *Service) List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, before)
}
