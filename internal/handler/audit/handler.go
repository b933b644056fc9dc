package audit

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/service/audit"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.GET("/audit-logs",
		access.Require(authz.ObjectUserAccount, authz.ActionRead, nil),
		h.ListLogs)
}

func (h *Handler) ListLogs(c *gin.Context) {
	filters := make(map[string]interface{})

	if v := c.Query("user_id"); v != "" {
		filters["user_id"] = v
	}
	if v := c.Query("entity_type"); v != "" {
		filters["entity_type"] = v
	}
	if v := c.Query("entity_id"); v != "" {
		filters["entity_id"] = v
	}
	if v := c.Query("action"); v != "" {
		filters["action"] = v
	}
	if v := c.Query("start_date"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid start_date", err))
			return
		}
		filters["start_date"] = ts
	}
	if v := c.Query("end_date"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid end_date", err))
			return
		}
		filters["end_date"] = ts
	}

	logs, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, logs)
}
