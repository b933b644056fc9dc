package assignment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/assignment"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

// Handler manages care-team membership. The routes are gated as account
// administration: joining a care team is never self-service, it is
// granted by staff holding USER_ACCOUNT rights.
type Handler struct {
	service *assignment.Service
}

func NewHandler(service *assignment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.GET("/patients/:patient_id/assignments",
		access.Require(authz.ObjectUserAccount, authz.ActionRead, nil),
		h.ListAssignments)
	r.POST("/patients/:patient_id/assignments",
		access.Require(authz.ObjectUserAccount, authz.ActionUpdate, nil),
		h.Assign)
	r.DELETE("/patients/:patient_id/assignments/:user_id",
		access.Require(authz.ObjectUserAccount, authz.ActionUpdate, nil),
		h.Revoke)
}

func (h *Handler) Assign(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.Assign(c.Request.Context(), actor.ID, patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) Revoke(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid user ID", err))
		return
	}

	assignmentRole := c.Query("assignment_role")
	if assignmentRole == "" {
		httputil.RespondWithError(c, errors.BadRequest("assignment_role is required", nil))
		return
	}

	if err := h.service.Revoke(c.Request.Context(), actor.ID, patientID, userID, assignmentRole); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "assignment revoked"})
}

func (h *Handler) ListAssignments(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	activeOnly := c.Query("active") != "false"

	assignments, err := h.service.ListForPatient(c.Request.Context(), patientID, activeOnly)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, assignments)
}
