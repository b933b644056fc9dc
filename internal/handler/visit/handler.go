package visit

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/visit"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *visit.Service
}

func NewHandler(service *visit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.POST("/patients/:patient_id/visits",
		access.Require(authz.ObjectMedicalDetail, authz.ActionCreate, authz.DirectParam("patient_id")),
		h.CreateVisit)
	r.GET("/patients/:patient_id/visits",
		access.Require(authz.ObjectMedicalDetail, authz.ActionRead, authz.DirectParam("patient_id")),
		h.ListVisits)

	visits := r.Group("/visits")
	{
		visits.GET("/:visit_id",
			access.Require(authz.ObjectMedicalDetail, authz.ActionRead, authz.LookupTable(authz.TableVisits, "visit_id")),
			h.GetVisit)
		visits.PUT("/:visit_id",
			access.Require(authz.ObjectMedicalDetail, authz.ActionUpdate, authz.LookupTable(authz.TableVisits, "visit_id")),
			h.UpdateVisit)
		visits.DELETE("/:visit_id",
			access.Require(authz.ObjectMedicalDetail, authz.ActionDelete, authz.LookupTable(authz.TableVisits, "visit_id")),
			h.DeleteVisit)
	}
}

func (h *Handler) CreateVisit(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreateVisit(c.Request.Context(), actor.ID, patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListVisits(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	visits, err := h.service.ListVisitsForPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, visits)
}

func (h *Handler) GetVisit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid visit ID", err))
		return
	}

	found, err := h.service.GetVisit(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("visit", err))
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateVisit(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid visit ID", err))
		return
	}

	var req model.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdateVisit(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteVisit(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid visit ID", err))
		return
	}

	if err := h.service.DeleteVisit(c.Request.Context(), actor.ID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "visit deleted"})
}
