package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/patient"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	patients := r.Group("/patients")
	{
		patients.POST("",
			access.Require(authz.ObjectPatient, authz.ActionCreate, nil),
			h.CreatePatient)
		patients.GET("",
			access.Require(authz.ObjectPatient, authz.ActionRead, nil),
			h.ListPatients)
		patients.GET("/:patient_id",
			access.Require(authz.ObjectPatient, authz.ActionRead, authz.DirectParam("patient_id")),
			h.GetPatient)
		patients.PUT("/:patient_id",
			access.Require(authz.ObjectPatient, authz.ActionUpdate, authz.DirectParam("patient_id")),
			h.UpdatePatient)
		patients.DELETE("/:patient_id",
			access.Require(authz.ObjectPatient, authz.ActionDelete, authz.DirectParam("patient_id")),
			h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), actor.ID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	found, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("patient", err))
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdatePatient(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), actor.ID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "patient deleted"})
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid filters", err))
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}
