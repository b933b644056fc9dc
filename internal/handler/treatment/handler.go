package treatment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/treatment"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *treatment.Service
}

func NewHandler(service *treatment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.POST("/patients/:patient_id/cases",
		access.Require(authz.ObjectTreatmentCase, authz.ActionCreate, authz.DirectParam("patient_id")),
		h.OpenCase)
	r.GET("/patients/:patient_id/cases",
		access.Require(authz.ObjectTreatmentCase, authz.ActionRead, authz.DirectParam("patient_id")),
		h.ListCases)

	cases := r.Group("/cases")
	{
		cases.GET("/:case_id",
			access.Require(authz.ObjectTreatmentCase, authz.ActionRead, authz.LookupTable(authz.TableTreatmentCases, "case_id")),
			h.GetCase)
		cases.PUT("/:case_id",
			access.Require(authz.ObjectTreatmentCase, authz.ActionUpdate, authz.LookupTable(authz.TableTreatmentCases, "case_id")),
			h.UpdateCase)
		cases.POST("/:case_id/close",
			access.Require(authz.ObjectTreatmentCase, authz.ActionUpdate, authz.LookupTable(authz.TableTreatmentCases, "case_id")),
			h.CloseCase)
	}
}

func (h *Handler) OpenCase(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	opened, err := h.service.OpenCase(c.Request.Context(), actor.ID, patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, opened)
}

func (h *Handler) ListCases(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	cases, err := h.service.ListCasesForPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cases)
}

func (h *Handler) GetCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("case_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid case ID", err))
		return
	}

	found, err := h.service.GetCase(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("treatment case", err))
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateCase(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("case_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid case ID", err))
		return
	}

	var req model.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdateCase(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) CloseCase(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("case_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid case ID", err))
		return
	}

	if err := h.service.CloseCase(c.Request.Context(), actor.ID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "treatment case closed"})
}
