package queue

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/queue"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *queue.Service
}

func NewHandler(service *queue.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.POST("/patients/:patient_id/queue",
		access.Require(authz.ObjectQueueEntry, authz.ActionCreate, authz.DirectParam("patient_id")),
		h.CreateEntry)
	r.GET("/patients/:patient_id/queue",
		access.Require(authz.ObjectQueueEntry, authz.ActionRead, authz.DirectParam("patient_id")),
		h.ListEntriesForPatient)

	entries := r.Group("/queue")
	{
		entries.GET("",
			access.Require(authz.ObjectQueueEntry, authz.ActionRead, nil),
			h.ListEntries)
		entries.GET("/:entry_id",
			access.Require(authz.ObjectQueueEntry, authz.ActionRead, authz.LookupTable(authz.TableQueueEntries, "entry_id")),
			h.GetEntry)
		entries.PUT("/:entry_id",
			access.Require(authz.ObjectQueueEntry, authz.ActionUpdate, authz.LookupTable(authz.TableQueueEntries, "entry_id")),
			h.UpdateEntry)
	}
}

func (h *Handler) CreateEntry(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateQueueEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreateEntry(c.Request.Context(), actor.ID, patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListEntriesForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	entries, err := h.service.ListEntriesForPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

func (h *Handler) ListEntries(c *gin.Context) {
	var filters model.QueueFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid filters", err))
		return
	}

	entries, err := h.service.ListEntries(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

func (h *Handler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid entry ID", err))
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("queue entry", err))
		return
	}
	httputil.RespondWithSuccess(c, entry)
}

func (h *Handler) UpdateEntry(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid entry ID", err))
		return
	}

	var req model.UpdateQueueEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdateEntry(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}
