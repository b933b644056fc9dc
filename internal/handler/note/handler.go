package note

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/note"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *note.Service
}

func NewHandler(service *note.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.POST("/visits/:visit_id/notes",
		access.Require(authz.ObjectClinicalNote, authz.ActionCreate, authz.LookupTable(authz.TableVisits, "visit_id")),
		h.CreateNote)
	r.GET("/visits/:visit_id/notes",
		access.Require(authz.ObjectClinicalNote, authz.ActionRead, authz.LookupTable(authz.TableVisits, "visit_id")),
		h.ListNotes)

	notes := r.Group("/notes")
	{
		notes.GET("/:note_id",
			access.Require(authz.ObjectClinicalNote, authz.ActionRead, authz.LookupTable(authz.TableClinicalNotes, "note_id")),
			h.GetNote)
		notes.PUT("/:note_id",
			access.Require(authz.ObjectClinicalNote, authz.ActionUpdate, authz.LookupTable(authz.TableClinicalNotes, "note_id")),
			h.UpdateNote)
		notes.DELETE("/:note_id",
			access.Require(authz.ObjectClinicalNote, authz.ActionDelete, authz.LookupTable(authz.TableClinicalNotes, "note_id")),
			h.DeleteNote)
		notes.POST("/:note_id/verify",
			access.Require(authz.ObjectClinicalNote, authz.ActionApprove, authz.LookupTable(authz.TableClinicalNotes, "note_id")),
			h.VerifyNote)
	}
}

func (h *Handler) CreateNote(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	visitID, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid visit ID", err))
		return
	}

	var req model.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreateNote(c.Request.Context(), actor, visitID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListNotes(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid visit ID", err))
		return
	}

	notes, err := h.service.ListNotesForVisit(c.Request.Context(), visitID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, notes)
}

func (h *Handler) GetNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid note ID", err))
		return
	}

	found, err := h.service.GetNote(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("note", err))
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateNote(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid note ID", err))
		return
	}

	var req model.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdateNote(c.Request.Context(), actor, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteNote(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid note ID", err))
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), actor, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "note deleted"})
}

func (h *Handler) VerifyNote(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid note ID", err))
		return
	}

	verified, err := h.service.VerifyNote(c.Request.Context(), actor, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, verified)
}
