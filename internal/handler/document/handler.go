package document

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/document"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *document.Service
}

func NewHandler(service *document.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	r.POST("/patients/:patient_id/documents",
		access.Require(authz.ObjectDocument, authz.ActionCreate, authz.DirectParam("patient_id")),
		h.CreateDocument)
	r.GET("/patients/:patient_id/documents",
		access.Require(authz.ObjectDocument, authz.ActionRead, authz.DirectParam("patient_id")),
		h.ListDocuments)

	docs := r.Group("/documents")
	{
		docs.GET("/:document_id",
			access.Require(authz.ObjectDocument, authz.ActionRead, authz.LookupTable(authz.TableDocuments, "document_id")),
			h.GetDocument)
		docs.DELETE("/:document_id",
			access.Require(authz.ObjectDocument, authz.ActionDelete, authz.LookupTable(authz.TableDocuments, "document_id")),
			h.DeleteDocument)
	}
}

func (h *Handler) CreateDocument(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreateDocument(c.Request.Context(), actor.ID, patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	docs, err := h.service.ListDocumentsForPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, docs)
}

func (h *Handler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid document ID", err))
		return
	}

	found, err := h.service.GetDocument(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("document", err))
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid document ID", err))
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), actor, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "document deleted"})
}
