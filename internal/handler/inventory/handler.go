package inventory

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/inventory"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *inventory.Service
}

func NewHandler(service *inventory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	items := r.Group("/inventory")
	{
		items.POST("",
			access.Require(authz.ObjectInventory, authz.ActionCreate, nil),
			h.CreateItem)
		items.GET("",
			access.Require(authz.ObjectInventory, authz.ActionRead, nil),
			h.ListItems)
		items.GET("/low-stock",
			access.Require(authz.ObjectInventory, authz.ActionRead, nil),
			h.LowStock)
		items.GET("/:item_id",
			access.Require(authz.ObjectInventory, authz.ActionRead, nil),
			h.GetItem)
		items.PUT("/:item_id",
			access.Require(authz.ObjectInventory, authz.ActionUpdate, nil),
			h.UpdateItem)
		items.DELETE("/:item_id",
			access.Require(authz.ObjectInventory, authz.ActionDelete, nil),
			h.DeleteItem)
	}
}

func (h *Handler) CreateItem(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req model.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreateItem(c.Request.Context(), actor.ID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid item ID", err))
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("inventory item", err))
		return
	}
	httputil.RespondWithSuccess(c, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid item ID", err))
		return
	}

	var req model.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdateItem(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid item ID", err))
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), actor.ID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "inventory item deleted"})
}
