package user

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/service/user"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, access *middleware.AccessMiddleware) {
	users := r.Group("/users")
	{
		users.POST("",
			access.Require(authz.ObjectUserAccount, authz.ActionCreate, nil),
			h.CreateUser)
		users.GET("",
			access.Require(authz.ObjectUserAccount, authz.ActionRead, nil),
			h.ListUsers)
		users.GET("/:user_id",
			access.Require(authz.ObjectUserAccount, authz.ActionRead, nil),
			h.GetUser)
		users.PUT("/:user_id",
			access.Require(authz.ObjectUserAccount, authz.ActionUpdate, nil),
			h.UpdateUser)
		users.DELETE("/:user_id",
			access.Require(authz.ObjectUserAccount, authz.ActionDelete, nil),
			h.DeleteUser)
	}
}

func (h *Handler) CreateUser(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), actor.ID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid user ID", err))
		return
	}

	found, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, errors.NotFound("user", err))
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid user ID", err))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request", err))
		return
	}

	updated, err := h.service.UpdateUser(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid user ID", err))
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actor.ID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "user deleted"})
}

func (h *Handler) ListUsers(c *gin.Context) {
	var filters model.UserFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid filters", err))
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}
