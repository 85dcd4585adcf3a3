package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// UserHandler serves a user together with its profile
type UserHandler struct {
	profiles service.IProfileService
	auth     middleware.TokenValidator
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(profiles service.IProfileService, auth middleware.TokenValidator) *UserHandler {
	return &UserHandler{
		profiles: profiles,
		auth:     auth,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware(h.auth))
	{
		user.GET("/:id/", h.GetUser)
		user.PATCH("/:id/", h.UpdateUser)
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.profiles.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewUserDetail(user))
}

// UpdateUser changes the caller's own profile. Username cannot be changed here.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), callerID(c), id, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewUserDetail(user))
}
