package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// LikeHandler serves recipe likes
type LikeHandler struct {
	likes service.ILikeService
	auth  middleware.TokenValidator
}

// NewLikeHandler creates a new LikeHandler instance
func NewLikeHandler(likes service.ILikeService, auth middleware.TokenValidator) *LikeHandler {
	return &LikeHandler{
		likes: likes,
		auth:  auth,
	}
}

func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.auth))
	{
		recipes.GET("/:id/like/", h.respond(h.likes.LikeStatus))
		recipes.POST("/:id/like/", h.respond(h.likes.Like))
		recipes.DELETE("/:id/like/", h.respond(h.likes.Unlike))
	}
}

// respond runs op for the caller and the recipe in the path and writes the resulting
// like status
func (h *LikeHandler) respond(op func(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}

		status, err := op(c.Request.Context(), callerID(c), recipeID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
