package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// CommentHandler serves the comments of recipes
type CommentHandler struct {
	comments service.ICommentService
	auth     middleware.TokenValidator
}

// NewCommentHandler creates a new CommentHandler instance
func NewCommentHandler(comments service.ICommentService, auth middleware.TokenValidator) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		auth:     auth,
	}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.auth))
	{
		recipes.GET("/:id/comments/", h.ListComments)
		recipes.POST("/:id/comments/", h.CreateComment)
	}

	comments := router.Group("/comments")
	comments.Use(middleware.AuthMiddleware(h.auth))
	comments.DELETE("/:id/", h.DeleteComment)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	recipeID, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewCommentList(comments))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	recipeID, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), callerID(c), recipeID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewComment(comment))
}

// DeleteComment removes one of the caller's own comments
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), callerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
