package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// multipart overhead allowed on top of the image itself
const uploadOverhead = 64 << 10

// ImageHandler accepts recipe image uploads
type ImageHandler struct {
	images service.IImageService
	auth   middleware.TokenValidator
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(images service.IImageService, auth middleware.TokenValidator) *ImageHandler {
	return &ImageHandler{
		images: images,
		auth:   auth,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	uploads := router.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware(h.auth))
	{
		uploads.POST("/images/", h.UploadImage)
	}
}

// UploadImage stores the multipart field "image" and returns its public URL
func (h *ImageHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+uploadOverhead)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, service.FieldError("image", "Ensure the file is at most 5 MB."))
			return
		}
		respondError(c, service.FieldError("image", "No file was submitted."))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	url, err := h.images.UploadRecipeImage(c.Request.Context(), callerID(c), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}
