package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// ValidationErrorResponse is returned for rejected payloads
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func init() {
	// report binding errors under the json names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError maps service errors onto status codes. Unexpected errors are logged
// and hidden from the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Invalid input.", Fields: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "Not found."})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: err.Error()})
	default:
		logger.FromContext(c.Request.Context()).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
	}
}

// bindError converts a gin binding failure into a ValidationError
func bindError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return service.FieldError(schema.NonFieldErrors, "Malformed JSON request body.")
	}

	verr := service.NewValidationError()
	for _, fe := range ves {
		verr.Add(fieldPath(fe), fieldMessage(fe))
	}
	return verr
}

// fieldPath drops the request struct name from the namespace, so nested fields
// read as profile.display_name.
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fe.Error()
	}
}
