package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// maxRecipeBody caps the size of recipe payloads read into memory
const maxRecipeBody = 1 << 20

// RecipeHandler serves the recipe endpoints
type RecipeHandler struct {
	recipes       service.IRecipeService
	auth          middleware.TokenValidator
	validator     *schema.Validator
	createLimiter *middleware.RateLimiter
	modifyLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a RecipeHandler without rate limits
func NewRecipeHandler(recipes service.IRecipeService, auth middleware.TokenValidator, validator *schema.Validator) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		auth:      auth,
		validator: validator,
	}
}

// NewRecipeHandlerWithRateLimit creates a RecipeHandler that limits writes. Nil limiters
// disable the corresponding limit.
func NewRecipeHandlerWithRateLimit(recipes service.IRecipeService, auth middleware.TokenValidator, validator *schema.Validator, createLimiter, modifyLimiter *middleware.RateLimiter) *RecipeHandler {
	h := NewRecipeHandler(recipes, auth, validator)
	h.createLimiter = createLimiter
	h.modifyLimiter = modifyLimiter
	return h
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.auth))
	{
		recipes.GET("/", h.ListRecipes)
		recipes.POST("/", h.limit(h.createLimiter, false), h.CreateRecipe)
		recipes.GET("/:id/", h.GetRecipe)
		recipes.PUT("/update/:id/", h.limit(h.modifyLimiter, true), h.UpdateRecipe)
		recipes.PATCH("/update/:id/", h.limit(h.modifyLimiter, true), h.UpdateRecipe)
		recipes.DELETE("/delete/:id/", h.limit(h.modifyLimiter, true), h.DeleteRecipe)
	}
}

func (h *RecipeHandler) limit(rl *middleware.RateLimiter, perRecipe bool) gin.HandlerFunc {
	switch {
	case rl == nil:
		return func(c *gin.Context) { c.Next() }
	case perRecipe:
		return rl.PerRecipeRateLimitMiddleware()
	default:
		return rl.RateLimitMiddleware()
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeList(recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipe(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	in, err := h.decodeRecipe(c, schema.RecipeSchema)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), callerID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewRecipe(recipe))
}

// UpdateRecipe handles both PUT, which requires every required field, and PATCH,
// which changes only the fields present.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	full := c.Request.Method == http.MethodPut
	schemaID := schema.RecipePatchSchema
	if full {
		schemaID = schema.RecipeSchema
	}
	in, err := h.decodeRecipe(c, schemaID)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), callerID(c), id, in, full)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipe(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), callerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// decodeRecipe validates the request body against schemaID and decodes its writable
// fields. Server controlled fields in the body are dropped by the decode.
func (h *RecipeHandler) decodeRecipe(c *gin.Context, schemaID string) (*types.RecipeInput, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRecipeBody+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxRecipeBody {
		return nil, service.FieldError(schema.NonFieldErrors, "Request body too large.")
	}

	fields, err := h.validator.Validate(body, schemaID)
	if err != nil {
		return nil, service.FieldError(schema.NonFieldErrors, "Malformed JSON request body.")
	}
	if fields != nil {
		return nil, &service.ValidationError{Fields: fields}
	}

	var in types.RecipeInput
	dec := json.NewDecoder(bytes.NewReader(body))
	// quantities in ingredients and instructions keep their exact digits
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, service.FieldError(typeErr.Field, "A valid integer is required.")
		}
		return nil, service.FieldError(schema.NonFieldErrors, "Malformed JSON request body.")
	}
	return &in, nil
}
