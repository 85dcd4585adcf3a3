package types

import (
	"time"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// Recipe is the wire representation of a recipe. Author, AuthorUsername, ID and
// CreatedAt are server controlled.
type Recipe struct {
	ID             uint                     `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	PrepTime       int                      `json:"prep_time"`
	CookTime       int                      `json:"cook_time"`
	ImageURL       string                   `json:"image_url"`
	Tags           []string                 `json:"tags"`
	Ingredients    []map[string]interface{} `json:"ingredients"`
	Instructions   []map[string]interface{} `json:"instructions"`
	CreatedAt      time.Time                `json:"created_at"`
	Author         uint                     `json:"author"`
	AuthorUsername string                   `json:"author_username"`
}

// NewRecipe serializes a stored recipe. The Author association must be loaded for
// AuthorUsername to be filled.
func NewRecipe(r *models.Recipe) Recipe {
	out := Recipe{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		PrepTime:       r.PrepTime,
		CookTime:       r.CookTime,
		ImageURL:       r.ImageURL,
		Tags:           []string(r.Tags),
		Ingredients:    []map[string]interface{}(r.Ingredients),
		Instructions:   []map[string]interface{}(r.Instructions),
		CreatedAt:      r.CreatedAt,
		Author:         r.AuthorID,
		AuthorUsername: r.Author.Username,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Ingredients == nil {
		out.Ingredients = []map[string]interface{}{}
	}
	if out.Instructions == nil {
		out.Instructions = []map[string]interface{}{}
	}
	return out
}

// NewRecipeList serializes recipes preserving order.
func NewRecipeList(recipes []models.Recipe) []Recipe {
	out := make([]Recipe, len(recipes))
	for i := range recipes {
		out[i] = NewRecipe(&recipes[i])
	}
	return out
}

// RecipeInput holds the client-writable recipe fields. A nil field was not present
// in the request and leaves the stored value untouched.
type RecipeInput struct {
	Title        *string                   `json:"title"`
	Description  *string                   `json:"description"`
	PrepTime     *int                      `json:"prep_time"`
	CookTime     *int                      `json:"cook_time"`
	ImageURL     *string                   `json:"image_url"`
	Tags         *[]string                 `json:"tags"`
	Ingredients  *[]map[string]interface{} `json:"ingredients"`
	Instructions *[]map[string]interface{} `json:"instructions"`
}

// ApplyTo copies every present field onto r.
func (in *RecipeInput) ApplyTo(r *models.Recipe) {
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.PrepTime != nil {
		r.PrepTime = *in.PrepTime
	}
	if in.CookTime != nil {
		r.CookTime = *in.CookTime
	}
	if in.ImageURL != nil {
		r.ImageURL = *in.ImageURL
	}
	if in.Tags != nil {
		r.Tags = models.JSONBStringArray(*in.Tags)
	}
	if in.Ingredients != nil {
		r.Ingredients = models.JSONObjectList(*in.Ingredients)
	}
	if in.Instructions != nil {
		r.Instructions = models.JSONObjectList(*in.Instructions)
	}
	if r.Tags == nil {
		r.Tags = models.JSONBStringArray{}
	}
}
