package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecipe = `{
	"title": "Pancakes",
	"description": "Fluffy",
	"prep_time": 10,
	"cook_time": 15,
	"image_url": "https://img.example.com/p.jpg",
	"tags": ["breakfast"],
	"ingredients": [{"name": "flour", "quantity": 200, "unit": "g"}],
	"instructions": [{"step": 1, "text": "Mix"}]
}`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidateAcceptsCompleteRecipe(t *testing.T) {
	v := newTestValidator(t)

	fields, err := v.Validate([]byte(validRecipe), RecipeSchema)
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestValidateReportsMissingFields(t *testing.T) {
	v := newTestValidator(t)

	fields, err := v.Validate([]byte(`{"description": "no title"}`), RecipeSchema)
	require.NoError(t, err)
	require.NotNil(t, fields)

	for _, name := range []string{"title", "prep_time", "cook_time", "image_url", "ingredients", "instructions"} {
		assert.Contains(t, fields, name)
	}
	assert.NotContains(t, fields, "description")
	assert.NotContains(t, fields, "tags")
	assert.Equal(t, []string{requiredMessage}, fields["title"])
}

func TestValidateFieldConstraints(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"title too long", `{"title": "` + longString(101) + `"}`, "title"},
		{"empty title", `{"title": ""}`, "title"},
		{"negative prep time", `{"prep_time": -1}`, "prep_time"},
		{"fractional cook time", `{"cook_time": 1.5}`, "cook_time"},
		{"relative image url", `{"image_url": "/img.png"}`, "image_url"},
		{"non http image url", `{"image_url": "ftp://example.com/a.png"}`, "image_url"},
		{"tag not a string", `{"tags": [1]}`, "tags"},
		{"ingredient not an object", `{"ingredients": ["flour"]}`, "ingredients"},
		{"null title", `{"title": null}`, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := v.Validate([]byte(tt.body), RecipePatchSchema)
			require.NoError(t, err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidatePatchAllowsPartialDocument(t *testing.T) {
	v := newTestValidator(t)

	fields, err := v.Validate([]byte(`{"title": "New title"}`), RecipePatchSchema)
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestValidateNonObjectBody(t *testing.T) {
	v := newTestValidator(t)

	fields, err := v.Validate([]byte(`[1, 2]`), RecipeSchema)
	require.NoError(t, err)
	assert.Contains(t, fields, NonFieldErrors)
}

func TestValidateMalformedJSON(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate([]byte(`{"title":`), RecipeSchema)
	assert.Error(t, err)
}

func TestValidateUnknownSchema(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate([]byte(`{}`), "https://recipeshare.local/schemas/none.json")
	assert.Error(t, err)
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
