package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

type testEnv struct {
	db     *testhelpers.TestDatabase
	router *gin.Engine
}

func setupTestRouter(t *testing.T, images service.IImageService) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDatabase(t)
	validator, err := schema.NewValidator()
	require.NoError(t, err)

	deps := router.Dependencies{
		DB:             db.DB,
		AuthService:    db.AuthService,
		RecipeService:  service.NewRecipeService(db.DB),
		ProfileService: service.NewProfileService(db.DB),
		CommentService: service.NewCommentService(db.DB),
		LikeService:    service.NewLikeService(db.DB),
		Validator:      validator,
		Registry:       prometheus.NewRegistry(),
	}
	if images != nil {
		deps.ImageService = images
	}

	return &testEnv{db: db, router: router.SetupRouter(deps)}
}

// request sends body as JSON, a string body is sent verbatim
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func validRecipeBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Pancakes",
		"description":  "Fluffy pancakes",
		"prep_time":    10,
		"cook_time":    15,
		"image_url":    "https://img.example.com/pancakes.jpg",
		"tags":         []string{"breakfast"},
		"ingredients":  []map[string]interface{}{{"name": "flour", "quantity": 200, "unit": "g"}},
		"instructions": []map[string]interface{}{{"step": 1, "text": "Mix everything"}},
	}
}
