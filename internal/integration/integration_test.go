package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipeshare/backend/internal/database/migrations"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// setupServer runs the SQL migrations on a fresh postgres, connects Redis for rate
// limiting and serves the full router over HTTP.
func setupServer(t *testing.T, createPerHour int) *httptest.Server {
	dsn := testhelpers.StartPostgres(t)
	redisClient := testhelpers.StartRedis(t)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer sqlDB.Close()
	if _, err := migrations.Up(context.Background(), sqlDB); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("failed to load schemas: %v", err)
	}

	gin.SetMode(gin.TestMode)
	handler := router.SetupRouter(router.Dependencies{
		DB:              db,
		AuthService:     testhelpers.NewTestAuthService(db),
		RecipeService:   service.NewRecipeService(db),
		ProfileService:  service.NewProfileService(db),
		CommentService:  service.NewCommentService(db),
		LikeService:     service.NewLikeService(db),
		Validator:       validator,
		Redis:           redisClient,
		Registry:        prometheus.NewRegistry(),
		RecipeCreateRPH: createPerHour,
		RecipeModifyRPH: 100,
	})

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "password"}
	if code := call(t, ts, http.MethodPost, "/api/register/", "", creds, nil); code != http.StatusCreated {
		t.Fatalf("register failed: %d", code)
	}
	var pair types.TokenPair
	if code := call(t, ts, http.MethodPost, "/api/token/", "", creds, &pair); code != http.StatusOK {
		t.Fatalf("login failed: %d", code)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("no tokens returned")
	}
	return pair.Access
}

func recipeBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"description":  "Integration recipe",
		"prep_time":    5,
		"cook_time":    10,
		"image_url":    "https://img.example.com/r.jpg",
		"ingredients":  []map[string]interface{}{{"name": "egg", "qty": 2}},
		"instructions": []map[string]interface{}{{"step": 1, "text": "Cook"}},
	}
}

func TestIntegrationRegisterLoginCreateModify(t *testing.T) {
	ts := setupServer(t, 2)
	token := login(t, ts, "tester")
	intruder := login(t, ts, "intruder")

	var first, second types.Recipe
	if code := call(t, ts, http.MethodPost, "/api/recipes/", token, recipeBody("First"), &first); code != http.StatusCreated {
		t.Fatalf("create recipe failed: %d", code)
	}
	if code := call(t, ts, http.MethodPost, "/api/recipes/", token, recipeBody("Second"), &second); code != http.StatusCreated {
		t.Fatalf("create second recipe failed: %d", code)
	}
	if code := call(t, ts, http.MethodPost, "/api/recipes/", token, recipeBody("Third"), nil); code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limit, got %d", code)
	}

	var list []types.Recipe
	if code := call(t, ts, http.MethodGet, "/api/recipes/", token, nil, &list); code != http.StatusOK {
		t.Fatalf("list failed: %d", code)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("unexpected list order: %+v", list)
	}

	var updated types.Recipe
	path := fmt.Sprintf("/api/recipes/update/%d/", first.ID)
	if code := call(t, ts, http.MethodPatch, path, token, map[string]string{"title": "Updated"}, &updated); code != http.StatusOK {
		t.Fatalf("modify recipe failed: %d", code)
	}
	if updated.Title != "Updated" || updated.Description != "Integration recipe" {
		t.Fatalf("recipe not updated: %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0]["qty"] != float64(2) {
		t.Fatalf("ingredients changed: %+v", updated.Ingredients)
	}

	if code := call(t, ts, http.MethodPatch, path, intruder, map[string]string{"title": "Mine"}, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owner, got %d", code)
	}

	del := fmt.Sprintf("/api/recipes/delete/%d/", first.ID)
	if code := call(t, ts, http.MethodDelete, del, intruder, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owner delete, got %d", code)
	}
	if code := call(t, ts, http.MethodDelete, del, token, nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", code)
	}
	if code := call(t, ts, http.MethodGet, fmt.Sprintf("/api/recipes/%d/", first.ID), token, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestIntegrationDuplicateRegistration(t *testing.T) {
	ts := setupServer(t, 10)
	login(t, ts, "taken")

	var resp struct {
		Fields map[string][]string `json:"fields"`
	}
	creds := map[string]string{"username": "taken", "password": "other"}
	if code := call(t, ts, http.MethodPost, "/api/register/", "", creds, &resp); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if len(resp.Fields["username"]) == 0 {
		t.Fatalf("expected username error, got %+v", resp.Fields)
	}
}
