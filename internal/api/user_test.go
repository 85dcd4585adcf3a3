package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/testhelpers"
	"github.com/pageza/recipeshare/backend/internal/types"
)

func TestGetUser(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := testhelpers.CreateTestUserAndToken(t, env.db)
	other := testhelpers.CreateTestUser(t, env.db)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/user/%d/", other.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got types.UserDetail
	decode(t, w, &got)
	assert.Equal(t, other.ID, got.ID)
	assert.Equal(t, other.Username, got.Username)
	assert.Contains(t, w.Body.String(), `"profile"`)

	w = env.request(t, http.MethodGet, "/api/user/9999/", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/user/%d/", other.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateOwnProfile(t *testing.T) {
	env := setupTestRouter(t, nil)
	user, token := testhelpers.CreateTestUserAndToken(t, env.db)
	path := fmt.Sprintf("/api/user/%d/", user.ID)

	w := env.request(t, http.MethodPatch, path, token, map[string]interface{}{
		"username": "renamed",
		"profile":  map[string]string{"display_name": "Chef", "bio": "Cooks things"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got types.UserDetail
	decode(t, w, &got)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, "Chef", got.Profile.DisplayName)
	assert.Equal(t, "Cooks things", got.Profile.Bio)

	w = env.request(t, http.MethodPatch, path, token, map[string]interface{}{
		"profile": map[string]string{"bio": "Bakes things"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &got)
	assert.Equal(t, "Chef", got.Profile.DisplayName)
	assert.Equal(t, "Bakes things", got.Profile.Bio)
}

func TestUpdateProfileValidation(t *testing.T) {
	env := setupTestRouter(t, nil)
	user, token := testhelpers.CreateTestUserAndToken(t, env.db)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/user/%d/", user.ID), token, map[string]interface{}{
		"profile": map[string]string{"display_name": string(long)},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "display_name")
}

func TestUpdateOtherUsersProfile(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := testhelpers.CreateTestUserAndToken(t, env.db)
	other := testhelpers.CreateTestUser(t, env.db)

	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/user/%d/", other.ID), token, map[string]interface{}{
		"profile": map[string]string{"display_name": "Hacked"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/user/%d/", other.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got types.UserDetail
	decode(t, w, &got)
	assert.Empty(t, got.Profile.DisplayName)
}
