package controllers_test

import (
	"fmt"
	"legal-aid-api/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserListIsAdminOnly(t *testing.T) {
	router, _ := setupTestAPI(t)
	advocate := createUser(t, "ana@aid.org", "Ana Mercado", models.RoleAdvocate)
	admin := createUser(t, "root@aid.org", "Admin", models.RoleAdmin)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users", tokenFor(t, advocate), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	w = doJSON(t, router, http.MethodGet, "/api/v1/users", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody(t, w)["users"].([]interface{})
	assert.Len(t, users, 2)
}

func TestAdminDeactivatesAdvocate(t *testing.T) {
	router, _ := setupTestAPI(t)
	advocate := createUser(t, "ana@aid.org", "Ana Mercado", models.RoleAdvocate)
	admin := createUser(t, "root@aid.org", "Admin", models.RoleAdmin)
	advocateToken := tokenFor(t, advocate)

	path := fmt.Sprintf("/api/v1/users/%d/active", advocate.UserID)
	w := doJSON(t, router, http.MethodPut, path, tokenFor(t, admin),
		map[string]interface{}{"active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, false, user["active"])

	// The deactivated advocate's token stops working immediately.
	w = doJSON(t, router, http.MethodGet, "/api/v1/profile", advocateToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdvocateCannotToggleAccounts(t *testing.T) {
	router, _ := setupTestAPI(t)
	advocate := createUser(t, "ana@aid.org", "Ana Mercado", models.RoleAdvocate)
	other := createUser(t, "ben@aid.org", "Ben Okoro", models.RoleAdvocate)

	path := fmt.Sprintf("/api/v1/users/%d/active", other.UserID)
	w := doJSON(t, router, http.MethodPut, path, tokenFor(t, advocate),
		map[string]interface{}{"active": false})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}
