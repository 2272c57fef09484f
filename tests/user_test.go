package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtwala/courtwala-backend/internal/pkg/response"
	"github.com/courtwala/courtwala-backend/internal/user"
	userHttp "github.com/courtwala/courtwala-backend/internal/user/http"
)

func TestUserRegistrationAndLogin(t *testing.T) {
	clearTables()

	t.Run("Register: Player Defaults", func(t *testing.T) {
		w := executeRequest("POST", "/v1/auth/register", userHttp.RegisterRequest{
			Email:     "player@users.com",
			Password:  "password123",
			FirstName: "Pat",
			LastName:  "Player",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp userHttp.TokenResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "player", resp.User.Role)
		assert.Equal(t, "active", resp.User.Status)

		// The issued token works against /auth/me
		wMe := executeRequest("GET", "/v1/auth/me", nil, resp.Token)
		assert.Equal(t, http.StatusOK, wMe.Code)
	})

	t.Run("Register: Court Owner Needs Approval", func(t *testing.T) {
		w := executeRequest("POST", "/v1/auth/register", userHttp.RegisterRequest{
			Email:     "owner@users.com",
			Password:  "password123",
			FirstName: "Olive",
			LastName:  "Owner",
			Role:      "court_owner",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp userHttp.TokenResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "court_owner", resp.User.Role)
		assert.Equal(t, "pending_approval", resp.User.Status)
	})

	t.Run("Register: Rejections", func(t *testing.T) {
		// Duplicate email
		wDup := executeRequest("POST", "/v1/auth/register", userHttp.RegisterRequest{
			Email: "player@users.com", Password: "password123", FirstName: "A", LastName: "B",
		}, "")
		assert.Equal(t, http.StatusConflict, wDup.Code)

		// Admin role cannot be self-registered
		wAdmin := executeRequest("POST", "/v1/auth/register", userHttp.RegisterRequest{
			Email: "evil@users.com", Password: "password123", FirstName: "A", LastName: "B", Role: "admin",
		}, "")
		assert.Equal(t, http.StatusForbidden, wAdmin.Code)

		// Password too short is caught by binding, with the field named
		wShort := executeRequest("POST", "/v1/auth/register", userHttp.RegisterRequest{
			Email: "short@users.com", Password: "short", FirstName: "A", LastName: "B",
		}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, wShort.Code)
		var shortBody struct {
			Fields map[string]string `json:"fields"`
		}
		json.Unmarshal(wShort.Body.Bytes(), &shortBody)
		assert.Contains(t, shortBody.Fields, "password")
	})

	t.Run("Login", func(t *testing.T) {
		// Correct credentials
		w := executeRequest("POST", "/v1/auth/login", userHttp.LoginRequest{
			Login: "player@users.com", Password: "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp userHttp.TokenResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.NotEmpty(t, resp.Token)

		// Wrong password
		wBad := executeRequest("POST", "/v1/auth/login", userHttp.LoginRequest{
			Login: "player@users.com", Password: "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, wBad.Code)

		// Unknown account gets the same response as a bad password
		wUnknown := executeRequest("POST", "/v1/auth/login", userHttp.LoginRequest{
			Login: "nobody@users.com", Password: "password123",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	})
}

func TestAdminUserModeration(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "admin@mod.com", "pass", user.RoleAdmin)
	player := createTestUser(t, "player@mod.com", "pass", user.RolePlayer)
	adminToken := generateToken(t, admin)
	playerToken := generateToken(t, player)

	// Register a court owner through the API so they start pending
	wReg := executeRequest("POST", "/v1/auth/register", userHttp.RegisterRequest{
		Email: "owner@mod.com", Password: "password123", FirstName: "Olive", LastName: "Owner", Role: "court_owner",
	}, "")
	require.Equal(t, http.StatusCreated, wReg.Code)
	var regResp userHttp.TokenResponse
	json.Unmarshal(wReg.Body.Bytes(), &regResp)
	ownerID := regResp.User.ID

	t.Run("Admin Directory Access", func(t *testing.T) {
		// Players cannot list users
		wPlayer := executeRequest("GET", "/v1/admin/users", nil, playerToken)
		assert.Equal(t, http.StatusForbidden, wPlayer.Code)

		// Admin can, with role filtering
		wAdmin := executeRequest("GET", "/v1/admin/users?role=court_owner", nil, adminToken)
		require.Equal(t, http.StatusOK, wAdmin.Code)
		var body response.PageResponse[userHttp.UserResponse]
		json.Unmarshal(wAdmin.Body.Bytes(), &body)
		assert.Equal(t, 1, body.Pagination.Total)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "owner@mod.com", body.Items[0].Email)
	})

	t.Run("Approve Pending Owner", func(t *testing.T) {
		path := fmt.Sprintf("/v1/admin/users/%s/status", ownerID)

		w := executeRequest("PATCH", path, userHttp.UpdateStatusRequest{Status: "active"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp userHttp.UserResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("Blocked User Cannot Log In", func(t *testing.T) {
		path := fmt.Sprintf("/v1/admin/users/%s/status", ownerID)
		w := executeRequest("PATCH", path, userHttp.UpdateStatusRequest{Status: "blocked"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		wLogin := executeRequest("POST", "/v1/auth/login", userHttp.LoginRequest{
			Login: "owner@mod.com", Password: "password123",
		}, "")
		assert.Equal(t, http.StatusForbidden, wLogin.Code)
	})
}
