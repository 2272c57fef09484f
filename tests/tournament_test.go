package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamentHttp "github.com/courtwala/courtwala-backend/internal/tournament/http"
	"github.com/courtwala/courtwala-backend/internal/user"
)

func TestTournamentLifecycle(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "admin@tour.com", "pass", user.RoleAdmin)
	alice := createTestUser(t, "alice@tour.com", "pass", user.RolePlayer)
	bob := createTestUser(t, "bob@tour.com", "pass", user.RolePlayer)
	carol := createTestUser(t, "carol@tour.com", "pass", user.RolePlayer)

	adminToken := generateToken(t, admin)
	aliceToken := generateToken(t, alice)
	bobToken := generateToken(t, bob)
	carolToken := generateToken(t, carol)

	start := time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02")
	end := time.Now().UTC().AddDate(0, 0, 15).Format("2006-01-02")

	var tournamentID string

	t.Run("Create Tournament: Admin Only", func(t *testing.T) {
		payload := tournamentHttp.CreateTournamentRequest{
			Name:            "Summer Smash",
			Sport:           "badminton",
			StartDate:       start,
			EndDate:         end,
			MaxParticipants: 2,
		}

		// Players cannot create tournaments
		wPlayer := executeRequest("POST", "/v1/admin/tournaments", payload, aliceToken)
		assert.Equal(t, http.StatusForbidden, wPlayer.Code)

		// End before start is rejected
		wBad := executeRequest("POST", "/v1/admin/tournaments", tournamentHttp.CreateTournamentRequest{
			Name: "Backwards", Sport: "tennis", StartDate: end, EndDate: start, MaxParticipants: 2,
		}, adminToken)
		assert.Equal(t, http.StatusUnprocessableEntity, wBad.Code)

		w := executeRequest("POST", "/v1/admin/tournaments", payload, adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp tournamentHttp.TournamentResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "upcoming", resp.Status)
		assert.Equal(t, 0, resp.CurrentParticipants)
		tournamentID = resp.ID
	})

	t.Run("Browse Tournaments: Public", func(t *testing.T) {
		w := executeRequest("GET", "/v1/tournaments?sport=badminton", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Join: Capacity and Duplicates", func(t *testing.T) {
		joinPath := fmt.Sprintf("/v1/tournaments/%s/join", tournamentID)

		// Alice joins
		wAlice := executeRequest("POST", joinPath, nil, aliceToken)
		require.Equal(t, http.StatusOK, wAlice.Code)
		var resp tournamentHttp.TournamentResponse
		json.Unmarshal(wAlice.Body.Bytes(), &resp)
		assert.Equal(t, 1, resp.CurrentParticipants)

		// Alice cannot join twice
		wAgain := executeRequest("POST", joinPath, nil, aliceToken)
		assert.Equal(t, http.StatusConflict, wAgain.Code)

		// Bob fills the last seat
		wBob := executeRequest("POST", joinPath, nil, bobToken)
		require.Equal(t, http.StatusOK, wBob.Code)

		// Carol is turned away: full
		wCarol := executeRequest("POST", joinPath, nil, carolToken)
		assert.Equal(t, http.StatusConflict, wCarol.Code, "Join beyond capacity should fail")
	})

	t.Run("Leave: Frees a Seat", func(t *testing.T) {
		leavePath := fmt.Sprintf("/v1/tournaments/%s/leave", tournamentID)
		joinPath := fmt.Sprintf("/v1/tournaments/%s/join", tournamentID)

		// Carol never joined, so leaving fails
		wCarol := executeRequest("POST", leavePath, nil, carolToken)
		assert.Equal(t, http.StatusBadRequest, wCarol.Code)

		// Bob leaves, Carol takes the seat
		wBob := executeRequest("POST", leavePath, nil, bobToken)
		require.Equal(t, http.StatusOK, wBob.Code)

		wCarolJoin := executeRequest("POST", joinPath, nil, carolToken)
		assert.Equal(t, http.StatusOK, wCarolJoin.Code)
	})

	t.Run("Delete: Refused While Participants Remain", func(t *testing.T) {
		path := fmt.Sprintf("/v1/admin/tournaments/%s", tournamentID)

		w := executeRequest("DELETE", path, nil, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Tournament with participants must not be deletable")

		// Everyone leaves, then deletion succeeds
		leavePath := fmt.Sprintf("/v1/tournaments/%s/leave", tournamentID)
		require.Equal(t, http.StatusOK, executeRequest("POST", leavePath, nil, aliceToken).Code)
		require.Equal(t, http.StatusOK, executeRequest("POST", leavePath, nil, carolToken).Code)

		wEmpty := executeRequest("DELETE", path, nil, adminToken)
		assert.Equal(t, http.StatusOK, wEmpty.Code)
	})
}
