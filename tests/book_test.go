package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/courtwala/courtwala-backend/internal/booking/http"
	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/user"
)

func TestBookingLifecycleAndPermissions(t *testing.T) {
	clearTables()

	// ==== Setup Users & Tokens ====
	admin := createTestUser(t, "admin@book.com", "pass", user.RoleAdmin)

	// Owner A runs the court being booked; Owner B owns an unrelated court.
	ownerA := createTestUser(t, "owner.a@book.com", "pass", user.RoleCourtOwner)
	ownerB := createTestUser(t, "owner.b@book.com", "pass", user.RoleCourtOwner)

	// Player makes the booking; stranger is an unrelated player.
	player := createTestUser(t, "player@book.com", "pass", user.RolePlayer)
	stranger := createTestUser(t, "stranger@book.com", "pass", user.RolePlayer)

	adminToken := generateToken(t, admin)
	ownerAToken := generateToken(t, ownerA)
	ownerBToken := generateToken(t, ownerB)
	playerToken := generateToken(t, player)
	strangerToken := generateToken(t, stranger)

	courtA := createTestCourt(t, ownerA.ID, "Center Court A", court.StatusActive)
	createTestCourt(t, ownerB.ID, "Center Court B", court.StatusActive)
	closedCourt := createTestCourt(t, ownerA.ID, "Closed Court", court.StatusInactive)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	var bookingID string

	// ==== Create Booking Tests (Input Validation & Business Logic) ====

	t.Run("Create Booking: Invalid Input Format", func(t *testing.T) {
		// Case: Missing court ID
		w := executeRequest("POST", "/v1/bookings", map[string]any{
			"date": tomorrow, "startTime": "10:00", "endTime": "11:00",
		}, playerToken)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "Should return 422 for missing required fields")

		var missing struct {
			Fields map[string]string `json:"fields"`
		}
		json.Unmarshal(w.Body.Bytes(), &missing)
		assert.Equal(t, "is required", missing.Fields["courtId"], "422 body should name the offending field")

		// Case: Invalid UUID for court ID
		wUUID := executeRequest("POST", "/v1/bookings", map[string]any{
			"courtId": "not-a-uuid", "date": tomorrow, "startTime": "10:00", "endTime": "11:00",
		}, playerToken)
		assert.Equal(t, http.StatusUnprocessableEntity, wUUID.Code, "Should return 422 for invalid UUID")

		// Case: Invalid clock format
		wTime := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "ten", EndTime: "eleven",
		}, playerToken)
		assert.Equal(t, http.StatusUnprocessableEntity, wTime.Code, "Should return 422 for invalid time format")

		var badClock struct {
			Fields map[string]string `json:"fields"`
		}
		json.Unmarshal(wTime.Body.Bytes(), &badClock)
		assert.Contains(t, badClock.Fields, "startTime")
	})

	t.Run("Create Booking: Business Logic Rejections", func(t *testing.T) {
		// Case: End before start
		wRange := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "11:00", EndTime: "10:00",
		}, playerToken)
		assert.Equal(t, http.StatusUnprocessableEntity, wRange.Code, "Should return 422 for inverted time range")

		// Case: Date in the past
		wPast := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: yesterday, StartTime: "10:00", EndTime: "11:00",
		}, playerToken)
		assert.Equal(t, http.StatusUnprocessableEntity, wPast.Code, "Should return 422 when booking in the past")

		var errResp map[string]string
		json.Unmarshal(wPast.Body.Bytes(), &errResp)
		assert.Contains(t, errResp["error"], "past", "Error message should explain the past date restriction")

		// Case: Inactive court
		wClosed := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: closedCourt.ID, Date: tomorrow, StartTime: "10:00", EndTime: "11:00",
		}, playerToken)
		assert.Equal(t, http.StatusBadRequest, wClosed.Code, "Should return 400 for inactive court")
	})

	t.Run("Create Booking: Success", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "10:00", EndTime: "11:00",
		}, playerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, courtA.ID, resp.CourtID)
		assert.Equal(t, player.ID, resp.PlayerID)
		assert.Equal(t, "pending", resp.Status)

		bookingID = resp.ID
	})

	t.Run("Create Booking: Conflict", func(t *testing.T) {
		// Exact same range by a different player
		w := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "10:00", EndTime: "11:00",
		}, strangerToken)
		assert.Equal(t, http.StatusConflict, w.Code, "Should return 409 for overlapping booking")

		// Partial overlap starting inside the existing booking
		wPartial := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "10:30", EndTime: "11:30",
		}, strangerToken)
		assert.Equal(t, http.StatusConflict, wPartial.Code, "Should return 409 for partial overlap")

		// Touching range is not an overlap
		wTouch := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "11:00", EndTime: "12:00",
		}, strangerToken)
		assert.Equal(t, http.StatusCreated, wTouch.Code, "A booking starting exactly at the other's end should succeed")
	})

	// ==== List Bookings: role scoping ====

	t.Run("List Bookings: Visibility", func(t *testing.T) {
		// Player sees only their own booking
		wPlayer := executeRequest("GET", "/v1/bookings", nil, playerToken)
		assert.Equal(t, http.StatusOK, wPlayer.Code)
		var respPlayer bookingHttp.ListBookingsResponse
		json.Unmarshal(wPlayer.Body.Bytes(), &respPlayer)
		require.Len(t, respPlayer.Bookings, 1)
		assert.Equal(t, bookingID, respPlayer.Bookings[0].ID)

		// Owner A sees bookings on their courts (both players' bookings)
		wOwnerA := executeRequest("GET", "/v1/bookings", nil, ownerAToken)
		assert.Equal(t, http.StatusOK, wOwnerA.Code)
		var respOwnerA bookingHttp.ListBookingsResponse
		json.Unmarshal(wOwnerA.Body.Bytes(), &respOwnerA)
		assert.Equal(t, 2, respOwnerA.Pagination.Total)

		// Owner B has no bookings on their court
		wOwnerB := executeRequest("GET", "/v1/bookings", nil, ownerBToken)
		assert.Equal(t, http.StatusOK, wOwnerB.Code)
		var respOwnerB bookingHttp.ListBookingsResponse
		json.Unmarshal(wOwnerB.Body.Bytes(), &respOwnerB)
		assert.Equal(t, 0, respOwnerB.Pagination.Total)

		// Admin sees everything, optionally filtered by status
		wAdmin := executeRequest("GET", "/v1/bookings?status=pending", nil, adminToken)
		assert.Equal(t, http.StatusOK, wAdmin.Code)
		var respAdmin bookingHttp.ListBookingsResponse
		json.Unmarshal(wAdmin.Body.Bytes(), &respAdmin)
		assert.Equal(t, 2, respAdmin.Pagination.Total)
	})

	// ==== Get Single Booking: permission matrix ====

	t.Run("Get Booking: Permission Matrix", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s", bookingID)

		// Player who booked -> OK
		wPlayer := executeRequest("GET", path, nil, playerToken)
		assert.Equal(t, http.StatusOK, wPlayer.Code)

		// Owner of the court -> OK
		wOwnerA := executeRequest("GET", path, nil, ownerAToken)
		assert.Equal(t, http.StatusOK, wOwnerA.Code, "Court owner should view bookings on their court")

		// Owner of a different court -> Forbidden
		wOwnerB := executeRequest("GET", path, nil, ownerBToken)
		assert.Equal(t, http.StatusForbidden, wOwnerB.Code, "Unrelated owner cannot view the booking")

		// Admin -> OK
		wAdmin := executeRequest("GET", path, nil, adminToken)
		assert.Equal(t, http.StatusOK, wAdmin.Code)

		// Stranger -> Forbidden
		wStranger := executeRequest("GET", path, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, wStranger.Code, "Stranger should not view others' bookings")

		// No token -> Unauthorized
		wAnon := executeRequest("GET", path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, wAnon.Code)
	})

	// ==== Approve / Reject ====

	t.Run("Approve Booking: Permissions and State", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s/approve", bookingID)

		// Player cannot approve their own booking
		wPlayer := executeRequest("POST", path, nil, playerToken)
		assert.Equal(t, http.StatusForbidden, wPlayer.Code)

		// Unrelated owner cannot approve
		wOwnerB := executeRequest("POST", path, nil, ownerBToken)
		assert.Equal(t, http.StatusForbidden, wOwnerB.Code)

		// Court owner approves
		wOwnerA := executeRequest("POST", path, nil, ownerAToken)
		require.Equal(t, http.StatusOK, wOwnerA.Code)
		var resp bookingHttp.BookingResponse
		json.Unmarshal(wOwnerA.Body.Bytes(), &resp)
		assert.Equal(t, "confirmed", resp.Status)

		// Approving again is rejected, not a silent no-op
		wAgain := executeRequest("POST", path, nil, ownerAToken)
		assert.Equal(t, http.StatusBadRequest, wAgain.Code, "Repeated approve should fail once confirmed")

		// A confirmed booking cannot be rejected
		wReject := executeRequest("POST", fmt.Sprintf("/v1/bookings/%s/reject", bookingID), nil, ownerAToken)
		assert.Equal(t, http.StatusBadRequest, wReject.Code)
	})

	// ==== Cancel ====

	t.Run("Cancel Booking", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s/cancel", bookingID)

		// Stranger cannot cancel
		wStranger := executeRequest("POST", path, nil, strangerToken)
		assert.Equal(t, http.StatusForbidden, wStranger.Code)

		// Player cancels their confirmed booking
		wPlayer := executeRequest("POST", path, nil, playerToken)
		require.Equal(t, http.StatusOK, wPlayer.Code)
		var resp bookingHttp.BookingResponse
		json.Unmarshal(wPlayer.Body.Bytes(), &resp)
		assert.Equal(t, "cancelled", resp.Status)

		// Cancelling again fails: cancelled is terminal
		wAgain := executeRequest("POST", path, nil, playerToken)
		assert.Equal(t, http.StatusBadRequest, wAgain.Code)

		// The freed range can be booked again
		wRebook := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "10:00", EndTime: "11:00",
		}, strangerToken)
		assert.Equal(t, http.StatusCreated, wRebook.Code, "Cancelled booking should free the range")
	})

	// ==== Owner stats ====

	t.Run("Owner Booking Stats", func(t *testing.T) {
		w := executeRequest("GET", "/v1/owner/bookings/stats", nil, ownerAToken)
		require.Equal(t, http.StatusOK, w.Code)

		var stats bookingHttp.OwnerStatsResponse
		json.Unmarshal(w.Body.Bytes(), &stats)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Pending)
		assert.Equal(t, 1, stats.Cancelled)

		// Players cannot reach the owner stats endpoint
		wPlayer := executeRequest("GET", "/v1/owner/bookings/stats", nil, playerToken)
		assert.Equal(t, http.StatusForbidden, wPlayer.Code)
	})

	// ==== Concurrency: at most one of N identical creates wins ====

	t.Run("Concurrent Identical Creates: Single Winner", func(t *testing.T) {
		const attempts = 8

		payload := bookingHttp.CreateBookingRequest{
			CourtID: courtA.ID, Date: tomorrow, StartTime: "14:00", EndTime: "15:00",
		}

		codes := make(chan int, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := executeRequest("POST", "/v1/bookings", payload, playerToken)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		created, conflicted := 0, 0
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Fatalf("unexpected status %d from concurrent create", code)
			}
		}
		assert.Equal(t, 1, created, "exactly one concurrent create may succeed")
		assert.Equal(t, attempts-1, conflicted, "all other attempts must observe the conflict")
	})
}
