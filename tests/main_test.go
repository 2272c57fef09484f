package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/courtwala/courtwala-backend/internal/app"
	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/config"
	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/user"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	jwtManager *auth.JWTManager
)

func TestMain(m *testing.M) {
	// Attempt to load .env from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Fatalf("TEST_DB_DSN environment variable is not set")
	}

	testSecret := os.Getenv("TEST_JWT_SECRET")
	if testSecret == "" {
		log.Fatalf("TEST_JWT_SECRET environment variable is not set")
	}

	uploadDir, err := os.MkdirTemp("", "uploads")
	if err != nil {
		log.Fatalf("Unable to create temp upload dir: %v", err)
	}

	ctx := context.Background()
	container, err := app.NewContainer(ctx, &config.Config{
		DBDSN:             dsn,
		JWTSecret:         testSecret,
		JWTAccessTokenTTL: 30 * time.Minute,
		BcryptCost:        4, // Lower cost for testing purposes
		UploadDir:         uploadDir,
	})
	if err != nil {
		log.Fatalf("Unable to init app: %v", err)
	}

	testRouter = container.Router
	testPool = container.Pool
	jwtManager = container.JWTManager

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	container.Close()
	os.RemoveAll(uploadDir)
	os.Exit(exitCode)
}

func clearTables() {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE public.notifications CASCADE",
		"TRUNCATE TABLE public.reports CASCADE",
		"TRUNCATE TABLE public.match_requests CASCADE",
		"TRUNCATE TABLE public.tournament_participants CASCADE",
		"TRUNCATE TABLE public.tournaments CASCADE",
		"TRUNCATE TABLE public.bookings CASCADE",
		"TRUNCATE TABLE public.slots CASCADE",
		"TRUNCATE TABLE public.courts CASCADE",
		"TRUNCATE TABLE public.announcements CASCADE",
		"TRUNCATE TABLE public.users CASCADE",
	}
	for _, q := range queries {
		_, err := testPool.Exec(ctx, q)
		if err != nil {
			log.Printf("Failed to clean table: %v", err)
		}
	}
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, email, password string, role user.Role) *user.User {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	hash, err := hasher.Hash(password)
	require.NoError(t, err, "Failed to hash password")

	u := &user.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		Status:       user.StatusActive,
	}

	repo := user.NewPgxRepository(testPool)
	err = repo.Create(context.Background(), u)
	require.NoError(t, err, "Failed to create test user in DB")

	return u
}

func createTestCourt(t *testing.T, ownerID, name string, status court.Status) *court.Court {
	c := &court.Court{
		OwnerID:      ownerID,
		Name:         name,
		Address:      "1 Test Street",
		City:         "Testville",
		State:        "TS",
		ZipCode:      "00000",
		Sport:        "badminton",
		PricePerHour: 20,
		Status:       court.StatusPendingApproval,
	}

	repo := court.NewPgxRepository(testPool)
	err := repo.Create(context.Background(), c)
	require.NoError(t, err, "Failed to create test court in DB")

	if status != court.StatusPendingApproval {
		err = repo.SetStatus(context.Background(), c.ID, status)
		require.NoError(t, err, "Failed to set test court status")
		c.Status = status
	}

	return c
}

func generateToken(t *testing.T, u *user.User) string {
	token, err := jwtManager.GenerateAccessToken(u.ID, string(u.Role))
	require.NoError(t, err, "Failed to generate token")
	return token
}
