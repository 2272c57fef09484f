package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtwala/courtwala-backend/internal/announcement"
	"github.com/courtwala/courtwala-backend/internal/api"
	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/booking"
	"github.com/courtwala/courtwala-backend/internal/config"
	"github.com/courtwala/courtwala-backend/internal/court"
	"github.com/courtwala/courtwala-backend/internal/dashboard"
	"github.com/courtwala/courtwala-backend/internal/db"
	"github.com/courtwala/courtwala-backend/internal/matchmaking"
	"github.com/courtwala/courtwala-backend/internal/notification"
	"github.com/courtwala/courtwala-backend/internal/pkg/storage"
	"github.com/courtwala/courtwala-backend/internal/report"
	"github.com/courtwala/courtwala-backend/internal/slot"
	"github.com/courtwala/courtwala-backend/internal/tournament"
	"github.com/courtwala/courtwala-backend/internal/user"
)

// Container wires repositories, services and the HTTP router together.
type Container struct {
	Router     *gin.Engine
	Pool       *pgxpool.Pool
	JWTManager *auth.JWTManager
}

// NewContainer builds the full dependency graph from configuration.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to database failed: %w", err)
	}

	hasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init upload storage failed: %w", err)
	}
	images := storage.NewImageProcessor()

	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, hasher)

	courtRepo := court.NewPgxRepository(pool)
	courtService := court.NewService(courtRepo)

	notifRepo := notification.NewPgxRepository(pool)
	notifService := notification.NewService(notifRepo)
	dispatcher := notification.NewDispatcher(notifService)

	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, dispatcher)

	slotRepo := slot.NewPgxRepository(pool)
	slotService := slot.NewService(slotRepo, courtService, bookingRepo)

	matchRepo := matchmaking.NewPgxRepository(pool)
	matchService := matchmaking.NewService(matchRepo, userService, bookingService, dispatcher)

	tournamentRepo := tournament.NewPgxRepository(pool)
	tournamentService := tournament.NewService(tournamentRepo, dispatcher)

	reportRepo := report.NewPgxRepository(pool)
	reportService := report.NewService(reportRepo, userService, courtService, bookingRepo)

	annRepo := announcement.NewPgxRepository(pool)
	annService := announcement.NewService(annRepo)

	dashService := dashboard.NewService(userRepo, courtRepo, bookingRepo, reportService)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		UploadDir:    cfg.UploadDir,

		UserService:         userService,
		CourtService:        courtService,
		BookingService:      bookingService,
		SlotService:         slotService,
		NotificationService: notifService,
		MatchmakingService:  matchService,
		TournamentService:   tournamentService,
		ReportService:       reportService,
		AnnouncementService: annService,
		DashboardService:    dashService,

		JWTManager: jwtManager,
		Store:      store,
		Images:     images,
	})

	return &Container{
		Router:     router,
		Pool:       pool,
		JWTManager: jwtManager,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() {
	c.Pool.Close()
}
