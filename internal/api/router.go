package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/courtwala/courtwala-backend/internal/announcement"
	annHttp "github.com/courtwala/courtwala-backend/internal/announcement/http"
	"github.com/courtwala/courtwala-backend/internal/auth"
	"github.com/courtwala/courtwala-backend/internal/booking"
	bookingHttp "github.com/courtwala/courtwala-backend/internal/booking/http"
	"github.com/courtwala/courtwala-backend/internal/court"
	courtHttp "github.com/courtwala/courtwala-backend/internal/court/http"
	"github.com/courtwala/courtwala-backend/internal/dashboard"
	dashHttp "github.com/courtwala/courtwala-backend/internal/dashboard/http"
	"github.com/courtwala/courtwala-backend/internal/matchmaking"
	mmHttp "github.com/courtwala/courtwala-backend/internal/matchmaking/http"
	"github.com/courtwala/courtwala-backend/internal/notification"
	notifHttp "github.com/courtwala/courtwala-backend/internal/notification/http"
	"github.com/courtwala/courtwala-backend/internal/pkg/storage"
	"github.com/courtwala/courtwala-backend/internal/report"
	reportHttp "github.com/courtwala/courtwala-backend/internal/report/http"
	"github.com/courtwala/courtwala-backend/internal/slot"
	slotHttp "github.com/courtwala/courtwala-backend/internal/slot/http"
	"github.com/courtwala/courtwala-backend/internal/tournament"
	tournamentHttp "github.com/courtwala/courtwala-backend/internal/tournament/http"
	"github.com/courtwala/courtwala-backend/internal/user"
	userHttp "github.com/courtwala/courtwala-backend/internal/user/http"
)

// Config bundles everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	UploadDir    string

	UserService         user.Service
	CourtService        court.Service
	BookingService      booking.Service
	SlotService         slot.Service
	NotificationService notification.Service
	MatchmakingService  matchmaking.Service
	TournamentService   tournament.Service
	ReportService       report.Service
	AnnouncementService announcement.Service
	DashboardService    dashboard.Service

	JWTManager *auth.JWTManager
	Store      storage.Storage
	Images     *storage.ImageProcessor
}

// NewRouter assembles middleware and registers every module's routes under
// /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Uploaded court and profile images are served directly.
	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	guard := NewGuard(cfg.UserService)
	ownerMiddleware := guard.Require(user.RoleCourtOwner, user.RoleAdmin)
	adminMiddleware := guard.Require(user.RoleAdmin)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, cfg.Store, cfg.Images)
	courtHandler := courtHttp.NewHandler(cfg.CourtService, cfg.Store, cfg.Images)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	slotHandler := slotHttp.NewHandler(cfg.SlotService)
	notifHandler := notifHttp.NewHandler(cfg.NotificationService)
	mmHandler := mmHttp.NewHandler(cfg.MatchmakingService)
	tournamentHandler := tournamentHttp.NewHandler(cfg.TournamentService)
	reportHandler := reportHttp.NewHandler(cfg.ReportService)
	annHandler := annHttp.NewHandler(cfg.AnnouncementService)
	dashHandler := dashHttp.NewHandler(cfg.DashboardService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, ownerMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, ownerMiddleware)
		slotHttp.RegisterRoutes(v1, slotHandler, authMiddleware, ownerMiddleware)
		notifHttp.RegisterRoutes(v1, notifHandler, authMiddleware)
		mmHttp.RegisterRoutes(v1, mmHandler, authMiddleware)
		tournamentHttp.RegisterRoutes(v1, tournamentHandler, authMiddleware, adminMiddleware)
		reportHttp.RegisterRoutes(v1, reportHandler, authMiddleware, adminMiddleware)
		annHttp.RegisterRoutes(v1, annHandler, authMiddleware, adminMiddleware)
		dashHttp.RegisterRoutes(v1, dashHandler, authMiddleware, ownerMiddleware, adminMiddleware)
	}

	return r
}
