package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/auth"
	"github.com/rentwheels/car-rental-backend/internal/booking"
	bookingHttp "github.com/rentwheels/car-rental-backend/internal/booking/http"
	"github.com/rentwheels/car-rental-backend/internal/car"
	carHttp "github.com/rentwheels/car-rental-backend/internal/car/http"
	"github.com/rentwheels/car-rental-backend/internal/feedback"
	feedbackHttp "github.com/rentwheels/car-rental-backend/internal/feedback/http"
	"github.com/rentwheels/car-rental-backend/internal/file"
	fileHttp "github.com/rentwheels/car-rental-backend/internal/file/http"
	"github.com/rentwheels/car-rental-backend/internal/user"
	userHttp "github.com/rentwheels/car-rental-backend/internal/user/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	CarService      car.Service
	BookingService  booking.Service
	FeedbackService feedback.Service
	FileService     file.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for
// each module under /api.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:3000",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// ownerMiddleware: Further checks if the authenticated user is an owner.
	ownerMiddleware := RequireOwner(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	carHandler := carHttp.NewHandler(cfg.CarService, cfg.FileService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	feedbackHandler := feedbackHttp.NewHandler(cfg.FeedbackService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	// Register API routes under /api
	apiGroup := r.Group("/api")
	{
		userHttp.RegisterRoutes(apiGroup, userHandler, authMiddleware)
		carHttp.RegisterRoutes(apiGroup, carHandler, authMiddleware, ownerMiddleware)
		bookingHttp.RegisterRoutes(apiGroup, bookingHandler, authMiddleware, ownerMiddleware)
		feedbackHttp.RegisterRoutes(apiGroup, feedbackHandler)
	}

	// Car photos are served outside /api so stored image URLs stay short.
	fileHttp.RegisterRoutes(r, fileHandler)

	return r
}

func splitOrigins(origins string) []string {
	var result []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	return result
}
