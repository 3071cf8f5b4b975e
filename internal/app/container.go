package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentwheels/car-rental-backend/internal/api"
	"github.com/rentwheels/car-rental-backend/internal/auth"
	"github.com/rentwheels/car-rental-backend/internal/booking"
	"github.com/rentwheels/car-rental-backend/internal/car"
	"github.com/rentwheels/car-rental-backend/internal/feedback"
	"github.com/rentwheels/car-rental-backend/internal/file"
	"github.com/rentwheels/car-rental-backend/internal/jobs"
	"github.com/rentwheels/car-rental-backend/internal/pkg/storage"
	"github.com/rentwheels/car-rental-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router    *gin.Engine
	Scheduler *jobs.Scheduler
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init local storage failed: %w", err)
	}

	// File Module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	// Car Module
	carRepo := car.NewPgxRepository(cfg.DBPool)
	carService := car.NewService(carRepo)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, carService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, carService)

	// Feedback Module
	feedbackRepo := feedback.NewPgxRepository(cfg.DBPool)
	feedbackService := feedback.NewService(feedbackRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		CarService:      carService,
		BookingService:  bookingService,
		FeedbackService: feedbackService,
		FileService:     fileService,
		JWTManager:      jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	// Background jobs
	scheduler := jobs.NewScheduler(bookingService)

	return &Container{
		Router:    router,
		Scheduler: scheduler,
	}, nil
}
