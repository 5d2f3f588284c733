package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glossbook/salon-booking/internal/cache"
	"github.com/glossbook/salon-booking/internal/config"
	domain "github.com/glossbook/salon-booking/internal/domain/booking"
	"github.com/glossbook/salon-booking/internal/handlers"
	infraRepo "github.com/glossbook/salon-booking/internal/infra/repository"
	"github.com/glossbook/salon-booking/internal/media"
	"github.com/glossbook/salon-booking/internal/middleware"
	"github.com/glossbook/salon-booking/internal/notify"
	"github.com/glossbook/salon-booking/internal/timeparse"
	"github.com/glossbook/salon-booking/internal/tryon"
	ucBooking "github.com/glossbook/salon-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	catalog := cache.NewCatalog(cfg.RedisAddr, cfg.RedisPassword, cfg.CatalogTTL)

	pushDispatcher := notify.NewDispatcher(notify.NewExpoClient(""))

	location := timeparse.Location(cfg.SalonTimezone)
	blocking := domain.ParseBlockingStatuses(cfg.BlockingStatuses)

	var tryOnProvider tryon.Provider
	if cfg.TryOnProvider == "gradio" {
		tryOnProvider = tryon.NewGradioProvider()
	} else {
		tryOnOpts := tryon.DefaultOptions()
		tryOnOpts.Timeout = cfg.TryOnTimeout
		tryOnProvider = tryon.NewPipeline(
			tryon.NewChromeFactory(tryon.ChromeConfig{
				Headless:  cfg.TryOnHeadless,
				NoSandbox: cfg.TryOnNoSandbox,
			}),
			tryOnOpts,
		)
	}

	mediaProcessor := media.NewProcessor(cfg.MaxImageEdge)
	var mediaStore media.Store
	if cfg.MediaBackend == "s3" {
		mediaStore = media.NewS3Store(media.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			BaseURL:   cfg.S3BaseURL,
		})
	} else {
		mediaStore = media.NewDiskStore(cfg.UploadsDir, "")
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		pushDispatcher,
		blocking,
		location,
	)

	listMyBookingsUC := ucBooking.NewListMyBookings(bookingRepo, location)
	listAllBookingsUC := ucBooking.NewListAllBookings(bookingRepo, location)
	updateBookingStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo)
	availabilityUC := ucBooking.NewCheckAvailability(bookingRepo, blocking, location)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		listMyBookingsUC,
		listAllBookingsUC,
		updateBookingStatusUC,
		deleteBookingUC,
		availabilityUC,
	)

	stylistHandler := handlers.NewStylistHandler(db, catalog)
	serviceHandler := handlers.NewServiceHandler(db, catalog)
	ratingHandler := handlers.NewRatingHandler(db)
	tryOnHandler := handlers.NewTryOnHandler(tryOnProvider, cfg)
	mediaHandler := handlers.NewMediaHandler(mediaProcessor, mediaStore)

	// ======================================================
	// STATIC (try-on results and uploaded media)
	// ======================================================
	r.Static("/results", cfg.ResultsDir)
	r.Static("/uploads", cfg.UploadsDir)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API (customer)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/auth/push-token", authHandler.SavePushToken)

			secured.GET("/stylists", stylistHandler.List)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/stylists/:id/rating", ratingHandler.StylistSummary)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/my-bookings", bookingHandler.ListMine)
			secured.GET("/bookings/availability", bookingHandler.Availability)

			secured.POST("/ratings", ratingHandler.Submit)
			secured.GET("/ratings", ratingHandler.Summary)

			secured.POST("/ai/hairtryon", tryOnHandler.Process)

			// ------------------------------
			// ADMIN API
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/bookings", bookingHandler.ListAll)
				admin.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)
				admin.DELETE("/bookings/:id", bookingHandler.Delete)

				admin.POST("/stylists", stylistHandler.Create)
				admin.PUT("/stylists/:id", stylistHandler.Update)
				admin.DELETE("/stylists/:id", stylistHandler.Delete)

				admin.POST("/services", serviceHandler.Create)
				admin.PUT("/services/:id", serviceHandler.Update)
				admin.DELETE("/services/:id", serviceHandler.Delete)

				admin.POST("/media", mediaHandler.Upload)
			}
		}
	}
}
