package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tillpoint/config"
	"tillpoint/cron"
	"tillpoint/database"
	catalogRepo "tillpoint/database/repository/catalog"
	sessionRepo "tillpoint/database/repository/session"
	staffRepo "tillpoint/database/repository/staff"
	subscriptionRepo "tillpoint/database/repository/subscription"
	"tillpoint/handlers"
	"tillpoint/middleware"
	"tillpoint/routes"
	"tillpoint/services/analytics"
	authSvc "tillpoint/services/auth"
	catalogSvc "tillpoint/services/catalog"
	"tillpoint/services/rating"
	sessionSvc "tillpoint/services/session"
	"tillpoint/services/staff"
	"tillpoint/services/storage"
	subscriptionSvc "tillpoint/services/subscription"
	"tillpoint/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()
	staffs := staffRepo.NewMongoStaffRepo()
	catalogs := catalogRepo.NewMongoCatalogRepo()
	subscriptions := subscriptionRepo.NewMongoSubscriptionRepo()

	// services.
	ratingService := &rating.DefaultRatingService{
		Sessions: sessions,
		Staff:    staffs,
		Catalog:  catalogs,
	}
	staffService := &staff.DefaultStaffService{
		Staff:    staffs,
		Sessions: sessions,
		Auth:     utils.GetAuthClient(),
		Storage:  storageService,
	}
	authService := &authSvc.DefaultAuthService{
		Auth:  utils.GetAuthClient(),
		Staff: staffService,
	}
	catalogService := &catalogSvc.DefaultCatalogService{
		Catalog: catalogs,
		Storage: storageService,
	}
	sessionService := &sessionSvc.DefaultSessionService{
		Sessions: sessions,
	}
	analyticsService := &analytics.DefaultAnalyticsService{
		Sessions: sessions,
		Staff:    staffs,
		Catalog:  catalogs,
	}
	subscriptionService := &subscriptionSvc.DefaultSubscriptionService{
		Subs:    subscriptions,
		Catalog: catalogs,
		Storage: storageService,
	}

	// background subscription sweep.
	cron.InitSubscriptionWorker(subscriptionService)

	handlerBundle := &handlers.HandlerBundle{
		Auth:         &handlers.AuthHandler{AuthSvc: authService, Logger: logger},
		Staff:        &handlers.StaffHandler{StaffSvc: staffService, Logger: logger},
		Catalog:      &handlers.CatalogHandler{CatalogSvc: catalogService, Logger: logger},
		Session:      &handlers.SessionHandler{SessionSvc: sessionService, Logger: logger},
		Rating:       &handlers.RatingHandler{RatingSvc: ratingService, Logger: logger},
		Analytics:    &handlers.AnalyticsHandler{AnalyticsSvc: analyticsService, Logger: logger},
		Subscription: &handlers.SubscriptionHandler{SubSvc: subscriptionService, Logger: logger},
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
