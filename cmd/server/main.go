package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/export"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.Register()

	dbManager, err := database.NewManager(database.NewConfig())
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := database.SeedDefaultCategories(db); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	store, err := export.NewStore(appConfig.CSVDir, appConfig.PDFDir)
	if err != nil {
		return fmt.Errorf("failed to create export store: %w", err)
	}

	// Services
	categoryService := services.NewCategoryService(db)
	userService := services.NewUserService(db, categoryService)
	expenseService := services.NewExpenseService(db, categoryService)
	analyticsService := services.NewAnalyticsService(db)
	reportService := services.NewReportService(expenseService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(
		userService, expenseService, categoryService, analyticsService, appConfig.TrendMonths)
	expenseHandler := handlers.NewExpenseHandler(expenseService, categoryService)
	reportHandler := handlers.NewReportHandler(
		userService, reportService, expenseService, categoryService, analyticsService,
		store, appConfig.TrendMonths)
	profileHandler := handlers.NewProfileHandler(userService)

	// Export files are pruned daily past the retention window.
	retention := time.Duration(appConfig.ExportRetainDays) * 24 * time.Hour
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		removed, err := store.CleanupOlderThan(retention)
		if err != nil {
			log.Errorw("export cleanup failed", "error", err.Error())
			return
		}
		if removed > 0 {
			log.Infow("export cleanup", "removed", removed)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule export cleanup: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Sessions(middleware.NewSessionStore(appConfig.SessionSecret)))
	router.Use(middleware.ErrorHandler())

	router.SetFuncMap(handlers.TemplateFuncs())
	router.LoadHTMLGlob(filepath.Join(appConfig.TemplateDir, "*.html"))
	router.NoRoute(middleware.NotFound)

	// Public pages
	router.GET("/", authHandler.Index)
	public := router.Group("/", middleware.RedirectIfAuthenticated())
	public.GET("/login", authHandler.ShowLogin)
	public.POST("/login", authHandler.Login)
	public.GET("/register", authHandler.ShowRegister)
	public.POST("/register", authHandler.Register)

	// Authenticated pages
	protected := router.Group("/", middleware.RequireAuth())
	protected.GET("/logout", authHandler.Logout)
	protected.GET("/dashboard", dashboardHandler.Dashboard)
	protected.POST("/quick_add", expenseHandler.QuickAdd)

	protected.GET("/expenses", expenseHandler.List)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses/get/:id", expenseHandler.Get)
	protected.POST("/expenses/edit/:id", expenseHandler.Edit)
	protected.GET("/expenses/delete/:id", expenseHandler.Delete)

	protected.GET("/reports", reportHandler.ShowReports)
	protected.POST("/reports", reportHandler.Generate)
	protected.GET("/download/:file_type/:filename", reportHandler.Download)
	protected.GET("/export_all_data", reportHandler.ExportAll)

	protected.GET("/profile", profileHandler.Show)
	protected.POST("/profile", profileHandler.Update)
	protected.POST("/delete_account", profileHandler.DeleteAccount)

	log.Infof("Starting fintrack server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
