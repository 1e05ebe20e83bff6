// @title           Quotation API
// @version         1.0
// @description     Quotation intake backend: website cost calculator submissions and the admin dashboard API.

// @contact.name   API Support

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quotation-backend/config"
	_ "quotation-backend/docs"
	"quotation-backend/handlers"
	"quotation-backend/repository"
	"quotation-backend/services"
	"quotation-backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// app carries the long-lived dependencies shared by the routes.
type app struct {
	cfg        *config.Config
	db         *sql.DB
	quotations *services.QuotationService
	auth       *services.AuthService
	uploads    *services.UploadService
}

func newApp(cfg *config.Config, db *sql.DB, gormDB *gorm.DB, mailer services.Mailer) *app {
	uploads := services.NewUploadService(cfg.UploadDir, cfg.MaxUploadBytes())
	emails := services.NewEmailService(mailer, cfg.SMTP)

	return &app{
		cfg:        cfg,
		db:         db,
		uploads:    uploads,
		quotations: services.NewQuotationService(repository.NewQuotationRepository(gormDB), uploads, emails),
		auth:       services.NewAuthService(repository.NewAdminRepository(gormDB), cfg.JWTSecret, cfg.TokenTTL),
	}
}

func CORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = nil
	for _, origin := range origins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowOrigins = nil
			break
		}
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	if !corsConfig.AllowAllOrigins && len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Origin", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition"}
	return corsConfig
}

func setupRouter(a *app) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig(a.cfg.CORSOrigins)))

	r.GET("/", handlers.Root)
	r.GET("/healthz", handlers.HealthCheck(a.db))

	// ==================== QUOTATION INTAKE ====================
	r.POST("/send-email", handlers.SendQuotationEmail(a.quotations))

	// ==================== AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(a.auth))

	// ==================== ADMIN DASHBOARD ====================
	admin := r.Group("/")
	if a.cfg.RequireAdminAuth {
		admin.Use(handlers.AdminAuth(a.auth))
	}
	admin.GET("/users", handlers.GetAdminUsers(a.auth))
	admin.GET("/api/quotations", handlers.GetQuotations(a.quotations))
	admin.GET("/api/quotations/export", handlers.ExportQuotations(a.quotations))
	admin.GET("/api/quotations/:id/pdf", handlers.DownloadQuotationPDF(a.quotations))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	return r
}

// startUploadSweeper removes uploads orphaned by a crash mid-request.
func startUploadSweeper(a *app) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	_, err := c.AddFunc(a.cfg.UploadSweepSchedule, func() {
		removed, err := a.uploads.SweepStale(a.cfg.UploadMaxAge)
		if err != nil {
			log.Printf("upload sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("upload sweep removed %d stale file(s)", removed)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate port is numeric
	portInt, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", cfg.Port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), storage.ConnectTimeout+5*time.Second)
	db, err := storage.InitDB(startupCtx, cfg.DB)
	cancelStartup()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	gormDB, err := storage.InitGormDB(db)
	if err != nil {
		log.Fatalf("Failed to initialize GORM: %v", err)
	}

	a := newApp(cfg, db, gormDB, services.NewSMTPMailer(cfg.SMTP))

	sweeper, err := startUploadSweeper(a)
	if err != nil {
		log.Fatalf("Failed to schedule upload sweeper: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: setupRouter(a),
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Let a running sweep finish before the server goes away
	<-sweeper.Stop().Done()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
