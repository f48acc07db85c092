package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "veritas-backend/internal/auth"
	"veritas-backend/internal/detector"
	"veritas-backend/internal/history"
	"veritas-backend/internal/shared/config"
	"veritas-backend/internal/shared/metrics"
	"veritas-backend/internal/shared/server/middleware"
	"veritas-backend/internal/shared/server/respond"
	"veritas-backend/internal/shared/storage/db"
	"veritas-backend/internal/shared/storage/object"
	localstore "veritas-backend/internal/shared/storage/object/local"
	s3store "veritas-backend/internal/shared/storage/object/s3"
	"veritas-backend/internal/submissions"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	// Dependencies
	store, err := newObjectStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var repo submissions.Repo
	if sqlDB != nil {
		repo = &submissions.PGRepo{DB: sqlDB}
	} else {
		repo = submissions.NewMemoryRepo()
	}

	analyzer, err := detector.NewClient(cfg.DetectorURL)
	if err != nil {
		return nil, fmt.Errorf("detector client: %w", err)
	}

	submissionSvc := submissions.NewService(repo, analyzer, store)
	submissionHandler := submissions.NewHandler(submissionSvc)
	historyHandler := history.NewHandler(repo)
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/submissions" {
				return "ANALYZE"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 30},
			"ANALYZE": {Rate: 0.5, Burst: 5},
		},
	}))

	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api)
	submissionHandler.RegisterRoutes(api)
	historyHandler.RegisterRoutes(api)

	return r, nil
}

func newObjectStore(cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		return s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	}
	return localstore.New(cfg.LocalStoreDir), nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
