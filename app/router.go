// Package app wires the HTTP router together with its dependencies
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Saurav-Paul/drop/app/download"
	"github.com/Saurav-Paul/drop/app/files"
	"github.com/Saurav-Paul/drop/app/root"
	"github.com/Saurav-Paul/drop/app/settings"
	"github.com/Saurav-Paul/drop/app/upload"
	"github.com/Saurav-Paul/drop/config"
	"github.com/Saurav-Paul/drop/db"
	"github.com/Saurav-Paul/drop/internal"
	"github.com/Saurav-Paul/drop/internal/blob"
	"github.com/Saurav-Paul/drop/internal/service"
	"github.com/Saurav-Paul/drop/internal/store"
	"github.com/Saurav-Paul/drop/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	dataDir := viper.GetString("storage.data_dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory, %w", err)
	}

	database, err := db.New(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	blobs, err := blob.NewStore(afero.NewOsFs(), filepath.Join(dataDir, "files"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store, %w", err)
	}

	fileStore := store.NewFileStore(database)
	settingsStore := store.NewSettingsStore(database)

	d := &internal.Deps{
		DB:       database,
		Files:    fileStore,
		Settings: settingsStore,
		Blobs:    blobs,
		Uploader: &service.Uploader{Files: fileStore, Settings: settingsStore, Blobs: blobs},
		Gate:     &service.Gate{Files: fileStore, Blobs: blobs},
		Cleaner:  &service.Cleaner{Files: fileStore, Settings: settingsStore, Blobs: blobs},
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Admin-User", "X-Admin-Pass", "X-Expires", "X-Max-Downloads", "X-Upload-Key"},
			ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
			// Admin credentials travel in plain headers, never cookies,
			// so the wildcard origin stays valid
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	admin := middleware.RequireAdmin()

	m := router.Group("/api", rateLimiter)
	{
		// GET /api/health		-> Used to check if the server is alive
		m.GET("/health", root.Health)

		// POST /api/cleanup		-> Runs a cleanup pass right now
		m.POST("/cleanup", admin, func(c *gin.Context) { root.Cleanup(c, d) })

		// GET /api/stats		-> Aggregate numbers for the dashboard
		m.GET("/stats", admin, cacheFor(15), func(c *gin.Context) { files.Stats(c, d) })
	}

	f := m.Group("/files", admin)
	{
		// GET /api/files		-> Lists every stored file, newest first
		f.GET("", func(c *gin.Context) { files.List(c, d) })

		// GET /api/files/:code		-> Returns a single file record
		f.GET("/:code", func(c *gin.Context) { files.Fetch(c, d) })

		// DELETE /api/files/:code	-> Deletes a record and its blob
		f.DELETE("/:code", func(c *gin.Context) { files.Delete(c, d) })
	}

	s := m.Group("/settings", admin)
	{
		// GET /api/settings		-> Returns the current settings
		s.GET("", func(c *gin.Context) { settings.Fetch(c, d) })

		// PUT /api/settings		-> Partially updates the settings
		s.PUT("", func(c *gin.Context) { settings.Update(c, d) })
	}

	// GET /:code/:filename			-> Streams a file download
	router.GET("/:code/:filename", rateLimiter, func(c *gin.Context) { download.Download(c, d) })

	// PUT /:filename			-> Uploads a new file as a raw body stream
	router.PUT("/:filename", rateLimiter, func(c *gin.Context) { upload.Upload(c, d) })

	d.Cleaner.Attach(viper.GetDuration("cleanup.interval"))

	if *config.CleanupNow {
		go d.Cleaner.Run()
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func logLevel() zapcore.Level {
	switch viper.GetString("app.log_level") {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
