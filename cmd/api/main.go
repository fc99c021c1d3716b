package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"employees/internal/auth"
	"employees/internal/config"
	"employees/internal/employee"
	"employees/internal/handler"
	"employees/internal/httpmiddleware"
	"employees/internal/seed"
	"employees/internal/service"
	"employees/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx := context.Background()

	repo, db := openRepository(ctx, cfg)
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var limiter httpmiddleware.Limiter
	if cfg.RateLimiter == "redis" {
		limiter = httpmiddleware.NewRedisWindow(redisClient.Client, cfg.RateLimitPerMin, "employees:ratelimit")
	} else {
		limiter = httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}

	svc := service.New(repo, cfg.JWTIssuer, cfg.JWTSigningKey, cfg.TokenTTL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.RateLimit(limiter))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": redisHealthy, "db": db != nil})
	})

	handler.New(svc).Register(r, auth.Context(cfg.JWTSigningKey, cfg.JWTIssuer))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// openRepository picks the durable store when it is reachable and
// falls back to the transient one otherwise, so a dev machine without
// Postgres still gets a working API.
func openRepository(ctx context.Context, cfg config.App) (employee.Repository, *store.DB) {
	if cfg.StoreBackend != "memory" {
		db, err := store.NewDB(cfg.DatabaseURL)
		if err == nil {
			repo := employee.NewPostgresRepository(db.Client)
			if schemaErr := repo.EnsureSchema(ctx); schemaErr != nil {
				log.Printf("warning: schema setup failed: %v", schemaErr)
				_ = db.Close()
			} else {
				return repo, db
			}
		} else {
			log.Printf("warning: db not reachable, falling back to memory store: %v", err)
		}
	}

	repo := employee.NewMemoryRepository()
	if cfg.SeedOnBoot {
		if err := seed.Load(ctx, repo, 50); err != nil {
			log.Printf("warning: boot seeding failed: %v", err)
		}
	}
	return repo, nil
}

// securityHeaders sets baseline response headers.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
