package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"badminton-api/config"
	_ "badminton-api/docs" // Swagger docs

	"core"
	"core/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Badminton Rotation API
// @version         1.0
// @description     Session management and fair court rotation for drop-in badminton groups
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.SetupLogger(cfg)
	gin.SetMode(cfg.GinMode)

	config.ConnectDatabase(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(realtime.DefaultSendBuffer)
	defer hub.Close()

	var publisher realtime.Publisher = hub
	if cfg.RedisURL != "" {
		relay, closeRedis := connectRelay(ctx, cfg.RedisURL, hub)
		defer closeRedis()
		publisher = relay
	}

	coreModule := core.NewModule(config.DB, hub, core.Options{
		DefaultCourts: cfg.DefaultCourts,
		IdleAfter:     time.Duration(cfg.SessionIdleHours) * time.Hour,
		PublicBaseURL: cfg.PublicBaseURL,
		Publisher:     publisher,
	})

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(cfg)))

	coreModule.SetupRoutes(r)

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler)

	if err := coreModule.StartScheduler(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer coreModule.StopScheduler()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func connectRelay(ctx context.Context, url string, hub *realtime.Hub) (realtime.Publisher, func()) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}

	relay := realtime.NewRedisRelay(client, hub)
	if err := relay.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start realtime relay")
	}
	return relay, func() { _ = client.Close() }
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{"GET", "POST", "PATCH", "HEAD", "OPTIONS"}
	return c
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	status := "connected"
	code := http.StatusOK
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "unreachable"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Message:  "Server is running",
		Database: status,
	})
}
