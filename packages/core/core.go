package core

import (
	"time"

	"core/cron"
	"core/handlers"
	"core/realtime"
	"core/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Options struct {
	DefaultCourts int
	IdleAfter     time.Duration
	PublicBaseURL string
	// Publisher overrides where events go. Nil publishes to the local hub.
	Publisher realtime.Publisher
}

type Module struct {
	SessionHandler  *handlers.SessionHandler
	SessionService  *services.SessionService
	PlayerHandler   *handlers.PlayerHandler
	RosterService   *services.RosterService
	RotationHandler *handlers.RotationHandler
	RotationService *services.RotationService
	GameHandler     *handlers.GameHandler
	GameService     *services.GameService
	StatsHandler    *handlers.StatsHandler
	StatsService    *services.StatsService
	RealtimeHandler *handlers.RealtimeHandler
	Hub             *realtime.Hub
	Scheduler       *cron.Scheduler
	db              *gorm.DB
}

func NewModule(db *gorm.DB, hub *realtime.Hub, opts Options) *Module {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = hub
	}
	locks := services.NewSessionLocks()

	sessionService := services.NewSessionService(db, locks, publisher, opts.DefaultCourts)
	sessionHandler := handlers.NewSessionHandler(sessionService, opts.PublicBaseURL)

	rosterService := services.NewRosterService(db, locks, sessionService, publisher)
	playerHandler := handlers.NewPlayerHandler(rosterService)

	rotationService := services.NewRotationService(db, locks, publisher)
	rotationHandler := handlers.NewRotationHandler(rotationService)

	gameService := services.NewGameService(db, locks, publisher)
	gameHandler := handlers.NewGameHandler(gameService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	realtimeHandler := handlers.NewRealtimeHandler(hub, sessionService)
	scheduler := cron.NewScheduler(sessionService, opts.IdleAfter)

	return &Module{
		SessionHandler:  sessionHandler,
		SessionService:  sessionService,
		PlayerHandler:   playerHandler,
		RosterService:   rosterService,
		RotationHandler: rotationHandler,
		RotationService: rotationService,
		GameHandler:     gameHandler,
		GameService:     gameService,
		StatsHandler:    statsHandler,
		StatsService:    statsService,
		RealtimeHandler: realtimeHandler,
		Hub:             hub,
		Scheduler:       scheduler,
		db:              db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("", m.SessionHandler.CreateSession)
		sessions.GET("/code/:code", m.SessionHandler.GetSessionByCode)
		sessions.POST("/join/:code", m.PlayerHandler.JoinSession)
		sessions.GET("/:id", m.SessionHandler.GetSession)
		sessions.PATCH("/:id/courts", m.SessionHandler.UpdateCourts)
		sessions.POST("/:id/close", m.SessionHandler.CloseSession)

		sessions.GET("/:id/players", m.PlayerHandler.ListPlayers)
		sessions.PATCH("/:id/players/:playerId/status", m.PlayerHandler.UpdatePlayerStatus)

		sessions.POST("/:id/rotations", m.RotationHandler.GenerateRotation)
		sessions.GET("/:id/rotations/preview", m.RotationHandler.PreviewRotation)

		sessions.GET("/:id/games", m.GameHandler.ListGames)
		sessions.POST("/:id/games/:gameId/complete", m.GameHandler.CompleteGame)
		sessions.POST("/:id/games/:gameId/cancel", m.GameHandler.CancelGame)

		sessions.GET("/:id/leaderboard", m.StatsHandler.GetLeaderboard)
		sessions.GET("/:id/ws", m.RealtimeHandler.Stream)
	}

	r.GET("/join/:code", handlers.JoinRedirect)
	r.HEAD("/join/:code", handlers.JoinRedirect)

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the idle session job
func (m *Module) StartScheduler() error {
	log.Info().Msg("starting core module scheduler")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Info().Msg("stopping core module scheduler")
	m.Scheduler.Stop()
}

// CloseIdleSessionsNow runs the idle session job immediately
func (m *Module) CloseIdleSessionsNow() {
	m.Scheduler.RunNow()
}
