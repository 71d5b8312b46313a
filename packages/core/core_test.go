package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"core/models"
	"core/realtime"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestModuleRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.Player{}, &models.Game{}, &models.RotationLog{}))

	hub := realtime.NewHub(0)
	defer hub.Close()
	m := NewModule(db, hub, Options{DefaultCourts: 2, IdleAfter: time.Hour, PublicBaseURL: "http://localhost:8080"})

	r := gin.New()
	m.SetupRoutes(r)

	routes := make(map[string]bool)
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /sessions",
		"GET /sessions/:id",
		"GET /sessions/code/:code",
		"POST /sessions/join/:code",
		"POST /sessions/:id/rotations",
		"GET /sessions/:id/rotations/preview",
		"POST /sessions/:id/games/:gameId/complete",
		"GET /sessions/:id/ws",
		"GET /join/:code",
		"HEAD /join/:code",
		"GET /stats",
	} {
		assert.True(t, routes[want], want)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	m.CloseIdleSessionsNow()
}
