package fixtures

import (
	"testing"

	"core/models"
	"core/services"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGenerateAndClear(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.Player{}, &models.Game{}, &models.RotationLog{}))

	f := NewFixtures(db, 42)
	session, err := f.GenerateTestData(4)
	require.NoError(t, err)

	var players []models.Player
	require.NoError(t, db.Where("session_id = ?", session.ID).Find(&players).Error)
	require.Len(t, players, 12)

	history, err := services.NewGameService(db, services.NewSessionLocks(), nil).History(session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, history)

	total := 0
	for _, p := range players {
		assert.Equal(t, p.GamesPlayed, p.Wins+p.Losses, p.Name)
		total += p.GamesPlayed
	}
	assert.Equal(t, len(history)*4, total)

	require.NoError(t, f.ClearAllData())
	var count int64
	require.NoError(t, db.Model(&models.Session{}).Unscoped().Count(&count).Error)
	assert.Zero(t, count)
}
