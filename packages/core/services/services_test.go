package services

import (
	"sync"
	"testing"
	"time"

	"core/models"
	"core/realtime"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(e realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []realtime.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]realtime.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// clock hands out strictly increasing timestamps so join order is stable.
type clock struct {
	mu  sync.Mutex
	cur time.Time
}

func newClock() *clock {
	return &clock{cur: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type fixture struct {
	db        *gorm.DB
	clock     *clock
	publisher *recordingPublisher
	sessions  *SessionService
	roster    *RosterService
	games     *GameService
	rotations *RotationService
	stats     *StatsService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.Player{}, &models.Game{}, &models.RotationLog{}))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	locks := NewSessionLocks()
	pub := &recordingPublisher{}
	c := newClock()

	f := &fixture{
		db:        db,
		clock:     c,
		publisher: pub,
		sessions:  NewSessionService(db, locks, pub, 2),
		games:     NewGameService(db, locks, pub),
		rotations: NewRotationService(db, locks, pub),
		stats:     NewStatsService(db),
	}
	f.roster = NewRosterService(db, locks, f.sessions, pub)
	f.sessions.now = c.Now
	f.roster.now = c.Now
	f.games.now = c.Now
	f.rotations.now = c.Now
	f.stats.now = c.Now
	return f
}

func (f *fixture) createSession(t *testing.T, courts int) *models.Session {
	t.Helper()
	s, err := f.sessions.CreateSession(models.CreateSessionRequest{Name: "Thursday club night", Courts: courts})
	require.NoError(t, err)
	return s
}

func (f *fixture) join(t *testing.T, session *models.Session, names ...string) []*models.Player {
	t.Helper()
	out := make([]*models.Player, 0, len(names))
	for _, name := range names {
		p, err := f.roster.JoinSession(session.ShareCode, models.JoinSessionRequest{Name: name})
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func (f *fixture) player(t *testing.T, id string) models.Player {
	t.Helper()
	var p models.Player
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	return p
}
