package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// IdleSessionCloser is the part of the session service the scheduler drives.
type IdleSessionCloser interface {
	CountIdleSessions(cutoff time.Time) (int64, error)
	CloseIdleSessions(cutoff time.Time) (int, error)
}

type Scheduler struct {
	cron     *cron.Cron
	sessions IdleSessionCloser
	idleFor  time.Duration
	now      func() time.Time
}

func NewScheduler(sessions IdleSessionCloser, idleFor time.Duration) *Scheduler {
	logger := log.With().Str("component", "cron").Logger()
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(printfLogger{logger})))

	return &Scheduler{
		cron:     c,
		sessions: sessions,
		idleFor:  idleFor,
		now:      time.Now,
	}
}

// printfLogger adapts zerolog to the Printf logger cron expects.
type printfLogger struct {
	logger zerolog.Logger
}

func (l printfLogger) Printf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	log.Info().Msg("starting cron scheduler")

	// At minute 0 of every hour
	if _, err := s.cron.AddFunc("0 0 * * * *", s.closeIdleSessions); err != nil {
		log.Error().Err(err).Msg("failed to schedule idle session job")
		return err
	}

	s.cron.Start()
	log.Info().Dur("idle_for", s.idleFor).Msg("cron scheduler started")
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("cron scheduler stopped")
}

func (s *Scheduler) closeIdleSessions() {
	cutoff := s.now().Add(-s.idleFor)

	idle, err := s.sessions.CountIdleSessions(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to count idle sessions")
		return
	}
	if idle == 0 {
		log.Debug().Msg("no idle sessions to close")
		return
	}

	closed, err := s.sessions.CloseIdleSessions(cutoff)
	if err != nil {
		log.Error().Err(err).Int("closed", closed).Msg("idle session job failed")
		return
	}
	log.Info().Int("closed", closed).Time("cutoff", cutoff).Msg("closed idle sessions")
}

// RunNow runs the idle session job immediately
func (s *Scheduler) RunNow() {
	s.closeIdleSessions()
}
