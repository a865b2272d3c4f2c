package maintenance

import (
	"context"
	"fmt"

	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionPurgeJob deletes expired admin sessions so the table does not
// grow without bound.
type SessionPurgeJob struct {
	sessions sessionPurger
	logg     *logger.Logger
}

// NewSessionPurgeJob builds the session purge job.
func NewSessionPurgeJob(sessions sessionPurger, logg *logger.Logger) (*SessionPurgeJob, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session purger is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &SessionPurgeJob{sessions: sessions, logg: logg}, nil
}

func (j *SessionPurgeJob) Name() string { return "admin_session_purge" }

func (j *SessionPurgeJob) Run(ctx context.Context) error {
	removed, err := j.sessions.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purging expired admin sessions: %w", err)
	}
	if removed > 0 {
		j.logg.Info(j.logg.WithField(ctx, "removed", removed), "purged expired admin sessions")
	}
	return nil
}
