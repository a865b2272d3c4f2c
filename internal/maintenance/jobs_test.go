package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	removed int64
	err     error
	calls   int
}

func (f *fakePurger) PurgeExpired(context.Context) (int64, error) {
	f.calls++
	return f.removed, f.err
}

type fakeSweeper struct {
	evicted int
	at      time.Time
}

func (f *fakeSweeper) Sweep(now time.Time) int {
	f.at = now
	return f.evicted
}

func TestSessionPurgeJob(t *testing.T) {
	purger := &fakePurger{removed: 3}
	job, err := NewSessionPurgeJob(purger, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "admin_session_purge", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, purger.calls)
}

func TestSessionPurgeJobPropagatesError(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	job, err := NewSessionPurgeJob(purger, testLogger())
	require.NoError(t, err)

	require.Error(t, job.Run(context.Background()))
}

func TestSessionPurgeJobValidation(t *testing.T) {
	_, err := NewSessionPurgeJob(nil, testLogger())
	require.Error(t, err)

	_, err = NewSessionPurgeJob(&fakePurger{}, nil)
	require.Error(t, err)
}

func TestCartSweepJob(t *testing.T) {
	sweeper := &fakeSweeper{evicted: 2}
	job, err := NewCartSweepJob(sweeper, testLogger())
	require.NoError(t, err)

	frozen := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return frozen }

	assert.Equal(t, "cart_sweep", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, frozen, sweeper.at)
}
