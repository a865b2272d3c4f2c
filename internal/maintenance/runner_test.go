package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type fakeLock struct {
	acquire  bool
	acquires int
	releases int
	err      error
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquires++
	return f.acquire, f.err
}

func (f *fakeLock) Release(context.Context) error {
	f.releases++
	return nil
}

type fakeJob struct {
	name string
	runs int
	err  error
}

func (f *fakeJob) Name() string { return f.name }

func (f *fakeJob) Run(context.Context) error {
	f.runs++
	return f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func TestNewRunnerValidation(t *testing.T) {
	_, err := NewRunner(RunnerParams{Lock: &fakeLock{}})
	require.Error(t, err)

	_, err = NewRunner(RunnerParams{Logger: testLogger()})
	require.Error(t, err)

	runner, err := NewRunner(RunnerParams{Logger: testLogger(), Lock: &fakeLock{}})
	require.NoError(t, err)
	assert.Equal(t, defaultInterval, runner.interval)
}

func TestRunCycleRunsJobsInOrder(t *testing.T) {
	lock := &fakeLock{acquire: true}
	first := &fakeJob{name: "first"}
	second := &fakeJob{name: "second"}

	runner, err := NewRunner(RunnerParams{
		Logger:   testLogger(),
		Registry: NewRegistry(first, second),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, runner.runCycle(context.Background()))
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
	assert.Equal(t, 1, lock.acquires)
	assert.Equal(t, 1, lock.releases)
}

func TestRunCycleSkipsWhenLockHeld(t *testing.T) {
	lock := &fakeLock{acquire: false}
	job := &fakeJob{name: "noop"}

	runner, err := NewRunner(RunnerParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, runner.runCycle(context.Background()))
	assert.Zero(t, job.runs)
	assert.Zero(t, lock.releases)
}

func TestRunCycleFailingJobDoesNotStopOthers(t *testing.T) {
	lock := &fakeLock{acquire: true}
	failing := &fakeJob{name: "failing", err: errors.New("boom")}
	healthy := &fakeJob{name: "healthy"}

	runner, err := NewRunner(RunnerParams{
		Logger:   testLogger(),
		Registry: NewRegistry(failing, healthy),
		Lock:     lock,
	})
	require.NoError(t, err)

	require.NoError(t, runner.runCycle(context.Background()))
	assert.Equal(t, 1, failing.runs)
	assert.Equal(t, 1, healthy.runs)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	lock := &fakeLock{acquire: true}
	runner, err := NewRunner(RunnerParams{
		Logger:   testLogger(),
		Lock:     lock,
		Interval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	assert.GreaterOrEqual(t, lock.acquires, 1)
}

func TestRegistrySkipsNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &fakeJob{name: "only"})
	registry.Register(nil)
	require.Len(t, registry.Jobs(), 1)
	assert.Equal(t, "only", registry.Jobs()[0].Name())
}
