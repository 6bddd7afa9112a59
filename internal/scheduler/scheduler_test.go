package scheduler

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(nil, testLogger())

	// Starting with no jobs fails
	require.Error(t, s.Start())

	require.NoError(t, s.SchedulePasses("@every 1h"))
	require.NoError(t, s.ScheduleCleanup("0 4 * * *", 14*24*time.Hour))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	// Cannot add jobs while running
	assert.Error(t, s.SchedulePasses("@every 1m"))

	next := s.GetNextRun()
	assert.False(t, next.IsZero())
	assert.True(t, next.After(time.Now().Add(-time.Second)))

	assert.Len(t, s.Entries(), 2)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())

	// Stopping twice is a no-op
	require.NoError(t, s.Stop())
}

func TestScheduleInvalidCron(t *testing.T) {
	s := NewScheduler(nil, testLogger())
	assert.Error(t, s.SchedulePasses("not a cron expr"))
}
