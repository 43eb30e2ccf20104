package services

import (
	"Cruder/internal/config"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls   atomic.Int32
	release chan struct{}
	before  atomic.Value
	err     error
}

func (p *fakePurger) Purge(_ context.Context, before time.Time) (int64, error) {
	p.calls.Add(1)
	p.before.Store(before)
	if p.release != nil {
		<-p.release
	}
	return 2, p.err
}

func discardLogService() LogService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return LogService{Log: log}
}

func TestJanitor_ForceStartCleanCycle(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Server.CleanConfig.Retention = time.Hour
	boxes := &fakePurger{}
	failing := &fakePurger{err: errors.New("locked")}
	janitor := NewJanitorService(Purgers{"boxes": boxes, "items": failing}, discardLogService(), cfg)

	require.NoError(t, janitor.ForceStartCleanCycle())

	assert.Eventually(t, func() bool {
		return !janitor.IsCleaning() && boxes.calls.Load() == 1 && failing.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	before := boxes.before.Load().(time.Time)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), before, 5*time.Second)
}

func TestJanitor_ForceStartWhileCleaning(t *testing.T) {
	purger := &fakePurger{release: make(chan struct{})}
	janitor := NewJanitorService(Purgers{"boxes": purger}, discardLogService(), config.DefaultConfiguration())

	require.NoError(t, janitor.ForceStartCleanCycle())
	assert.True(t, janitor.IsCleaning())
	assert.ErrorIs(t, janitor.ForceStartCleanCycle(), ErrCleaningInProgress)

	close(purger.release)
	assert.Eventually(t, func() bool { return !janitor.IsCleaning() }, time.Second, 10*time.Millisecond)
	assert.NoError(t, janitor.ForceStartCleanCycle())
	assert.Eventually(t, func() bool { return purger.calls.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestJanitor_StartCleanCycleInvalidSchedule(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Server.CleanConfig.Schedule = "not a schedule"
	janitor := NewJanitorService(Purgers{}, discardLogService(), cfg)

	assert.Error(t, janitor.StartCleanCycle())
}

func TestJanitor_StartAndStop(t *testing.T) {
	janitor := NewJanitorService(Purgers{}, discardLogService(), config.DefaultConfiguration())

	require.NoError(t, janitor.StartCleanCycle())
	janitor.StopClean()
	assert.False(t, janitor.IsCleaning())
}
