package services

import (
	"Cruder/internal/config"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var ErrCleaningInProgress = errors.New("cleaning is in progress")

// Purger hard-deletes rows soft-deleted before a point in time.
type Purger interface {
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// Purgers maps a resource name to its purger.
type Purgers map[string]Purger

type Janitor struct {
	purgers       Purgers
	configuration *config.Configuration
	logService    LogService
	cleaning      bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewJanitorService(
	purgers Purgers,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		purgers:       purgers,
		logService:    logService,
		configuration: configuration,
		cron:          cron.New(),
	}
}

// ForceStartCleanCycle runs one purge in the background unless one is
// already running.
func (j *Janitor) ForceStartCleanCycle() error {
	if !j.begin() {
		return ErrCleaningInProgress
	}
	go func() {
		defer j.end()
		j.startClean(true)
	}()
	return nil
}

// StartCleanCycle schedules purges on the configured cron schedule.
func (j *Janitor) StartCleanCycle() error {
	cronSchedule := j.configuration.Server.CleanConfig.Schedule
	j.logService.Log.WithField("cron", cronSchedule).Debug("starting cleaning job")
	_, err := j.cron.AddFunc(cronSchedule, func() {
		if !j.begin() {
			return
		}
		defer j.end()
		j.startClean(false)
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to start cleaning job")
		return err
	}
	j.cron.Start()
	return nil
}

// StopClean stops the schedule and waits for a running purge to finish.
func (j *Janitor) StopClean() {
	<-j.cron.Stop().Done()
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "stopped",
	}).Info("Janitor clean stopped")
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) begin() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.cleaning {
		return false
	}
	j.cleaning = true
	return true
}

func (j *Janitor) end() {
	j.mutex.Lock()
	j.cleaning = false
	j.mutex.Unlock()
}

func (j *Janitor) startClean(forced bool) {
	before := time.Now().Add(-j.configuration.Server.CleanConfig.Retention)
	logFields := logrus.Fields{
		"job":    "clean",
		"status": "start",
		"before": before.Format(time.RFC3339),
	}
	if forced {
		logFields["status"] = "forced"
	} else {
		logFields["cron"] = j.configuration.Server.CleanConfig.Schedule
	}
	j.logService.Log.WithFields(logFields).Debug("cleaning job started")

	names := make([]string, 0, len(j.purgers))
	for name := range j.purgers {
		names = append(names, name)
	}
	sort.Strings(names)

	var purgedCount int64
	for _, name := range names {
		count, err := j.purgers[name].Purge(context.Background(), before)
		if err != nil {
			j.logService.Log.WithFields(logrus.Fields{
				"job":      "clean",
				"status":   "error",
				"resource": name,
				"error":    err.Error(),
			}).Error("Failed to purge deleted rows")
			continue
		}
		purgedCount += count
	}
	if purgedCount > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "clean",
			"status": "success",
			"count":  purgedCount,
		}).Info("cleaning job finished")
	}
}
