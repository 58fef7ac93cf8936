package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisPurgeLockKey guards the purge sweep so one instance runs it per interval.
const RedisPurgeLockKey = "appointments:purge:lock"

// ElapsedPurger removes appointments whose slot started before now.
type ElapsedPurger interface {
	PurgeElapsedAppointments(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// AppointmentPurgeWorker periodically sweeps elapsed appointments.
type AppointmentPurgeWorker struct {
	purger      ElapsedPurger
	redisClient *redis.Client
	log         *logrus.Logger
	interval    time.Duration
	instanceID  string
	now         func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

// NewAppointmentPurgeWorker builds the worker. A nil redisClient disables the
// cross-instance lock.
func NewAppointmentPurgeWorker(purger ElapsedPurger, redisClient *redis.Client, log *logrus.Logger, interval time.Duration) *AppointmentPurgeWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AppointmentPurgeWorker{
		purger:      purger,
		redisClient: redisClient,
		log:         log,
		interval:    interval,
		instanceID:  uuid.NewString(),
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}

// Start launches the sweep loop. Only the first call has an effect.
func (w *AppointmentPurgeWorker) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	w.wg.Add(1)
	go w.loop()
}

// Stop ends the loop and waits for an in-flight sweep. Safe to call multiple times.
func (w *AppointmentPurgeWorker) Stop() {
	if w.stopped.CompareAndSwap(false, true) {
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("AppointmentPurgeWorker stopped")
	}
}

func (w *AppointmentPurgeWorker) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), w.interval)
			if _, err := w.RunOnce(ctx); err != nil {
				w.log.Warnf("Failed to purge elapsed appointments: %+v", err)
			}
			cancel()
		}
	}
}

// RunOnce performs a single sweep and returns how many appointments were removed.
// It returns (0, nil) without sweeping when another instance holds the lock.
func (w *AppointmentPurgeWorker) RunOnce(ctx context.Context) (int, error) {
	if w.redisClient != nil {
		acquired, err := w.redisClient.SetNX(ctx, RedisPurgeLockKey, w.instanceID, w.lockTTL()).Result()
		if err != nil {
			return 0, err
		}
		if !acquired {
			w.log.Debug("Purge lock held by another instance, skipping sweep")
			return 0, nil
		}
	}

	ids, err := w.purger.PurgeElapsedAppointments(ctx, w.now())
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		w.log.Infof("Purged %d elapsed appointments", len(ids))
	}
	return len(ids), nil
}

// lockTTL expires a little before the next tick so the lock never outlives an interval.
func (w *AppointmentPurgeWorker) lockTTL() time.Duration {
	ttl := w.interval - w.interval/10
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
