package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls atomic.Int32
	ids   []uuid.UUID
	err   error
	seen  atomic.Value
}

func (f *fakePurger) PurgeElapsedAppointments(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	f.calls.Add(1)
	f.seen.Store(now)
	return f.ids, f.err
}

func TestAppointmentPurgeWorker_RunOnce(t *testing.T) {
	_, client := newTestRedis(t)
	log, _ := test.NewNullLogger()
	purger := &fakePurger{ids: []uuid.UUID{uuid.New(), uuid.New()}}

	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	w := NewAppointmentPurgeWorker(purger, client, log, time.Minute)
	w.now = func() time.Time { return fixed }

	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, fixed, purger.seen.Load())
}

func TestAppointmentPurgeWorker_LockSkipsOtherInstances(t *testing.T) {
	mr, client := newTestRedis(t)
	log, _ := test.NewNullLogger()
	purger := &fakePurger{}

	first := NewAppointmentPurgeWorker(purger, client, log, time.Minute)
	second := NewAppointmentPurgeWorker(purger, client, log, time.Minute)

	_, err := first.RunOnce(context.Background())
	require.NoError(t, err)
	_, err = second.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), purger.calls.Load())

	mr.FastForward(time.Minute)
	_, err = second.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), purger.calls.Load())
}

func TestAppointmentPurgeWorker_PurgeError(t *testing.T) {
	log, _ := test.NewNullLogger()
	purger := &fakePurger{err: errors.New("db down")}

	w := NewAppointmentPurgeWorker(purger, nil, log, time.Minute)
	_, err := w.RunOnce(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestAppointmentPurgeWorker_TicksUntilStopped(t *testing.T) {
	log, _ := test.NewNullLogger()
	purger := &fakePurger{}

	w := NewAppointmentPurgeWorker(purger, nil, log, 10*time.Millisecond)
	w.Start()
	w.Start()

	require.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	w.Stop()
	w.Stop()

	calls := purger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, purger.calls.Load())
}
