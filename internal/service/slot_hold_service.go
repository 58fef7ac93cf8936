package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another user is already checking out the slot.
var ErrSlotHeld = errors.New("slot is held by another checkout")

// RedisSlotHoldKeyPrefix prefixes slot hold keys: slot:hold:<doctor>:<date>:<time>.
const RedisSlotHoldKeyPrefix = "slot:hold:"

// acquireHoldScript places a hold owned by ARGV[1] for ARGV[2] milliseconds.
// The current owner may re-acquire to extend the hold. Returns 1 on success, 0 if
// someone else holds the slot.
var acquireHoldScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[1])
	if not current then
		redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
		return 1
	end
	if current == ARGV[1] then
		redis.call('PEXPIRE', KEYS[1], ARGV[2])
		return 1
	end
	return 0
`)

// releaseHoldScript deletes the hold only if ARGV[1] still owns it.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotHoldService keeps short-lived Redis holds on slots between payment order
// creation and booking, so two patients are not charged for the same slot.
// The ledger stays the source of truth; a hold never makes a booking succeed.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	now         func() time.Time
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotHoldService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Hold reserves the slot for owner and returns when the hold expires.
func (s *SlotHoldService) Hold(ctx context.Context, slot repository.Slot, owner uuid.UUID) (time.Time, error) {
	key := slotHoldKey(slot)

	result, err := acquireHoldScript.Run(ctx, s.redisClient, []string{key}, owner.String(), s.ttl.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed to place hold on %s: %+v", key, err)
		return time.Time{}, fmt.Errorf("hold slot %s: %w", key, err)
	}
	if result == 0 {
		return time.Time{}, ErrSlotHeld
	}

	s.log.Debugf("Placed hold on %s for %s", key, owner)
	return s.now().Add(s.ttl), nil
}

// Release drops the hold if owner still holds it. Releasing a hold that expired or
// belongs to someone else is a no-op.
func (s *SlotHoldService) Release(ctx context.Context, slot repository.Slot, owner uuid.UUID) error {
	key := slotHoldKey(slot)

	if err := releaseHoldScript.Run(ctx, s.redisClient, []string{key}, owner.String()).Err(); err != nil {
		s.log.Warnf("Failed to release hold on %s: %+v", key, err)
		return fmt.Errorf("release slot %s: %w", key, err)
	}
	return nil
}

func slotHoldKey(slot repository.Slot) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotHoldKeyPrefix, slot.DoctorID, policy.FormatDate(slot.Date), slot.Time)
}
