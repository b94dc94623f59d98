package holdstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookcore/internal/domain/hold"
	"bookcore/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hold:"

// RedisStore keeps holds in Redis keyed by hold ID, with the TTL doing the
// expiry sweep for us: an expired hold is simply gone, which is exactly the
// fail-closed behavior Redeem needs.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, h hold.Hold, ttl time.Duration) error {
	payload, err := json.Marshal(h)
	if err != nil {
		return infra.WrapRepoErr("failed to encode hold", err)
	}

	if err := s.client.Set(ctx, keyPrefix+h.ID.String(), payload, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store hold", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load hold", err)
	}

	var h hold.Hold
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, infra.WrapRepoErr("failed to decode hold", err)
	}
	return &h, nil
}

// Delete is idempotent; removing a missing hold is not an error.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete hold", err)
	}
	return nil
}
