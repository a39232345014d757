package repository

import (
	"context"
	"fmt"
	"time"

	"tripdesk/pkg/config"
	"tripdesk/pkg/model"

	"github.com/redis/go-redis/v9"
)

// SeatHoldRepository holds seats in Redis while a checkout walks its steps.
// A hold expires on its own if the session is abandoned.
type SeatHoldRepository interface {
	Acquire(ctx context.Context, option model.TravelOption, seat string, sessionID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, option model.TravelOption, seat string) error
}

type redisSeatHoldRepository struct {
	client *redis.Client
}

func NewRedisSeatHoldRepository(cfg *config.Config) SeatHoldRepository {
	return &redisSeatHoldRepository{client: cfg.Client.Redis.Client}
}

func (r *redisSeatHoldRepository) Acquire(ctx context.Context, option model.TravelOption, seat string, sessionID string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, seatHoldKey(option, seat), sessionID, ttl).Result()
}

func (r *redisSeatHoldRepository) Release(ctx context.Context, option model.TravelOption, seat string) error {
	return r.client.Del(ctx, seatHoldKey(option, seat)).Err()
}

func seatHoldKey(option model.TravelOption, seat string) string {
	return fmt.Sprintf("hold:%s:%s:%d:%s", option.ProviderCode, option.Mode, option.DepartureTime.Unix(), seat)
}
