package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

const tipsCacheKey = "tips:daily"

// TipsCacheRepo keeps the last generated tip set so repeated dashboard
// loads do not hit the model again.
type TipsCacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewTipsCacheRepo(client *goredis.Client, ttl time.Duration, log *zap.Logger) *TipsCacheRepo {
	return &TipsCacheRepo{client: client, ttl: ttl, log: log}
}

func (r *TipsCacheRepo) Load(ctx context.Context) ([]model.Tip, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, tipsCacheKey).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load cached tips: %w", err)
	}

	var cached []model.Tip
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		if r.log != nil {
			r.log.Warn("dropping corrupt tips cache entry", zap.Error(err))
		}
		return nil, false, nil
	}
	return cached, true, nil
}

func (r *TipsCacheRepo) Store(ctx context.Context, cached []model.Tip) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal tips: %w", err)
	}

	if err := r.client.Set(ctx, tipsCacheKey, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("store cached tips: %w", err)
	}

	return nil
}
