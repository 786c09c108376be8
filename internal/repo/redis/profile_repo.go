package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

// profileKey is the fixed slot the single user profile lives under.
// The store holds one record; every save overwrites it.
const profileKey = "profile:record"

type ProfileRepo struct {
	client *goredis.Client
	log    *zap.Logger
}

func NewProfileRepo(client *goredis.Client, log *zap.Logger) *ProfileRepo {
	return &ProfileRepo{client: client, log: log}
}

// Load returns the stored profile, or found=false when the slot is
// empty. A malformed stored record is logged and reported as absent,
// never as an error: a corrupt slot must not block the login flow.
func (r *ProfileRepo) Load(ctx context.Context) (model.Profile, bool, error) {
	if r.client == nil {
		return model.Profile{}, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, profileKey).Bytes()
	if err == goredis.Nil {
		return model.Profile{}, false, nil
	}
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("get profile record: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		if r.log != nil {
			r.log.Warn("stored profile record is malformed, treating as absent", zap.Error(err))
		}
		return model.Profile{}, false, nil
	}

	return profile, true, nil
}

func (r *ProfileRepo) Save(ctx context.Context, profile model.Profile) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile record: %w", err)
	}

	if err := r.client.Set(ctx, profileKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set profile record: %w", err)
	}

	return nil
}
