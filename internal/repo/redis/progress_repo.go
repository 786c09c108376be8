package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

const progressKey = "progress:weight"

// ProgressRepo keeps the ordered weight-trend sequence the dashboard
// chart consumes. Records append at the tail; List returns them oldest
// first.
type ProgressRepo struct {
	client *goredis.Client
	log    *zap.Logger
}

func NewProgressRepo(client *goredis.Client, log *zap.Logger) *ProgressRepo {
	return &ProgressRepo{client: client, log: log}
}

func (r *ProgressRepo) Append(ctx context.Context, record model.WeightRecord) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal weight record: %w", err)
	}

	if err := r.client.RPush(ctx, progressKey, raw).Err(); err != nil {
		return fmt.Errorf("append weight record: %w", err)
	}

	return nil
}

func (r *ProgressRepo) List(ctx context.Context) ([]model.WeightRecord, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	rawRecords, err := r.client.LRange(ctx, progressKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}

	records := make([]model.WeightRecord, 0, len(rawRecords))
	for _, raw := range rawRecords {
		var record model.WeightRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			if r.log != nil {
				r.log.Warn("skipping malformed weight record", zap.Error(err))
			}
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
