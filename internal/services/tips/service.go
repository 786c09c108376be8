package tips

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

// ErrGenerationInFlight is returned while a previous request is still
// being answered.
var ErrGenerationInFlight = errors.New("tip generation already in flight")

// Generator produces personalized tips for a profile.
type Generator interface {
	Generate(ctx context.Context, profile model.Profile) ([]model.Tip, error)
}

// Cache keeps the last generated tip set between requests. A nil cache
// is allowed.
type Cache interface {
	Load(ctx context.Context) ([]model.Tip, bool, error)
	Store(ctx context.Context, tips []model.Tip) error
}

// Fallback returns the static tips shown when no generator is
// configured or generation fails.
func Fallback() []model.Tip {
	return []model.Tip{
		{Title: "Hydrate", Description: "Drink at least 2L of water today.", Category: "General"},
		{Title: "Protein", Description: "Ensure you hit your protein goals for muscle retention.", Category: "Diet"},
	}
}

// Service fetches daily tips with a single-flight guard and a static
// fallback. Generator failures are logged, never surfaced.
type Service struct {
	gen     Generator
	cache   Cache
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	pending bool
}

func NewService(gen Generator, cache Cache, timeout time.Duration, log *zap.Logger) *Service {
	return &Service{gen: gen, cache: cache, timeout: timeout, log: log}
}

// Fetch returns tips for the profile. Cached tips win; otherwise only
// one generation runs at a time and concurrent callers get
// ErrGenerationInFlight.
func (s *Service) Fetch(ctx context.Context, profile model.Profile) ([]model.Tip, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Load(ctx); err == nil && ok {
			return cached, nil
		}
	}
	if s.gen == nil {
		return Fallback(), nil
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	s.pending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	generated, err := s.gen.Generate(ctx, profile)
	if err != nil {
		s.log.Warn("tip generation failed, serving fallback", zap.Error(err))
		return Fallback(), nil
	}
	if len(generated) == 0 {
		s.log.Warn("tip generation returned nothing, serving fallback")
		return Fallback(), nil
	}
	if s.cache != nil {
		if err := s.cache.Store(ctx, generated); err != nil {
			s.log.Warn("storing tips cache failed", zap.Error(err))
		}
	}
	return generated, nil
}
