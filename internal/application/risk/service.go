package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Cache is the read-through cache port.  The loader runs only on a miss; its
// result is stored under key for ttl and decoded into dest either way.
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(context.Context) (interface{}, error)) error
	Delete(ctx context.Context, keys ...string) error
}

// Metrics records scoring outcomes for the metrics endpoint.
type Metrics interface {
	RiskScored(level string, score int)
}

// nopCache is the placeholder before WithCache is applied; with caching
// disabled the service never consults it.
type nopCache struct{}

func (nopCache) GetOrSet(ctx context.Context, _ string, _ interface{}, _ time.Duration, loader func(context.Context) (interface{}, error)) error {
	_, err := loader(ctx)
	return err
}

func (nopCache) Delete(context.Context, ...string) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RiskScored(string, int) {}

const (
	cacheKeyFleet            = "risk:fleet"
	cacheKeyEquipmentPattern = "risk:equipment:%s"
)

// Service wraps the Scorer with caching, metrics, and logging.  Assessments
// are cheap but read-heavy; the dashboard polls them aggressively, so results
// are cached for a short TTL and invalidated when a new inspection lands.
type Service struct {
	scorer   *Scorer
	cache    Cache
	cacheTTL time.Duration
	metrics  Metrics
	logger   logging.Logger

	// caching is disabled when no cache was wired.
	caching bool
}

// Option customizes a Service.
type Option func(*Service)

// WithCache wires a read-through cache with the given TTL.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
		s.caching = c != nil && ttl > 0
	}
}

// WithMetrics wires the metrics collector.
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the risk Service around a Scorer.
func NewService(scorer *Scorer, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		scorer:  scorer,
		cache:   nopCache{},
		metrics: nopMetrics{},
		logger:  logger.Named("risk"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssessEquipment returns the risk assessment for one appliance, served from
// cache when fresh.
func (s *Service) AssessEquipment(ctx context.Context, equipmentID common.ID) (*Assessment, error) {
	if !s.caching {
		return s.score(ctx, equipmentID)
	}

	var a Assessment
	key := fmt.Sprintf(cacheKeyEquipmentPattern, equipmentID)
	err := s.cache.GetOrSet(ctx, key, &a, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		fresh, err := s.score(ctx, equipmentID)
		if err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		if appErr := errors.GetCode(err); appErr == errors.ErrCodeCacheError {
			// Serve a live score when the cache is down.
			s.logger.Warn("risk cache unavailable, scoring live", logging.Err(err))
			return s.score(ctx, equipmentID)
		}
		return nil, err
	}
	return &a, nil
}

// AssessFleet returns assessments for every active appliance, highest risk
// first, served from cache when fresh.
func (s *Service) AssessFleet(ctx context.Context) ([]*Assessment, error) {
	if !s.caching {
		return s.scoreFleet(ctx)
	}

	var out []*Assessment
	err := s.cache.GetOrSet(ctx, cacheKeyFleet, &out, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		fresh, err := s.scoreFleet(ctx)
		if err != nil {
			return nil, err
		}
		return fresh, nil
	})
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeCacheError {
			s.logger.Warn("risk cache unavailable, scoring live", logging.Err(err))
			return s.scoreFleet(ctx)
		}
		return nil, err
	}
	return out, nil
}

// Invalidate drops cached assessments for the appliance and the fleet view.
// Called when a new inspection changes the underlying history.
func (s *Service) Invalidate(ctx context.Context, equipmentID common.ID) {
	if !s.caching {
		return
	}
	keys := []string{fmt.Sprintf(cacheKeyEquipmentPattern, equipmentID), cacheKeyFleet}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("invalidate risk cache", logging.Err(err))
	}
}

func (s *Service) score(ctx context.Context, equipmentID common.ID) (*Assessment, error) {
	a, err := s.scorer.ScoreEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	s.metrics.RiskScored(string(a.RiskLevel), a.RiskScore)
	s.logger.Debug("equipment scored",
		logging.String("equipment_id", string(equipmentID)),
		logging.String("risk_level", string(a.RiskLevel)),
		logging.Int("risk_score", a.RiskScore))
	return a, nil
}

func (s *Service) scoreFleet(ctx context.Context) ([]*Assessment, error) {
	out, err := s.scorer.ScoreAllActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range out {
		s.metrics.RiskScored(string(a.RiskLevel), a.RiskScore)
	}
	return out, nil
}

//Personal.AI order the ending
