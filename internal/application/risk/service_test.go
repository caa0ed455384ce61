package risk

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// fakeCache is an in-memory Cache that serializes through JSON the way the
// Redis-backed implementation does.
type fakeCache struct {
	store   map[string][]byte
	loads   int
	deleted []string
	fail    bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) GetOrSet(ctx context.Context, key string, dest interface{}, _ time.Duration, loader func(context.Context) (interface{}, error)) error {
	if c.fail {
		return errors.New(errors.ErrCodeCacheError, "cache down")
	}
	if b, ok := c.store[key]; ok {
		return json.Unmarshal(b, dest)
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	c.loads++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return json.Unmarshal(b, dest)
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.store, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type recordingMetrics struct {
	scored int
}

func (m *recordingMetrics) RiskScored(string, int) { m.scored++ }

func riskyEquipmentScorer() (*Scorer, *equipment.Equipment) {
	eq := equipment.New("Chiller-1", equipment.TypeCommercialRefrigeration, "R-134a", 200, 10, 30)
	history := []*inspection.LeakInspection{
		historyInspection(eq.ID, 5, ratePtr(9.0), true),
		historyInspection(eq.ID, 35, ratePtr(7.0), true),
	}
	return newScorer(eq, history, 0), eq
}

func TestAssessEquipmentCachesResult(t *testing.T) {
	scorer, eq := riskyEquipmentScorer()
	cache := newFakeCache()
	metrics := &recordingMetrics{}
	svc := NewService(scorer, logging.NewNopLogger(),
		WithCache(cache, time.Minute), WithMetrics(metrics))

	first, err := svc.AssessEquipment(context.Background(), eq.ID)
	if err != nil {
		t.Fatalf("AssessEquipment: %v", err)
	}
	second, err := svc.AssessEquipment(context.Background(), eq.ID)
	if err != nil {
		t.Fatalf("AssessEquipment (cached): %v", err)
	}

	if cache.loads != 1 {
		t.Errorf("loader ran %d times, want 1", cache.loads)
	}
	if first.RiskScore != second.RiskScore || first.RiskLevel != second.RiskLevel {
		t.Errorf("cached assessment differs: %+v vs %+v", first, second)
	}
	if metrics.scored != 1 {
		t.Errorf("metrics recorded %d scores, want 1 (cache hit skips scoring)", metrics.scored)
	}
}

func TestAssessEquipmentFallsBackWhenCacheDown(t *testing.T) {
	scorer, eq := riskyEquipmentScorer()
	cache := newFakeCache()
	cache.fail = true
	svc := NewService(scorer, logging.NewNopLogger(), WithCache(cache, time.Minute))

	a, err := svc.AssessEquipment(context.Background(), eq.ID)
	if err != nil {
		t.Fatalf("cache outage must not fail the assessment: %v", err)
	}
	if a.RiskScore != 70 {
		t.Errorf("RiskScore = %d, want 70", a.RiskScore)
	}
}

func TestAssessEquipmentWithoutCache(t *testing.T) {
	scorer, eq := riskyEquipmentScorer()
	svc := NewService(scorer, logging.NewNopLogger())

	a, err := svc.AssessEquipment(context.Background(), eq.ID)
	if err != nil {
		t.Fatalf("AssessEquipment: %v", err)
	}
	if a.RiskLevel != common.RiskLevelCritical {
		t.Errorf("RiskLevel = %s", a.RiskLevel)
	}
}

func TestInvalidateDropsEquipmentAndFleetKeys(t *testing.T) {
	scorer, eq := riskyEquipmentScorer()
	cache := newFakeCache()
	svc := NewService(scorer, logging.NewNopLogger(), WithCache(cache, time.Minute))

	if _, err := svc.AssessEquipment(context.Background(), eq.ID); err != nil {
		t.Fatalf("AssessEquipment: %v", err)
	}
	svc.Invalidate(context.Background(), eq.ID)

	if len(cache.deleted) != 2 {
		t.Fatalf("deleted = %v, want equipment and fleet keys", cache.deleted)
	}
	if cache.deleted[1] != "risk:fleet" {
		t.Errorf("fleet key not invalidated: %v", cache.deleted)
	}
}

func TestAssessFleet(t *testing.T) {
	scorer, _ := riskyEquipmentScorer()
	svc := NewService(scorer, logging.NewNopLogger())

	out, err := svc.AssessFleet(context.Background())
	if err != nil {
		t.Fatalf("AssessFleet: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].RiskLevel != common.RiskLevelCritical {
		t.Errorf("RiskLevel = %s", out[0].RiskLevel)
	}
}

//Personal.AI order the ending
