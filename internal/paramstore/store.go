// Package paramstore implements the Parameter Store (spec §4.2): a
// versioned, time-windowed regulatory-parameter resolver with a
// cache-aside Redis layer in front of a persistent store, falling
// through to a compiled-default table when the store is unreachable or
// has no matching row.
package paramstore

import (
	"context"
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// PersistentStore is the durable backing store for regulation parameters,
// implemented by internal/repository against Postgres.
type PersistentStore interface {
	// FindCandidates returns every active row for paramKey whose
	// effective window covers effectiveAt, ordered by effective_from
	// descending (spec §4.2.1 steps 1 and 3 minus condition filtering,
	// which the resolver applies).
	FindCandidates(ctx context.Context, paramKey string, effectiveAt time.Time) ([]domain.RegulationParam, error)
	Insert(ctx context.Context, p domain.RegulationParam) error
	Deactivate(ctx context.Context, paramID string, effectiveTo time.Time) error
	FindByKeyAndEffectiveFrom(ctx context.Context, paramKey string, effectiveFrom time.Time) (*domain.RegulationParam, error)
	List(ctx context.Context, category *domain.ParamCategory, isActive *bool) ([]domain.RegulationParam, error)
}

// Cache is the short-lived front cache described in spec §4.2.2.
type Cache interface {
	Get(ctx context.Context, key string) (domain.ParamValue, bool, error)
	Set(ctx context.Context, key string, value domain.ParamValue, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, paramKey string) error
}
