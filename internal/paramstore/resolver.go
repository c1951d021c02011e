package paramstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// Source identifies where a resolved value came from.
type Source string

const (
	SourceCache   Source = "cache"
	SourceStore   Source = "store"
	SourceDefault Source = "default"
)

// Resolver implements the query contract of spec §4.2.1: resolve(param_key,
// effective_at, condition_match?) -> value_or_absent, fronted by a cache
// and falling through to compiled defaults on dependency failure.
type Resolver struct {
	cache   Cache
	store   PersistentStore
	log     *zap.Logger
	cacheTTL time.Duration

	warnMu    sync.Mutex
	lastWarn  map[string]time.Time
	warnEvery time.Duration
}

// NewResolver builds a Resolver. cache or store may be nil (e.g. in tests
// exercising the compiled-default fallback in isolation).
func NewResolver(cache Cache, store PersistentStore, log *zap.Logger, cacheTTL, warnEvery time.Duration) *Resolver {
	return &Resolver{
		cache:     cache,
		store:     store,
		log:       log,
		cacheTTL:  cacheTTL,
		lastWarn:  make(map[string]time.Time),
		warnEvery: warnEvery,
	}
}

func cacheKey(paramKey string, cond domain.ParamCondition, effectiveAt time.Time) string {
	bucket := effectiveAt.UTC().Truncate(time.Minute).Format(time.RFC3339)
	return fmt.Sprintf("paramstore:%s:%v:%s", paramKey, cond, bucket)
}

// Resolve implements the three-step algorithm of spec §4.2.1, with the
// cache-then-store-then-compiled-default fallback chain of §4.2.2. Cache
// and store failures are not returned to the caller: they degrade locally
// to the next tier, per §7's dependency_degraded policy. The only error is
// a dependency_fatal one, returned when no tier (compiled defaults
// included) has a value for the key. degraded reports whether the cache
// or the store returned an error along the way, so the caller can append
// to regulation_snapshot.degradations; a plain cache miss, an absent
// cache or store, or a store with no matching row does not set it.
func (r *Resolver) Resolve(ctx context.Context, paramKey string, effectiveAt time.Time, cond domain.ParamCondition) (value domain.ParamValue, source Source, degraded bool, err error) {
	key := cacheKey(paramKey, cond, effectiveAt)

	if r.cache != nil {
		v, hit, cerr := r.cache.Get(ctx, key)
		if cerr == nil && hit {
			return v, SourceCache, false, nil
		}
		if cerr != nil {
			r.warn(paramKey, "cache unreachable, falling through to persistent store")
			degraded = true
		}
	}

	if r.store != nil {
		rows, serr := r.store.FindCandidates(ctx, paramKey, effectiveAt)
		if serr == nil {
			if row, ok := selectActive(rows, effectiveAt, cond); ok {
				if r.cache != nil {
					_ = r.cache.Set(ctx, key, row.Value, r.cacheTTL)
				}
				return row.Value, SourceStore, degraded, nil
			}
			// store reachable but no row found for this key/condition:
			// fall through to compiled defaults without flagging a
			// dependency degradation (this is a data, not dependency, gap).
		} else {
			r.warn(paramKey, "persistent store unreachable, falling through to compiled defaults")
			degraded = true
		}
	}

	if v, ok := lookupDefault(paramKey, effectiveAt, cond); ok {
		return v, SourceDefault, degraded, nil
	}

	return domain.ParamValue{}, "", degraded, decisionerr.DependencyFatal(
		"parameter "+paramKey+" unresolvable: cache, store and compiled defaults all failed or lack this key", nil)
}

// warn logs at most once per key per r.warnEvery (spec §4.2.2, §7).
func (r *Resolver) warn(paramKey, msg string) {
	r.warnMu.Lock()
	defer r.warnMu.Unlock()
	last, ok := r.lastWarn[paramKey]
	now := time.Now()
	if ok && now.Sub(last) < r.warnEvery {
		return
	}
	r.lastWarn[paramKey] = now
	if r.log != nil {
		r.log.Warn(msg, zap.String("param_key", paramKey))
	}
}

// selectActive implements spec §4.2.1 steps 1-3 over an already-fetched
// candidate slice: active + effective-window match, condition subset
// filter, ordered by effective_from descending, first wins.
func selectActive(rows []domain.RegulationParam, effectiveAt time.Time, cond domain.ParamCondition) (domain.RegulationParam, bool) {
	var matched []domain.RegulationParam
	for _, row := range rows {
		if !row.CoversInstant(effectiveAt) {
			continue
		}
		if len(row.Condition) > 0 && !row.Condition.Subset(cond) {
			continue
		}
		matched = append(matched, row)
	}
	if len(matched) == 0 {
		return domain.RegulationParam{}, false
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EffectiveFrom.After(matched[j].EffectiveFrom)
	})
	return matched[0], true
}
