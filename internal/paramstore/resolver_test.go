package paramstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// fakeStore is an in-memory PersistentStore for resolver tests.
type fakeStore struct {
	rows    []domain.RegulationParam
	failErr error
}

func (f *fakeStore) FindCandidates(ctx context.Context, paramKey string, effectiveAt time.Time) ([]domain.RegulationParam, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []domain.RegulationParam
	for _, r := range f.rows {
		if r.ParamKey == paramKey {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeStore) Insert(ctx context.Context, p domain.RegulationParam) error { return nil }
func (f *fakeStore) Deactivate(ctx context.Context, id string, effectiveTo time.Time) error {
	return nil
}
func (f *fakeStore) FindByKeyAndEffectiveFrom(ctx context.Context, paramKey string, effectiveFrom time.Time) (*domain.RegulationParam, error) {
	return nil, nil
}
func (f *fakeStore) List(ctx context.Context, category *domain.ParamCategory, isActive *bool) ([]domain.RegulationParam, error) {
	return f.rows, nil
}

func TestResolve_FallsThroughToCompiledDefaults(t *testing.T) {
	r := NewResolver(nil, nil, nil, 5*time.Minute, time.Minute)
	v, source, degraded, err := r.Resolve(context.Background(), "dsr.max_ratio", time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, source)
	assert.False(t, degraded)
	assert.Equal(t, 40.0, v.RatioPercent)
}

func TestResolve_StorePreferredOverDefault(t *testing.T) {
	store := &fakeStore{rows: []domain.RegulationParam{
		row("dsr.max_ratio", ratio(35, 0), epoch, "", nil),
	}}
	for i := range store.rows {
		store.rows[i].IsActive = true
	}
	r := NewResolver(nil, store, nil, 5*time.Minute, time.Minute)
	v, source, _, err := r.Resolve(context.Background(), "dsr.max_ratio", time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, SourceStore, source)
	assert.Equal(t, 35.0, v.RatioPercent)
}

func TestResolve_StoreUnreachableFallsToDefault(t *testing.T) {
	store := &fakeStore{failErr: assertErr{"boom"}}
	r := NewResolver(nil, store, nil, 5*time.Minute, time.Minute)
	v, source, degraded, err := r.Resolve(context.Background(), "ltv.general", time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, source)
	assert.True(t, degraded)
	assert.Equal(t, 70.0, v.RatioPercent)
}

func TestResolve_StressDSRPhaseTransition(t *testing.T) {
	r := NewResolver(nil, nil, nil, 5*time.Minute, time.Minute)

	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v, _, _, err := r.Resolve(context.Background(), "stress_dsr.non_metropolitan.variable", before, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.50, v.RatePP)

	after := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	v, _, _, err = r.Resolve(context.Background(), "stress_dsr.non_metropolitan.variable", after, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.00, v.RatePP)
}

func TestResolve_UnknownKeyIsDependencyFatal(t *testing.T) {
	r := NewResolver(nil, nil, nil, 5*time.Minute, time.Minute)
	_, _, _, err := r.Resolve(context.Background(), "no.such.key", time.Now(), nil)
	assert.Error(t, err)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
