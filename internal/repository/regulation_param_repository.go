package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// RegulationParamRepository implements paramstore.PersistentStore against
// Postgres.
type RegulationParamRepository struct {
	db *gorm.DB
}

// NewRegulationParamRepository builds a RegulationParamRepository.
func NewRegulationParamRepository(db *gorm.DB) *RegulationParamRepository {
	return &RegulationParamRepository{db: db}
}

// FindCandidates returns every active row for paramKey whose effective
// window covers effectiveAt, ordered by effective_from descending. The
// caller (paramstore.Resolver) applies the condition-subset filter.
func (r *RegulationParamRepository) FindCandidates(ctx context.Context, paramKey string, effectiveAt time.Time) ([]domain.RegulationParam, error) {
	var rows []regulationParamModel
	err := r.db.WithContext(ctx).
		Where("param_key = ? AND is_active = true AND effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)",
			paramKey, effectiveAt, effectiveAt).
		Order("effective_from DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.RegulationParam, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Insert persists a new RegulationParam row.
func (r *RegulationParamRepository) Insert(ctx context.Context, p domain.RegulationParam) error {
	m := toRegulationParamModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Deactivate marks a row inactive and stamps its effective_to.
func (r *RegulationParamRepository) Deactivate(ctx context.Context, paramID string, effectiveTo time.Time) error {
	return r.db.WithContext(ctx).Model(&regulationParamModel{}).
		Where("id = ?", paramID).
		Updates(map[string]interface{}{"is_active": false, "effective_to": effectiveTo}).Error
}

// FindByKeyAndEffectiveFrom checks the (param_key, effective_from)
// uniqueness constraint enforced by Admin.CreateParam.
func (r *RegulationParamRepository) FindByKeyAndEffectiveFrom(ctx context.Context, paramKey string, effectiveFrom time.Time) (*domain.RegulationParam, error) {
	var m regulationParamModel
	err := r.db.WithContext(ctx).
		Where("param_key = ? AND effective_from = ?", paramKey, effectiveFrom).
		First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := m.toDomain()
	return &d, nil
}

// List returns regulation params, optionally filtered by category and
// active status (spec §6's list_params external interface).
func (r *RegulationParamRepository) List(ctx context.Context, category *domain.ParamCategory, isActive *bool) ([]domain.RegulationParam, error) {
	q := r.db.WithContext(ctx).Model(&regulationParamModel{})
	if category != nil {
		q = q.Where("category = ?", string(*category))
	}
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var rows []regulationParamModel
	if err := q.Order("param_key, effective_from DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RegulationParam, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}
