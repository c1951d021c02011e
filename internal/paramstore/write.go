package paramstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// AuditSink receives the audit records the write protocol emits.
type AuditSink interface {
	Record(ctx context.Context, rec domain.AuditRecord) error
}

// Admin implements the parameter-admin write protocol of spec §4.2.5 and
// the external interface of spec §6: two-person-rule writes, append-only
// audit, and cache invalidation when a parameter is created.
// DeactivateParam does not invalidate the cache, so cached resolutions of
// a deactivated row remain until their TTL expires.
type Admin struct {
	store PersistentStore
	cache Cache
	audit AuditSink
}

// NewAdmin builds an Admin.
func NewAdmin(store PersistentStore, cache Cache, audit AuditSink) *Admin {
	return &Admin{store: store, cache: cache, audit: audit}
}

// CreateParamRequest mirrors spec §6's create_param external interface.
type CreateParamRequest struct {
	ParamKey      string
	Category      domain.ParamCategory
	PhaseLabel    string
	Value         domain.ParamValue
	Condition     domain.ParamCondition
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	LegalBasis    string
	Description   string
	CreatedBy     string
	ApprovedBy    string
	ChangeReason  string
}

// CreateParam writes a new RegulationParam row, enforcing the two-person
// rule (approved_by != created_by), a non-empty change_reason, and
// uniqueness of (param_key, effective_from).
func (a *Admin) CreateParam(ctx context.Context, req CreateParamRequest) (*domain.RegulationParam, error) {
	if req.ApprovedBy == "" || req.CreatedBy == "" {
		return nil, decisionerr.InputInvalid("approved_by", "created_by and approved_by are both required")
	}
	if req.ApprovedBy == req.CreatedBy {
		return nil, decisionerr.InputInvalid("approved_by", "approved_by must differ from created_by (two-person rule)")
	}
	if req.ChangeReason == "" {
		return nil, decisionerr.InputInvalid("change_reason", "change_reason is required")
	}

	existing, err := a.store.FindByKeyAndEffectiveFrom(ctx, req.ParamKey, req.EffectiveFrom)
	if err != nil {
		return nil, decisionerr.DependencyFatal("could not check for an existing parameter row", err)
	}
	if existing != nil {
		return nil, decisionerr.Conflict("a row for (param_key, effective_from) already exists")
	}

	p := domain.RegulationParam{
		ID:            uuid.NewString(),
		ParamKey:      req.ParamKey,
		Category:      req.Category,
		PhaseLabel:    req.PhaseLabel,
		Value:         req.Value,
		Condition:     req.Condition,
		EffectiveFrom: req.EffectiveFrom,
		EffectiveTo:   req.EffectiveTo,
		IsActive:      true,
		LegalBasis:    req.LegalBasis,
		Description:   req.Description,
		CreatedBy:     req.CreatedBy,
		ApprovedBy:    req.ApprovedBy,
		ApprovedAt:    time.Now().UTC(),
		ChangeReason:  req.ChangeReason,
	}

	if err := a.store.Insert(ctx, p); err != nil {
		return nil, decisionerr.DependencyFatal("could not persist regulation param", err)
	}
	if a.cache != nil {
		_ = a.cache.InvalidatePrefix(ctx, req.ParamKey)
	}
	if a.audit != nil {
		_ = a.audit.Record(ctx, domain.AuditRecord{
			ID:            uuid.NewString(),
			EntityKind:    "regulation_param",
			EntityID:      p.ID,
			Action:        domain.AuditActionParamCreated,
			Actor:         req.ApprovedBy,
			Timestamp:     time.Now().UTC(),
			RegulationRef: p.ParamKey,
		})
	}
	return &p, nil
}

// DeactivateParam sets is_active=false and stamps effective_to=now,
// preserving history (spec §4.2.5), and emits an audit record.
func (a *Admin) DeactivateParam(ctx context.Context, paramID, actor, reason string) error {
	if reason == "" {
		return decisionerr.InputInvalid("reason", "a deactivation reason is required")
	}
	now := time.Now().UTC()
	if err := a.store.Deactivate(ctx, paramID, now); err != nil {
		return decisionerr.DependencyFatal("could not deactivate regulation param", err)
	}
	if a.audit != nil {
		_ = a.audit.Record(ctx, domain.AuditRecord{
			ID:         uuid.NewString(),
			EntityKind: "regulation_param",
			EntityID:   paramID,
			Action:     domain.AuditActionParamDeactivated,
			Actor:      actor,
			Timestamp:  now,
		})
	}
	return nil
}

// ListParams mirrors spec §6's list_params external interface.
func (a *Admin) ListParams(ctx context.Context, category *domain.ParamCategory, isActive *bool) ([]domain.RegulationParam, error) {
	return a.store.List(ctx, category, isActive)
}
