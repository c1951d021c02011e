// Package repository adapts the domain's repository interfaces onto
// Postgres: gorm for the mutable entities (Applicant, LoanApplication,
// RegulationParam, the EQ/IRG reference masters, AuditRecord), and raw
// database/sql + lib/pq for the write-once ScoringResult, whose JSONB
// payload columns favor an explicit query over an ORM round-trip.
// Grounded on
// _examples/huuhoait-los-demo/services/shared/pkg/database/database.go
// (connection/pool) and
// _examples/huuhoait-los-demo/services/decision-engine/infrastructure/decision_repository.go
// (raw SQL + JSONB + InitializeDatabase DDL pattern).
package repository

import (
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// applicantModel is the gorm row shape for domain.Applicant.
type applicantModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	IdentityToken       string `gorm:"index;not null"`
	ApplicantKind       string `gorm:"not null"`
	Age                 int
	EmploymentKind      string
	AnnualIncome        int64
	IncomeVerified      bool
	EmployerEQGrade     string
	IndustryRiskGrade   string
	SegmentCode         string
	ArtsFundRegistered  bool
	Consent             domain.ConsentFlags         `gorm:"serializer:json"`
	SoleProprietor      *domain.SoleProprietorDetail `gorm:"serializer:json"`
	HealthInsurancePaidMonths12M *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (applicantModel) TableName() string { return "applicants" }

func toApplicantModel(a *domain.Applicant) applicantModel {
	return applicantModel{
		ID: a.ID, IdentityToken: a.IdentityToken, ApplicantKind: string(a.ApplicantKind),
		Age: a.Age, EmploymentKind: string(a.EmploymentKind), AnnualIncome: a.AnnualIncome,
		IncomeVerified: a.IncomeVerified, EmployerEQGrade: string(a.EmployerEQGrade),
		IndustryRiskGrade: string(a.IndustryRiskGrade), SegmentCode: string(a.SegmentCode),
		ArtsFundRegistered: a.ArtsFundRegistered, Consent: a.Consent, SoleProprietor: a.SoleProprietor,
		HealthInsurancePaidMonths12M: a.HealthInsurancePaidMonths12M,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func (m applicantModel) toDomain() *domain.Applicant {
	return &domain.Applicant{
		ID: m.ID, IdentityToken: m.IdentityToken, ApplicantKind: domain.ApplicantKind(m.ApplicantKind),
		Age: m.Age, EmploymentKind: domain.EmploymentKind(m.EmploymentKind), AnnualIncome: m.AnnualIncome,
		IncomeVerified: m.IncomeVerified, EmployerEQGrade: domain.EQGrade(m.EmployerEQGrade),
		IndustryRiskGrade: domain.IndustryRiskGrade(m.IndustryRiskGrade), SegmentCode: domain.SegmentCode(m.SegmentCode),
		ArtsFundRegistered: m.ArtsFundRegistered, Consent: m.Consent, SoleProprietor: m.SoleProprietor,
		HealthInsurancePaidMonths12M: m.HealthInsurancePaidMonths12M,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

// loanApplicationModel is the gorm row shape for domain.LoanApplication.
type loanApplicationModel struct {
	ID                  string `gorm:"primaryKey;type:uuid"`
	ApplicantID         string `gorm:"index;not null"`
	Product             string `gorm:"not null"`
	RequestedAmount     int64
	RequestedTermMonths int
	Step                string
	Status              string `gorm:"index"`
	Mortgage            *domain.MortgageDetail     `gorm:"serializer:json"`
	DebtService         domain.DebtServiceInputs   `gorm:"serializer:json"`
	StressDSRRegion     string
	RateType            string
	RegulationSnapshot  *domain.RegulationSnapshot `gorm:"serializer:json"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Channel             string
}

func (loanApplicationModel) TableName() string { return "loan_applications" }

func toLoanApplicationModel(a *domain.LoanApplication) loanApplicationModel {
	return loanApplicationModel{
		ID: a.ID, ApplicantID: a.ApplicantID, Product: string(a.Product),
		RequestedAmount: a.RequestedAmount, RequestedTermMonths: a.RequestedTermMonths,
		Step: string(a.Step), Status: string(a.Status), Mortgage: a.Mortgage,
		DebtService: a.DebtService, StressDSRRegion: string(a.StressDSRRegion),
		RateType: string(a.RateType), RegulationSnapshot: a.RegulationSnapshot,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt, Channel: a.Channel,
	}
}

func (m loanApplicationModel) toDomain() *domain.LoanApplication {
	return &domain.LoanApplication{
		ID: m.ID, ApplicantID: m.ApplicantID, Product: domain.Product(m.Product),
		RequestedAmount: m.RequestedAmount, RequestedTermMonths: m.RequestedTermMonths,
		Step: domain.Step(m.Step), Status: domain.Status(m.Status), Mortgage: m.Mortgage,
		DebtService: m.DebtService, StressDSRRegion: domain.StressDSRRegion(m.StressDSRRegion),
		RateType: domain.RateType(m.RateType), RegulationSnapshot: m.RegulationSnapshot,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Channel: m.Channel,
	}
}

// regulationParamModel is the gorm row shape for domain.RegulationParam.
type regulationParamModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	ParamKey      string `gorm:"index;not null"`
	Category      string `gorm:"index"`
	PhaseLabel    string
	Value         domain.ParamValue     `gorm:"serializer:json"`
	Condition     domain.ParamCondition `gorm:"serializer:json"`
	EffectiveFrom time.Time             `gorm:"index"`
	EffectiveTo   *time.Time
	IsActive      bool `gorm:"index"`
	LegalBasis    string
	Description   string
	CreatedBy     string
	ApprovedBy    string
	ApprovedAt    time.Time
	ChangeReason  string
}

func (regulationParamModel) TableName() string { return "regulation_params" }

func toRegulationParamModel(p domain.RegulationParam) regulationParamModel {
	return regulationParamModel{
		ID: p.ID, ParamKey: p.ParamKey, Category: string(p.Category), PhaseLabel: p.PhaseLabel,
		Value: p.Value, Condition: p.Condition, EffectiveFrom: p.EffectiveFrom, EffectiveTo: p.EffectiveTo,
		IsActive: p.IsActive, LegalBasis: p.LegalBasis, Description: p.Description,
		CreatedBy: p.CreatedBy, ApprovedBy: p.ApprovedBy, ApprovedAt: p.ApprovedAt, ChangeReason: p.ChangeReason,
	}
}

func (m regulationParamModel) toDomain() domain.RegulationParam {
	return domain.RegulationParam{
		ID: m.ID, ParamKey: m.ParamKey, Category: domain.ParamCategory(m.Category), PhaseLabel: m.PhaseLabel,
		Value: m.Value, Condition: m.Condition, EffectiveFrom: m.EffectiveFrom, EffectiveTo: m.EffectiveTo,
		IsActive: m.IsActive, LegalBasis: m.LegalBasis, Description: m.Description,
		CreatedBy: m.CreatedBy, ApprovedBy: m.ApprovedBy, ApprovedAt: m.ApprovedAt, ChangeReason: m.ChangeReason,
	}
}

// eqGradeMasterModel is the gorm row shape for domain.EqGradeMasterRow.
type eqGradeMasterModel struct {
	Grade            string `gorm:"primaryKey"`
	LimitMultiplier  float64
	RateAdjustPP     float64
	MOUCode          string
	MOUSpecialRatePP *float64
}

func (eqGradeMasterModel) TableName() string { return "eq_grade_master" }

func (m eqGradeMasterModel) toDomain() *domain.EqGradeMasterRow {
	return &domain.EqGradeMasterRow{
		Grade: domain.EQGrade(m.Grade), LimitMultiplier: m.LimitMultiplier,
		RateAdjustPP: m.RateAdjustPP, MOUCode: m.MOUCode, MOUSpecialRatePP: m.MOUSpecialRatePP,
	}
}

// irgMasterModel is the gorm row shape for domain.IrgMasterRow.
type irgMasterModel struct {
	KSICCode     string `gorm:"primaryKey"`
	Grade        string
	PDAdjustment float64
}

func (irgMasterModel) TableName() string { return "irg_master" }

func (m irgMasterModel) toDomain() *domain.IrgMasterRow {
	return &domain.IrgMasterRow{KSICCode: m.KSICCode, Grade: domain.IndustryRiskGrade(m.Grade), PDAdjustment: m.PDAdjustment}
}

// auditRecordModel is the gorm row shape for domain.AuditRecord.
type auditRecordModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	EntityKind    string `gorm:"index"`
	EntityID      string `gorm:"index"`
	Action        string
	Actor         string
	Timestamp     time.Time `gorm:"index"`
	Changes       []domain.FieldChange `gorm:"serializer:json"`
	RegulationRef string
}

func (auditRecordModel) TableName() string { return "audit_records" }

func toAuditRecordModel(r domain.AuditRecord) auditRecordModel {
	return auditRecordModel{
		ID: r.ID, EntityKind: r.EntityKind, EntityID: r.EntityID, Action: string(r.Action),
		Actor: r.Actor, Timestamp: r.Timestamp, Changes: r.Changes, RegulationRef: r.RegulationRef,
	}
}
