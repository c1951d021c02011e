// Package domain holds the core entities of the credit-decisioning engine:
// Applicant, LoanApplication, ScoringResult, RegulationParam, the EQ/IRG
// reference masters and AuditRecord, plus their validation invariants.
package domain

import (
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// ApplicantKind distinguishes a natural person from a sole proprietorship.
type ApplicantKind string

const (
	ApplicantIndividual     ApplicantKind = "individual"
	ApplicantSoleProprietor ApplicantKind = "sole_proprietor"
)

// EmploymentKind is the applicant's employment status.
type EmploymentKind string

const (
	EmploymentEmployed     EmploymentKind = "employed"
	EmploymentSelfEmployed EmploymentKind = "self_employed"
	EmploymentUnemployed   EmploymentKind = "unemployed"
	EmploymentRetired      EmploymentKind = "retired"
	EmploymentStudent      EmploymentKind = "student"
)

// EQGrade is the employer-credit-quality grade. Absent defaults to EQGradeC.
type EQGrade string

const (
	EQGradeS EQGrade = "S"
	EQGradeA EQGrade = "A"
	EQGradeB EQGrade = "B"
	EQGradeC EQGrade = "C"
	EQGradeD EQGrade = "D"
	EQGradeE EQGrade = "E"
)

// IndustryRiskGrade feeds a multiplicative PD adjustment. Absent defaults to IRGMedium.
type IndustryRiskGrade string

const (
	IRGLow      IndustryRiskGrade = "L"
	IRGMedium   IndustryRiskGrade = "M"
	IRGHigh     IndustryRiskGrade = "H"
	IRGVeryHigh IndustryRiskGrade = "VH"
)

// SegmentCode is a closed set of preferential-terms borrower categories.
// MOU segments carry a dash-suffixed code, e.g. "MOU-12".
type SegmentCode string

const (
	SegmentNone SegmentCode = ""
	SegmentDR   SegmentCode = "DR"
	SegmentJD   SegmentCode = "JD"
	SegmentART  SegmentCode = "ART"
	SegmentYTH  SegmentCode = "YTH"
	SegmentMIL  SegmentCode = "MIL"
)

// IsMOU reports whether code is one of the MOU-<code> segment variants.
func (s SegmentCode) IsMOU() bool {
	return len(s) > 4 && s[:4] == "MOU-"
}

// ConsentFlags records the three bureau/alt-data/open-banking consents.
type ConsentFlags struct {
	BureauQuery bool
	AltData     bool
	OpenBanking bool
}

// SoleProprietorDetail holds fields required only when ApplicantKind is sole_proprietor.
type SoleProprietorDetail struct {
	BusinessDurationMonths int
	AnnualRevenue          int64
	OperatingIncome        int64
	TaxFilings3Y           int
}

// Applicant is the natural person or sole proprietor seeking credit.
type Applicant struct {
	ID                string
	IdentityToken      string // keyed hash of the national registration number; never plaintext
	ApplicantKind      ApplicantKind
	Age                int
	EmploymentKind     EmploymentKind
	AnnualIncome       int64
	IncomeVerified     bool
	EmployerEQGrade    EQGrade // "" means absent -> defaults to EQGradeC
	IndustryRiskGrade  IndustryRiskGrade // "" means absent -> defaults to IRGMedium
	SegmentCode        SegmentCode
	ArtsFundRegistered bool // required true when SegmentCode == SegmentART
	Consent            ConsentFlags
	SoleProprietor     *SoleProprietorDetail

	// HealthInsurancePaidMonths12M is NHIS alt-data: months of health
	// insurance premiums paid without lapse in the trailing 12 months,
	// in [0, 12]. nil means absent -> defaults to 12 (full payment
	// history assumed, spec §4.3).
	HealthInsurancePaidMonths12M *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolvedEQGrade returns the applicant's EQ grade with the absent-default applied.
func (a *Applicant) ResolvedEQGrade() EQGrade {
	if a.EmployerEQGrade == "" {
		return EQGradeC
	}
	return a.EmployerEQGrade
}

// ResolvedIRG returns the applicant's industry risk grade with the absent-default applied.
func (a *Applicant) ResolvedIRG() IndustryRiskGrade {
	if a.IndustryRiskGrade == "" {
		return IRGMedium
	}
	return a.IndustryRiskGrade
}

// ResolvedHealthInsuranceMonths returns HealthInsurancePaidMonths12M with
// the absent-default of 12 applied (spec §4.3).
func (a *Applicant) ResolvedHealthInsuranceMonths() int {
	if a.HealthInsurancePaidMonths12M == nil {
		return 12
	}
	return *a.HealthInsurancePaidMonths12M
}

// Validate enforces the applicant-level invariants of spec §3.
func (a *Applicant) Validate() error {
	if a.IdentityToken == "" {
		return decisionerr.InputInvalid("identity_token", "identity token is required")
	}
	if a.Age < 19 || a.Age > 80 {
		return decisionerr.InputInvalid("age", "age must be between 19 and 80")
	}
	if a.AnnualIncome < 0 {
		return decisionerr.InputInvalid("annual_income", "annual income cannot be negative")
	}
	if a.ApplicantKind == ApplicantSoleProprietor && a.SoleProprietor == nil {
		return decisionerr.InputInvalid("sole_proprietor", "sole proprietor fields are required for applicant_kind=sole_proprietor")
	}
	if a.SegmentCode == SegmentART && !a.ArtsFundRegistered {
		return decisionerr.InputInvalid("segment_code", "segment ART requires arts fund registration")
	}
	return nil
}
