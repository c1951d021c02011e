package decision

import (
	"fmt"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/bureau"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// buildExplanationFactors implements spec §4.5.4's heuristic factor path:
// since no trained-model artefact is wired in this implementation, the
// SHAP-contribution path is unavailable and only the rule-based heuristic
// applies. Returns up to 3 positive and up to 3 negative factors, grounded
// on original_source/backend/app/core/scoring_engine.py's
// _generate_explanation_factors.
func buildExplanationFactors(applicant *domain.Applicant, app *domain.LoanApplication, cb bureau.CBScore, dsr float64) ([]domain.ExplanationFactor, []domain.ExplanationFactor) {
	var positives, negatives []domain.ExplanationFactor

	if cb.CBScore >= 750 {
		positives = append(positives, domain.ExplanationFactor{
			Factor: "credit_bureau_score",
			Detail: fmt.Sprintf("신용정보원 점수가 %d점으로 우수합니다.", cb.CBScore),
			Impact: domain.ImpactHigh,
		})
	}
	if cb.DelinquencyCount12M == 0 {
		positives = append(positives, domain.ExplanationFactor{
			Factor: "no_recent_delinquency",
			Detail: "최근 12개월간 연체 이력이 없습니다.",
			Impact: domain.ImpactMedium,
		})
	}
	if applicant.IncomeVerified {
		positives = append(positives, domain.ExplanationFactor{
			Factor: "income_verified",
			Detail: "소득이 서류로 검증되었습니다.",
			Impact: domain.ImpactMedium,
		})
	}
	if cb.TelecomNoDelinquency {
		positives = append(positives, domain.ExplanationFactor{
			Factor: "telecom_on_time",
			Detail: "통신요금 납부 이력에 연체가 없습니다.",
			Impact: domain.ImpactLow,
		})
	}
	if applicant.SegmentCode == domain.SegmentDR || applicant.SegmentCode == domain.SegmentJD {
		positives = append(positives, domain.ExplanationFactor{
			Factor: "professional_segment",
			Detail: "전문직 우대 세그먼트에 해당합니다.",
			Impact: domain.ImpactLow,
		})
	}

	if dsr > 0.30 {
		negatives = append(negatives, domain.ExplanationFactor{
			Factor: "high_dsr",
			Detail: fmt.Sprintf("총부채원리금상환비율(DSR)이 %.1f%%로 높은 편입니다.", dsr*100),
			Impact: domain.ImpactHigh,
		})
	}
	if cb.InquiryCount3M >= 3 {
		negatives = append(negatives, domain.ExplanationFactor{
			Factor: "frequent_inquiries",
			Detail: fmt.Sprintf("최근 3개월간 신용조회가 %d건으로 빈번합니다.", cb.InquiryCount3M),
			Impact: domain.ImpactMedium,
		})
	}
	if cb.OpenLoanCount >= 4 {
		negatives = append(negatives, domain.ExplanationFactor{
			Factor: "many_open_loans",
			Detail: fmt.Sprintf("현재 보유 중인 대출 건수가 %d건으로 많습니다.", cb.OpenLoanCount),
			Impact: domain.ImpactMedium,
		})
	}
	if applicant.ApplicantKind == domain.ApplicantSoleProprietor && applicant.SoleProprietor != nil && applicant.SoleProprietor.BusinessDurationMonths < 12 {
		negatives = append(negatives, domain.ExplanationFactor{
			Factor: "short_business_tenure",
			Detail: fmt.Sprintf("사업 영위 기간이 %d개월로 짧습니다.", applicant.SoleProprietor.BusinessDurationMonths),
			Impact: domain.ImpactMedium,
		})
	}

	if len(positives) > 3 {
		positives = positives[:3]
	}
	if len(negatives) > 3 {
		negatives = negatives[:3]
	}
	_ = app
	return positives, negatives
}
