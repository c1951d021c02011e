package decision

import (
	"fmt"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/bureau"
)

// buildRejectionReasons implements spec §4.5.3: up to 3 Korean-language
// reasons. All five conditions are checked independently, in priority
// order, and every one that applies is appended — not just the one that
// tripped the hard-reject gate in evaluateGates — then capped at 3.
// Grounded on
// original_source/backend/app/core/scoring_engine.py:422-456's
// _make_rejection_reasons, which checks the same five conditions
// unconditionally of which one caused the reject.
func buildRejectionReasons(cb bureau.CBScore, score int, dsr, dsrLimit float64, ltv *float64, ltvLimit float64, annualIncome int64) []string {
	var reasons []string

	if cb.WorstDelinquencyStatus >= 1 {
		reasons = append(reasons, fmt.Sprintf("현재 연체 중이거나 심각한 연체 이력이 있어(연체 단계 %d) 신규 대출이 제한됩니다.", cb.WorstDelinquencyStatus))
	}
	if score < scoreRejectCutoff {
		reasons = append(reasons, fmt.Sprintf("신용평점(%d점)이 최소 승인 기준(%d점)에 미달합니다.", score, scoreRejectCutoff))
	}
	if dsr > dsrLimit {
		reasons = append(reasons, fmt.Sprintf("총부채원리금상환비율(DSR %.1f%%)이 한도(%.1f%%)를 초과합니다.", dsr*100, dsrLimit*100))
	}
	if ltv != nil && *ltv > ltvLimit {
		reasons = append(reasons, fmt.Sprintf("주택담보대출비율(LTV %.1f%%)이 한도(%.1f%%)를 초과합니다.", *ltv*100, ltvLimit*100))
	}
	if annualIncome < IncomeFloor {
		reasons = append(reasons, fmt.Sprintf("연소득(%d원)이 최소 소득 기준(%d원)에 미달합니다.", annualIncome, IncomeFloor))
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}
