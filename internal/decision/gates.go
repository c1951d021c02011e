package decision

import (
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/bureau"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// evaluateGates implements spec §4.5.1 step 9: hard-reject gates,
// evaluated in order; the first one to trigger sets decision=rejected.
// Rejection reasons are built separately (buildRejectionReasons) and
// independently re-check all five conditions, not just the one that
// tripped this gate.
func evaluateGates(cb bureau.CBScore, score int, dsr, dsrLimit float64, app *domain.LoanApplication, ltv *float64, ltvLimit float64, annualIncome int64) domain.Decision {
	if cb.WorstDelinquencyStatus >= 2 {
		return domain.DecisionRejected
	}
	if score < scoreRejectCutoff {
		return domain.DecisionRejected
	}
	if dsr > dsrLimit {
		return domain.DecisionRejected
	}
	if app.Product == domain.ProductMortgage && ltv != nil && *ltv > ltvLimit {
		return domain.DecisionRejected
	}
	if annualIncome < IncomeFloor {
		return domain.DecisionRejected
	}
	return ""
}
