package decision

import (
	"context"
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// computeApprovedAmount implements spec §4.5.2's approved-amount logic.
func (e *Engine) computeApprovedAmount(ctx context.Context, applicant *domain.Applicant, app *domain.LoanApplication, eqBenefit domain.EQBenefit, segment *domain.SegmentBenefit, ltvLimit float64, effectiveAt time.Time) (int64, error) {
	// spec §4.2.3 only seeds employed/self_employed multiplier keys; every
	// other employment_kind (unemployed, retired, student) falls back to
	// the more conservative self_employed multiplier rather than the
	// employed one.
	multKey := "credit_loan.income_multiplier.self_employed"
	if applicant.EmploymentKind == domain.EmploymentEmployed {
		multKey = "credit_loan.income_multiplier.employed"
	}
	multVal, _, _, err := e.resolver.Resolve(ctx, multKey, effectiveAt, nil)
	if err != nil {
		return 0, err
	}
	incomeMultiplier := multVal.MultiplierTimes

	eqLimitMultiplier := eqBenefit.LimitMultiplier
	if eqLimitMultiplier == 0 {
		eqLimitMultiplier = 1
	}

	incomeCap := float64(applicant.AnnualIncome) * incomeMultiplier * eqLimitMultiplier
	if segment != nil && segment.LimitMultiplier > 0 {
		incomeCap *= segment.LimitMultiplier
	}

	approved := float64(app.RequestedAmount)
	if approved > incomeCap {
		approved = incomeCap
	}

	if app.Product == domain.ProductMortgage && app.Mortgage != nil && app.Mortgage.CollateralValue > 0 && ltvLimit > 0 {
		maxByLTV := ltvLimit * float64(app.Mortgage.CollateralValue)
		if approved > maxByLTV {
			approved = maxByLTV
		}
	}

	if app.Product == domain.ProductMicro && approved > MicroProductAbsoluteCap {
		approved = MicroProductAbsoluteCap
	}

	return int64(approved), nil
}
