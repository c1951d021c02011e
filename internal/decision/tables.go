package decision

import "github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"

// lgdByProduct is the loss-given-default table, grounded on
// original_source/backend/app/core/scoring_engine.py's LGD_BY_PRODUCT.
// spec.md's distillation names LGD as a component without restating the
// table; this is a supplemented constant (SPEC_FULL.md §C), not an
// invented one.
var lgdByProduct = map[domain.Product]float64{
	domain.ProductCredit:     0.45,
	domain.ProductCreditSOHO: 0.50,
	domain.ProductMortgage:   0.25,
	domain.ProductMicro:      0.60,
}

func lgdFor(product domain.Product) float64 {
	if v, ok := lgdByProduct[product]; ok {
		return v
	}
	return 0.45
}

// Hard cutoffs (spec §4.5.1 step 9b, step 10).
const (
	scoreRejectCutoff = 450
	scoreManualCutoff = 530
)

// MicroProductAbsoluteCap is the absolute approved-amount ceiling for the
// micro product (spec §4.5.2).
const MicroProductAbsoluteCap = 3_000_000

// IncomeFloor is the hard-reject income threshold (spec §4.5.1 step 9e).
const IncomeFloor = 12_000_000
