package pdprovider

import "github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"

// FeatureOrder is the fixed feature-name ordering a trained-model artefact
// is paired with; NewTrainedModel rejects an artefact whose feature
// manifest does not match this order (spec §4.3: "feature ordering is
// fixed by an accompanying feature-names manifest").
var FeatureOrder = []string{
	"cb_score",
	"delinquency_count_12m",
	"worst_delinquency_status",
	"dsr_percent",
	"annual_income",
	"inquiry_count_3m",
	"telecom_no_delinquency",
	"health_insurance_paid_months_12m",
	"is_sole_proprietor",
	"business_duration_months",
	"tax_filings_3y",
}

// Scorer is the minimal contract a loaded boosted-tree artefact exposes;
// an out-of-core training pipeline (explicitly a Non-goal per spec.md §1)
// is responsible for producing one.
type Scorer interface {
	Score(features []float64) (float64, error)
}

// TrainedModel adapts a loaded boosted-tree Scorer to the Provider
// contract. The artefact loader itself (reading application_scorecard.*)
// is outside the core per spec.md §1; this type only documents and
// enforces the contract a loaded artefact must satisfy.
type TrainedModel struct {
	scorer      Scorer
	version     string
	featureKeys []string
}

// NewTrainedModel wraps scorer, asserting its feature manifest matches
// FeatureOrder exactly.
func NewTrainedModel(scorer Scorer, version string, featureManifest []string) (*TrainedModel, error) {
	if len(featureManifest) != len(FeatureOrder) {
		return nil, decisionerr.Internal("feature manifest length mismatch", nil)
	}
	for i, name := range FeatureOrder {
		if featureManifest[i] != name {
			return nil, decisionerr.Internal("feature manifest order mismatch at position "+name, nil)
		}
	}
	return &TrainedModel{scorer: scorer, version: version, featureKeys: featureManifest}, nil
}

// Predict converts v to the fixed-order feature slice and scores it.
func (m *TrainedModel) Predict(v FeatureVector) (float64, error) {
	features := []float64{
		float64(v.CBScore),
		float64(v.DelinquencyCount12M),
		float64(v.WorstDelinquencyStatus),
		v.DSRPercent,
		float64(v.AnnualIncome),
		float64(v.InquiryCount3M),
		boolTerm(v.TelecomNoDelinquency),
		float64(v.HealthInsurancePaidMonths12M),
		boolTerm(v.IsSoleProprietor),
		float64(v.BusinessDurationMonths),
		float64(v.TaxFilings3Y),
	}
	raw, err := m.scorer.Score(features)
	if err != nil {
		return 0, decisionerr.DependencyFatal("trained model scoring failed", err)
	}
	return clamp(raw), nil
}

func (m *TrainedModel) ModelVersion() string  { return m.version }
func (m *TrainedModel) ScorecardKind() string { return "trained_boosted_tree" }
