package decision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/bureau"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/paramstore"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/pdprovider"
)

// cbFixture controls every field a fake CB endpoint reports back.
type cbFixture struct {
	score          int
	grade          string
	delinquency12m int
	worstStatus    int
	inquiries3m    int
	telecomClean   bool
}

func fakeCBServer(t *testing.T, f cbFixture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"credit_score":             f.score,
			"credit_grade":             f.grade,
			"delinquency_count_12m":    f.delinquency12m,
			"worst_delinquency_status": f.worstStatus,
			"inquiry_count_3m":         f.inquiries3m,
			"telecom_no_delinquency":   f.telecomClean,
		})
	}))
}

// fakeApplicantRepo/fakeApplicationRepo/fakeScoringResultRepo are no-op
// stand-ins: the evaluation under test drives Engine.Evaluate directly with
// in-memory domain values and never needs to round-trip through these.
type fakeApplicantRepo struct{}

func (fakeApplicantRepo) GetByID(ctx context.Context, id string) (*domain.Applicant, error) {
	return nil, nil
}

type fakeApplicationRepo struct{}

func (fakeApplicationRepo) GetByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	return nil, nil
}
func (fakeApplicationRepo) Save(ctx context.Context, app *domain.LoanApplication) error { return nil }

type fakeScoringResultRepo struct{}

func (fakeScoringResultRepo) Save(ctx context.Context, result *domain.ScoringResult) error {
	return nil
}

// newTestEngine builds an Engine whose parameter resolver falls straight
// through to compiled defaults (nil cache, nil store) and whose bureau
// client talks to a caller-supplied fake CB server.
func newTestEngine(t *testing.T, cb cbFixture) *Engine {
	t.Helper()
	nice := fakeCBServer(t, cb)
	t.Cleanup(nice.Close)

	resolver := paramstore.NewResolver(nil, nil, nil, 0, 0)
	bureauClient := bureau.NewClient(nice.URL, nice.URL, 0, nil, 0, nil)
	pdProvider := pdprovider.NewStatisticalFallback()

	return NewEngine(resolver, bureauClient, pdProvider,
		fakeApplicantRepo{}, fakeApplicationRepo{}, fakeScoringResultRepo{},
		nil, nil, nil)
}

func TestEvaluate_PrimeEmployedBorrowerApproved(t *testing.T) {
	engine := newTestEngine(t, cbFixture{score: 850, grade: "1", telecomClean: true})

	applicant := &domain.Applicant{
		ID: "a1", IdentityToken: "tok-1",
		ApplicantKind:     domain.ApplicantIndividual,
		Age:               38,
		EmploymentKind:    domain.EmploymentEmployed,
		AnnualIncome:      80_000_000,
		IncomeVerified:    true,
		EmployerEQGrade:   domain.EQGradeB,
		IndustryRiskGrade: domain.IRGMedium,
	}
	app := &domain.LoanApplication{
		ID: "app-1", ApplicantID: applicant.ID,
		Product:             domain.ProductCredit,
		RequestedAmount:     30_000_000,
		RequestedTermMonths: 36,
		Step:                domain.StepUnderReview,
		Status:              domain.StatusUnderReview,
		StressDSRRegion:     domain.RegionMetropolitan,
		RateType:            domain.RateVariable,
	}

	result, err := engine.Evaluate(context.Background(), applicant, app)
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionApproved, result.Decision)
	assert.Contains(t, []domain.Grade{"AA", "AAA"}, result.Grade)
	assert.Equal(t, int64(30_000_000), result.ApprovedAmount)
	assert.GreaterOrEqual(t, result.RateBreakdown.FinalRate, 3.5)
	assert.LessOrEqual(t, result.RateBreakdown.FinalRate, 6.0)
}

func TestEvaluate_MortgageSpeculationAreaOverLTVRejected(t *testing.T) {
	engine := newTestEngine(t, cbFixture{score: 800, grade: "1", telecomClean: true})

	applicant := &domain.Applicant{
		ID: "a2", IdentityToken: "tok-2",
		ApplicantKind:   domain.ApplicantIndividual,
		Age:             45,
		EmploymentKind:  domain.EmploymentEmployed,
		AnnualIncome:    80_000_000,
		IncomeVerified:  true,
		EmployerEQGrade: domain.EQGradeB,
	}
	app := &domain.LoanApplication{
		ID: "app-2", ApplicantID: applicant.ID,
		Product:             domain.ProductMortgage,
		RequestedAmount:     500_000_000,
		RequestedTermMonths: 360,
		Step:                domain.StepUnderReview,
		Status:              domain.StatusUnderReview,
		Mortgage: &domain.MortgageDetail{
			CollateralValue:   1_000_000_000,
			IsSpeculationArea: true,
		},
		StressDSRRegion: domain.RegionMetropolitan,
		RateType:        domain.RateVariable,
	}

	result, err := engine.Evaluate(context.Background(), applicant, app)
	require.NoError(t, err)

	require.NotNil(t, result.LTV)
	assert.InDelta(t, 0.50, *result.LTV, 1e-9)
	assert.InDelta(t, 0.40, app.RegulationSnapshot.LTVLimit, 1e-9)
	assert.Equal(t, domain.DecisionRejected, result.Decision)
	require.NotEmpty(t, result.RejectionReasons)
	assert.Contains(t, result.RejectionReasons[0], "LTV")
}

func TestEvaluate_Phase3NonMetropolitanStressDSRInformationalOnly(t *testing.T) {
	engine := newTestEngine(t, cbFixture{score: 820, grade: "1", telecomClean: true})

	applicant := &domain.Applicant{
		ID: "a3", IdentityToken: "tok-3",
		ApplicantKind:   domain.ApplicantIndividual,
		Age:             40,
		EmploymentKind:  domain.EmploymentEmployed,
		AnnualIncome:    80_000_000,
		IncomeVerified:  true,
		EmployerEQGrade: domain.EQGradeB,
	}
	app := &domain.LoanApplication{
		ID: "app-3", ApplicantID: applicant.ID,
		Product:             domain.ProductCredit,
		RequestedAmount:     20_000_000,
		RequestedTermMonths: 36,
		Step:                domain.StepUnderReview,
		Status:              domain.StatusUnderReview,
		StressDSRRegion:     domain.RegionNonMetropolitan,
		RateType:            domain.RateVariable,
	}

	result, err := engine.Evaluate(context.Background(), applicant, app)
	require.NoError(t, err)

	// Today's clock is already past the 2025-07-01 phase-3 cutover, so the
	// compiled default resolves straight to the phase-3 non-metropolitan
	// variable add-on.
	assert.InDelta(t, 3.00, app.RegulationSnapshot.StressAddPP, 1e-9)
	assert.Greater(t, result.StressDSR, result.DSR)
	assert.False(t, result.DSRLimitBreached)
	assert.Equal(t, domain.DecisionApproved, result.Decision)
}

func TestEvaluate_ActiveDelinquencyHardRejectsAheadOfScore(t *testing.T) {
	engine := newTestEngine(t, cbFixture{score: 480, grade: "5", worstStatus: 3, telecomClean: false})

	applicant := &domain.Applicant{
		ID: "a4", IdentityToken: "tok-4",
		ApplicantKind: domain.ApplicantIndividual,
		Age:           33,
		AnnualIncome:  50_000_000,
	}
	app := &domain.LoanApplication{
		ID: "app-4", ApplicantID: applicant.ID,
		Product:             domain.ProductCredit,
		RequestedAmount:     10_000_000,
		RequestedTermMonths: 24,
		Step:                domain.StepUnderReview,
		Status:              domain.StatusUnderReview,
		StressDSRRegion:     domain.RegionMetropolitan,
		RateType:            domain.RateVariable,
	}

	result, err := engine.Evaluate(context.Background(), applicant, app)
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionRejected, result.Decision)
	require.NotEmpty(t, result.RejectionReasons)
	assert.True(t, strings.Contains(result.RejectionReasons[0], "연체"))
	assert.False(t, strings.Contains(result.RejectionReasons[0], "신용평점"))
}

func TestEvaluate_YouthSegmentDiscountLowersFinalRate(t *testing.T) {
	baseApplicant := func(segment domain.SegmentCode) *domain.Applicant {
		return &domain.Applicant{
			ID: "a5", IdentityToken: "tok-5",
			ApplicantKind:   domain.ApplicantIndividual,
			Age:             25,
			EmploymentKind:  domain.EmploymentEmployed,
			AnnualIncome:    40_000_000,
			IncomeVerified:  true,
			EmployerEQGrade: domain.EQGradeC,
			SegmentCode:     segment,
		}
	}
	baseApp := func() *domain.LoanApplication {
		return &domain.LoanApplication{
			ID: "app-5", ApplicantID: "a5",
			Product:             domain.ProductCredit,
			RequestedAmount:     10_000_000,
			RequestedTermMonths: 24,
			Step:                domain.StepUnderReview,
			Status:              domain.StatusUnderReview,
			StressDSRRegion:     domain.RegionMetropolitan,
			RateType:            domain.RateVariable,
		}
	}

	engineYouth := newTestEngine(t, cbFixture{score: 650, grade: "3", telecomClean: true})
	youthResult, err := engineYouth.Evaluate(context.Background(), baseApplicant(domain.SegmentYTH), baseApp())
	require.NoError(t, err)

	engineBase := newTestEngine(t, cbFixture{score: 650, grade: "3", telecomClean: true})
	plainResult, err := engineBase.Evaluate(context.Background(), baseApplicant(domain.SegmentNone), baseApp())
	require.NoError(t, err)

	assert.InDelta(t, plainResult.RateBreakdown.FinalRate-0.50, youthResult.RateBreakdown.FinalRate, 1e-6)
}
