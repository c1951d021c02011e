// Command decisiond is the illustrative composition root for the
// credit-decisioning core: it wires configuration, logging, Postgres,
// Redis, the repositories, the bureau client and the PD provider into one
// Decision Engine and runs a single sample evaluation. No HTTP listener is
// started here; transport is an external collaborator (spec §1), so the
// wiring order below stops where
// _examples/huuhoait-los-demo/services/decision-engine/main.go would
// hand off to its gin router.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/bureau"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/decision"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/paramstore"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/pdprovider"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/repository"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/config"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zapLogger, err := logger.New("credit-decisioning", cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer zapLogger.Sync()

	gormDB, err := repository.NewGormConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect gorm: %w", err)
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open raw sql connection: %w", err)
	}
	scoringResults := repository.NewScoringResultRepository(sqlDB)
	if err := scoringResults.InitializeSchema(context.Background()); err != nil {
		return fmt.Errorf("initialize scoring_results schema: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
		PoolSize: cfg.Redis.PoolSize,
	})

	paramStore := repository.NewRegulationParamRepository(gormDB)
	paramCache := paramstore.NewRedisCache(redisClient)
	auditRepo := repository.NewAuditRepository(gormDB)
	resolver := paramstore.NewResolver(paramCache, paramStore, zapLogger, cfg.ParameterStore.CacheTTL, cfg.ParameterStore.WarnRateLimit)

	bureauClient := bureau.NewClient(cfg.Bureau.NICEBaseURL, cfg.Bureau.KCBBaseURL, cfg.Bureau.Timeout, redisClient, cfg.Bureau.CacheTTL, zapLogger)

	applicants := repository.NewApplicantRepository(gormDB)
	applications := repository.NewLoanApplicationRepository(gormDB)
	eqMaster := repository.NewEqGradeMasterRepository(gormDB)

	pdProvider := pdprovider.NewStatisticalFallback()

	engine := decision.NewEngine(resolver, bureauClient, pdProvider, applicants, applications, scoringResults, eqMaster, auditRepo, zapLogger)

	zapLogger.Info("credit-decisioning core wired, running a sample evaluation")

	applicant := &domain.Applicant{
		ID:             "sample-applicant",
		IdentityToken:  "sample-identity-token",
		ApplicantKind:  domain.ApplicantIndividual,
		Age:            38,
		EmploymentKind: domain.EmploymentEmployed,
		AnnualIncome:   80_000_000,
		IncomeVerified: true,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	app := &domain.LoanApplication{
		ID:                  "sample-application",
		ApplicantID:         applicant.ID,
		Product:             domain.ProductCredit,
		RequestedAmount:      30_000_000,
		RequestedTermMonths:  36,
		Step:                 domain.StepUnderReview,
		Status:               domain.StatusUnderReview,
		StressDSRRegion:      domain.RegionMetropolitan,
		RateType:             domain.RateVariable,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	result, err := engine.Evaluate(context.Background(), applicant, app)
	if err != nil {
		return fmt.Errorf("sample evaluation failed: %w", err)
	}

	zapLogger.Info("sample evaluation complete",
		zap.String("decision", string(result.Decision)),
		zap.Int("score", result.Score),
		zap.String("grade", string(result.Grade)),
		zap.Int64("approved_amount", result.ApprovedAmount),
		zap.Float64("final_rate", result.RateBreakdown.FinalRate),
	)
	return nil
}
