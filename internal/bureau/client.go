// Package bureau implements the external credit-bureau (CB) collaborator
// contract of spec §4.5.1 step 4 and §5's single blocking suspension
// point: a NICE -> KCB -> cached -> conservative-default fallback chain,
// grounded on
// original_source/backend/app/services/cb_service.py.
package bureau

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Source identifies which collaborator ultimately produced a CBScore.
type Source string

const (
	SourceNICE     Source = "nice"
	SourceKCB      Source = "kcb"
	SourceCached   Source = "cached"
	SourceFallback Source = "fallback"
)

// Conservative fallback constants (spec §4.5.1 step 4): CB unreachable
// yields a conservative score of 700 and grade BB with zero delinquencies.
const (
	FallbackScore = 700
	FallbackGrade = "BB"
)

// CBScore is one bureau query result.
type CBScore struct {
	Source                    Source
	CBScore                   int
	CreditGrade               string
	DelinquencyCount12M       int
	WorstDelinquencyStatus    int
	OpenLoanCount             int
	TotalLoanBalance          int64
	InquiryCount3M            int
	InquiryCount6M            int
	TelecomNoDelinquency      bool
	QueriedAt                 time.Time
	IsFallback                bool
}

// Client queries NICE and KCB CB endpoints with a Redis-backed cache and a
// local fallback, following the mock-server contract of
// original_source/mock_server.
type Client struct {
	niceBaseURL string
	kcbBaseURL  string
	httpClient  *http.Client
	redis       *redis.Client
	cacheTTL    time.Duration
	log         *zap.Logger
}

// NewClient builds a bureau Client.
func NewClient(niceBaseURL, kcbBaseURL string, timeout time.Duration, redisClient *redis.Client, cacheTTL time.Duration, log *zap.Logger) *Client {
	return &Client{
		niceBaseURL: niceBaseURL,
		kcbBaseURL:  kcbBaseURL,
		httpClient:  &http.Client{Timeout: timeout},
		redis:       redisClient,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

func cacheKey(residentHash string) string {
	trimmed := residentHash
	if len(trimmed) > 16 {
		trimmed = trimmed[:16]
	}
	return "bureau:cb:" + trimmed
}

// Score implements the NICE -> KCB -> cached -> fallback chain.
func (c *Client) Score(ctx context.Context, residentHash, applicantName string) CBScore {
	key := cacheKey(residentHash)

	if score, ok := c.getCached(ctx, key); ok {
		score.Source = SourceCached
		return score
	}

	if score, err := c.query(ctx, c.niceBaseURL+"/cb/nice/score", residentHash, applicantName); err == nil {
		score.Source = SourceNICE
		c.setCached(ctx, key, score)
		return score
	} else if c.log != nil {
		c.log.Warn("NICE CB query failed, falling back to KCB", zap.Error(err))
	}

	if score, err := c.query(ctx, c.kcbBaseURL+"/cb/kcb/score", residentHash, applicantName); err == nil {
		score.Source = SourceKCB
		c.setCached(ctx, key, score)
		return score
	} else if c.log != nil {
		c.log.Error("KCB CB fallback also failed, using conservative default", zap.Error(err))
	}

	return c.fallback()
}

// ConservativeScore queries both NICE and KCB and keeps the lower (more
// conservative) of the two, per Basel III guidance on using multiple data
// sources prudently (supplemented feature, see SPEC_FULL.md §C.1).
func (c *Client) ConservativeScore(ctx context.Context, residentHash, applicantName string) CBScore {
	nice, niceErr := c.query(ctx, c.niceBaseURL+"/cb/nice/score", residentHash, applicantName)
	kcb, kcbErr := c.query(ctx, c.kcbBaseURL+"/cb/kcb/score", residentHash, applicantName)

	if niceErr != nil && kcbErr != nil {
		return c.fallback()
	}
	if niceErr != nil {
		kcb.Source = SourceKCB
		return kcb
	}
	if kcbErr != nil {
		nice.Source = SourceNICE
		return nice
	}
	nice.Source = SourceNICE
	kcb.Source = SourceKCB
	if nice.CBScore <= kcb.CBScore {
		return nice
	}
	return kcb
}

func (c *Client) fallback() CBScore {
	return CBScore{
		Source:               SourceFallback,
		CBScore:               FallbackScore,
		CreditGrade:           FallbackGrade,
		TelecomNoDelinquency:  true,
		QueriedAt:             time.Now().UTC(),
		IsFallback:            true,
	}
}

type cbResponsePayload struct {
	CreditScore              int   `json:"credit_score"`
	CreditGrade              string `json:"credit_grade"`
	DelinquencyCount12M      int   `json:"delinquency_count_12m"`
	WorstDelinquencyStatus   int   `json:"worst_delinquency_status"`
	OpenLoanCount            int   `json:"open_loan_count"`
	TotalLoanBalance         int64 `json:"total_loan_balance"`
	InquiryCount3M           int   `json:"inquiry_count_3m"`
	InquiryCount6M           int   `json:"inquiry_count_6m"`
	TelecomNoDelinquency     bool  `json:"telecom_no_delinquency"`
}

func (c *Client) query(ctx context.Context, url, residentHash, applicantName string) (CBScore, error) {
	body, _ := json.Marshal(map[string]string{
		"resident_hash":  residentHash,
		"applicant_name": applicantName,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return CBScore{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CBScore{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return CBScore{}, fmt.Errorf("bureau endpoint %s returned status %d", url, resp.StatusCode)
	}

	var payload cbResponsePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CBScore{}, err
	}

	return CBScore{
		CBScore:                payload.CreditScore,
		CreditGrade:            payload.CreditGrade,
		DelinquencyCount12M:    payload.DelinquencyCount12M,
		WorstDelinquencyStatus: payload.WorstDelinquencyStatus,
		OpenLoanCount:          payload.OpenLoanCount,
		TotalLoanBalance:       payload.TotalLoanBalance,
		InquiryCount3M:         payload.InquiryCount3M,
		InquiryCount6M:         payload.InquiryCount6M,
		TelecomNoDelinquency:   payload.TelecomNoDelinquency,
		QueriedAt:              time.Now().UTC(),
	}, nil
}

func (c *Client) getCached(ctx context.Context, key string) (CBScore, bool) {
	if c.redis == nil {
		return CBScore{}, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return CBScore{}, false
	}
	var score CBScore
	if err := json.Unmarshal(data, &score); err != nil {
		return CBScore{}, false
	}
	return score, true
}

func (c *Client) setCached(ctx context.Context, key string, score CBScore) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(score)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}
