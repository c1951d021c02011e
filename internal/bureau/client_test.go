package bureau

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeCBServer(t *testing.T, score int, grade string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"credit_score":              score,
			"credit_grade":              grade,
			"delinquency_count_12m":     0,
			"worst_delinquency_status":  0,
			"telecom_no_delinquency":    true,
		})
	}))
}

func TestScore_NICESucceeds(t *testing.T) {
	nice := fakeCBServer(t, 850, "1")
	defer nice.Close()
	kcb := fakeCBServer(t, 600, "5")
	defer kcb.Close()

	c := NewClient(nice.URL, kcb.URL, 0, nil, 0, nil)
	score := c.Score(context.Background(), "hash", "tester")
	assert.Equal(t, SourceNICE, score.Source)
	assert.Equal(t, 850, score.CBScore)
}

func TestScore_NICEDownFallsToKCB(t *testing.T) {
	kcb := fakeCBServer(t, 600, "5")
	defer kcb.Close()

	c := NewClient("http://127.0.0.1:0", kcb.URL, 0, nil, 0, nil)
	score := c.Score(context.Background(), "hash", "tester")
	assert.Equal(t, SourceKCB, score.Source)
}

func TestScore_BothDownFallsToConservativeDefault(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "http://127.0.0.1:0", 0, nil, 0, nil)
	score := c.Score(context.Background(), "hash", "tester")
	assert.Equal(t, SourceFallback, score.Source)
	assert.Equal(t, FallbackScore, score.CBScore)
	assert.Equal(t, FallbackGrade, score.CreditGrade)
	assert.True(t, score.IsFallback)
}

func TestConservativeScore_PicksLower(t *testing.T) {
	nice := fakeCBServer(t, 850, "1")
	defer nice.Close()
	kcb := fakeCBServer(t, 600, "5")
	defer kcb.Close()

	c := NewClient(nice.URL, kcb.URL, 0, nil, 0, nil)
	score := c.ConservativeScore(context.Background(), "hash", "tester")
	assert.Equal(t, 600, score.CBScore)
	assert.Equal(t, SourceKCB, score.Source)
}
