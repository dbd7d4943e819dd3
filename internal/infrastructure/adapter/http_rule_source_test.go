package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/adapter"
	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/config"
)

func ruleSourceConfig(baseURL string) config.RuleSourceConfig {
	return config.RuleSourceConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		TimeoutSeconds: 2,
		MaxRetries:     2,
		RetryBackoffMs: 1,
	}
}

func TestHTTPRuleSource_FetchRules(t *testing.T) {
	t.Run("decodes the rule list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/credit-rules", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"credit_type":"auto","min_amount":"1000","max_amount":"20000",
				 "min_duration_months":6,"max_duration_months":60,
				 "interest_rate":"7.5","max_debt_ratio":"33"}
			]`))
		}))
		defer server.Close()

		source := adapter.NewHTTPRuleSource(ruleSourceConfig(server.URL))

		rules, err := source.FetchRules(context.Background())

		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, "auto", rules[0].CreditType)
		assert.Equal(t, 60, rules[0].MaxDurationMonths)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		source := adapter.NewHTTPRuleSource(ruleSourceConfig(server.URL))

		_, err := source.FetchRules(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		source := adapter.NewHTTPRuleSource(ruleSourceConfig(server.URL))

		_, err := source.FetchRules(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}
