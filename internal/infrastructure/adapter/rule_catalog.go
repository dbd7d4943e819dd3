package adapter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/soufieneghribi/credit-dossier-service/internal/domain/model"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
)

// CachedRuleCatalog loads the credit-rule list from its source exactly once
// per process and answers lookups from memory. A failed or empty load leaves
// the cache empty and lookups fall back to the documented defaults, so a
// dead rule source never blocks the workflow.
type CachedRuleCatalog struct {
	source port.RuleSource
	logger *slog.Logger

	mu        sync.Mutex
	attempted bool
	rules     map[string]model.CreditRule
}

// NewCachedRuleCatalog creates a catalog over the given source.
func NewCachedRuleCatalog(source port.RuleSource, logger *slog.Logger) *CachedRuleCatalog {
	return &CachedRuleCatalog{
		source: source,
		logger: logger,
		rules:  make(map[string]model.CreditRule),
	}
}

// Load fetches the rule list if no attempt has been made yet. Inconsistent
// rules are skipped, a fetch error leaves the cache empty; neither is fatal.
func (c *CachedRuleCatalog) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempted {
		return
	}
	c.attempted = true

	rules, err := c.source.FetchRules(ctx)
	if err != nil {
		c.logger.Warn("rule catalog load failed, falling back to defaults", "error", err)
		return
	}

	for _, r := range rules {
		if r.MaxDebtRatio.IsZero() {
			r.MaxDebtRatio = model.DefaultMaxDebtRatio
		}
		if err := r.Validate(); err != nil {
			c.logger.Warn("skipping inconsistent credit rule", "credit_type", r.CreditType, "error", err)
			continue
		}
		c.rules[r.CreditType] = r
	}
	c.logger.Info("rule catalog loaded", "rules", len(c.rules))
}

// RuleFor returns the rule for creditType, loading the catalog on first use.
// Unknown types get the default rule so callers never block on missing data.
func (c *CachedRuleCatalog) RuleFor(ctx context.Context, creditType string) model.CreditRule {
	c.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if rule, ok := c.rules[creditType]; ok {
		return rule
	}
	return model.DefaultCreditRule(creditType)
}
