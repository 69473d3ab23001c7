package detector

import (
	"fmt"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

// 규칙 ID
const (
	RuleHighRateReview       = "high_rate_review"
	RuleLowRateRisk          = "low_rate_risk"
	RuleHSMismatchRisk       = "hs_mismatch_risk"
	RulePriceOutlier         = "price_outlier"
	RuleMissingDomesticTax   = "missing_domestic_tax"
	RuleImportRequirement    = "import_requirement_mismatch"
	RuleFRateApplied         = "f_rate_applied"
	RuleFTAOpportunity       = "fta_opportunity"
	RuleLowPriceSuspicion    = "low_price_suspicion"
	RuleCurrencyPartner      = "currency_inconsistency_partner"
	RuleCurrencyCountry      = "currency_inconsistency_country"
	RuleSpecialTradeType     = "special_trade_type"
	RuleMissingFreeFreight   = "missing_free_freight"
	RuleUsageRateApplied     = "usage_rate_applied"
)

// Rule 탐지 규칙 기술자
//
// A rule is a pure function over the normalized dataset: predicate semantics,
// required columns and display columns are data, interpreted by Detect. Rules
// never mutate the dataset and never observe another rule's output.
type Rule struct {
	ID       string
	Title    string
	Requires []string
	run      func(ds *model.Dataset, cfg Config) (*model.Table, error)
}

// Detect 규칙 실행 (탐지기 경계)
//
// Never lets an error or panic out: a missing required column, a run error,
// or an internal fault all degrade to an explicit skipped result with the
// reason attached. Sibling rules and the aggregator are unaffected.
func (r Rule) Detect(ds *model.Dataset, cfg Config) (result model.DetectionResult) {
	result = model.DetectionResult{RuleID: r.ID, Title: r.Title}

	defer func() {
		if rec := recover(); rec != nil {
			result.Table = nil
			result.Skipped = true
			result.Reason = fmt.Sprintf("internal fault: %v", rec)
		}
	}()

	for _, col := range r.Requires {
		if !ds.Has(col) {
			result.Skipped = true
			result.Reason = fmt.Sprintf("required column %q not present", col)
			return result
		}
	}

	table, err := r.run(ds, cfg)
	if err != nil {
		result.Skipped = true
		result.Reason = err.Error()
		return result
	}

	result.Table = table
	return result
}

// Rules 전체 규칙 카탈로그 (리포트 출력 순서)
func Rules() []Rule {
	return []Rule{
		highRateReviewRule(),
		lowRateRiskRule(),
		hsMismatchRule(),
		priceOutlierRule(),
		missingDomesticTaxRule(),
		importRequirementRule(),
		fRateAppliedRule(),
		ftaOpportunityRule(),
		lowPriceSuspicionRule(),
		currencyPartnerRule(),
		currencyCountryRule(),
		specialTradeTypeRule(),
		missingFreeFreightRule(),
		usageRateAppliedRule(),
	}
}
