package detector

import (
	"errors"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// usageRateAppliedRule 용도세율 적용
//
// Flags line items whose 10-digit HS code appears in the externally supplied
// use-based rate list and attaches the list's purpose and source metadata.
// Without a loaded list the rule is skipped, not failed.
func usageRateAppliedRule() Rule {
	return Rule{
		ID:       RuleUsageRateApplied,
		Title:    "Use-Based Rate Applied",
		Requires: []string{schema.FieldHSCode},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			if cfg.UsageRates.Len() == 0 {
				return nil, errors.New("usage-rate reference list not loaded")
			}

			rows := selectRows(ds, func(row int) bool {
				_, ok := cfg.UsageRates.Lookup(NormalizeHS(ds.Get(row, schema.FieldHSCode)))
				return ok
			})

			entryOf := func(row int) UsageRate {
				entry, _ := cfg.UsageRates.Lookup(NormalizeHS(ds.Get(row, schema.FieldHSCode)))
				return entry
			}
			extras := []extraCol{
				{name: schema.FieldUsagePurpose, value: func(row int) string { return entryOf(row).Purpose }},
				{name: schema.FieldUsageSource, value: func(row int) string { return entryOf(row).Source }},
			}

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldRateType, schema.FieldRateDesc,
				schema.FieldTariffRate, schema.FieldGoodsName, schema.FieldSpec1,
				schema.FieldAmount)
			return buildTable(ds, rows, cols, extras...), nil
		},
	}
}
