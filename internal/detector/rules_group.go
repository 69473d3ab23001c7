package detector

import (
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// hsMismatchRule 세율 Risk (HS 불일치)
//
// Line items sharing one specification code describe the same product
// variant, so they should classify under one HS code. Every row of a
// specification whose distinct HS-code count exceeds one is flagged.
func hsMismatchRule() Rule {
	return Rule{
		ID:       RuleHSMismatchRisk,
		Title:    "HS Code Inconsistency",
		Requires: []string{schema.FieldSpec1, schema.FieldHSCode},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			groups := make(map[string][]int)
			codes := make(map[string]map[string]bool)
			for row := 0; row < ds.Len(); row++ {
				spec := ds.GetTrimmed(row, schema.FieldSpec1)
				if spec == "" {
					continue
				}
				groups[spec] = append(groups[spec], row)
				if codes[spec] == nil {
					codes[spec] = make(map[string]bool)
				}
				codes[spec][ds.GetTrimmed(row, schema.FieldHSCode)] = true
			}

			var rows []int
			for spec, members := range groups {
				if len(codes[spec]) > 1 {
					rows = append(rows, members...)
				}
			}
			sortRowsBy(ds, rows, schema.FieldSpec1, schema.FieldHSCode)

			cols := append(commonColumns(),
				schema.FieldSpec1, schema.FieldSpec2, schema.FieldSpec3,
				schema.FieldComp1, schema.FieldComp2, schema.FieldComp3,
				schema.FieldHSCode, schema.FieldRateType, schema.FieldRateDesc,
				schema.FieldTariffRate, schema.FieldTaxableUSD, schema.FieldActualDuty,
				schema.FieldPaymentMethod, schema.FieldAmount, schema.FieldGoodsName)
			return buildTable(ds, rows, cols, withRowDuty(ds, nil)...), nil
		},
	}
}
