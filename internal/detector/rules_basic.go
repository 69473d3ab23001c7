package detector

import (
	"regexp"
	"sort"
	"strings"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// ftaReviewColumn FTA사후환급 검토 표시 컬럼
// Marked when export country and origin country agree and are non-blank.
func ftaReviewColumn(ds *model.Dataset) (extraCol, bool) {
	if !ds.HasAll(schema.FieldExportCountry, schema.FieldOriginCountry) {
		return extraCol{}, false
	}
	col := extraCol{
		name: schema.FieldFTAReview,
		value: func(row int) string {
			exp := ds.GetTrimmed(row, schema.FieldExportCountry)
			org := ds.GetTrimmed(row, schema.FieldOriginCountry)
			if exp != "" && exp == org {
				return "Y"
			}
			return ""
		},
	}
	return col, true
}

// highRateReviewRule 8% 환급 검토
//
// Baseline rate-type "A" declarations whose duty may be refundable. The
// strict variant additionally requires tariff_rate >= HighRateMinRate
// (default 8); HighRateMinRate = 0 restores the loose variant.
func highRateReviewRule() Rule {
	return Rule{
		ID:       RuleHighRateReview,
		Title:    "High Duty-Rate Review",
		Requires: []string{schema.FieldRateType},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				if ds.GetTrimmed(row, schema.FieldRateType) != "A" {
					return false
				}
				if cfg.HighRateMinRate > 0 {
					return ds.Number(row, schema.FieldTariffRate) >= cfg.HighRateMinRate
				}
				return true
			})

			var extras []extraCol
			if col, ok := ftaReviewColumn(ds); ok {
				extras = append(extras, col)
			}
			extras = withRowDuty(ds, extras)

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldRateType, schema.FieldRateDesc,
				schema.FieldTariffRate, schema.FieldExportCountry, schema.FieldOriginCountry,
				schema.FieldSpec1, schema.FieldSpec2, schema.FieldSpec3,
				schema.FieldComp1, schema.FieldComp2, schema.FieldComp3,
				schema.FieldActualDuty, schema.FieldPaymentMethod, schema.FieldCurrency,
				schema.FieldGoodsName, schema.FieldLineNo, schema.FieldRowNo,
				schema.FieldQty, schema.FieldQtyUnit, schema.FieldUnitPrice, schema.FieldAmount)
			return buildTable(ds, rows, cols, extras...), nil
		},
	}
}

var fourCharFRate = regexp.MustCompile(`^F.{3}$`)

// lowRateRiskRule 0% Risk
// Near-zero tariff without a recognizable FTA rate-type: rate below the
// threshold, rate-type neither the 4-character F*** form nor an FR* code.
func lowRateRiskRule() Rule {
	return Rule{
		ID:       RuleLowRateRisk,
		Title:    "Near-Zero Tariff Risk",
		Requires: []string{schema.FieldRateType, schema.FieldTariffRate},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				rt := ds.GetTrimmed(row, schema.FieldRateType)
				return ds.Number(row, schema.FieldTariffRate) < cfg.LowRateMaxRate &&
					!fourCharFRate.MatchString(rt) &&
					!strings.HasPrefix(rt, "FR")
			})

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldRateType, schema.FieldTariffRate,
				schema.FieldSpec1, schema.FieldSpec2, schema.FieldComp1,
				schema.FieldActualDuty, schema.FieldGoodsName,
				schema.FieldLineNo, schema.FieldRowNo,
				schema.FieldQty, schema.FieldQtyUnit, schema.FieldUnitPrice, schema.FieldAmount)
			return buildTable(ds, rows, cols, withRowDuty(ds, nil)...), nil
		},
	}
}

// fRateAppliedRule F세율 적용
// Exact match on rate-type "F" by default; FRatePrefix widens to any
// rate-type starting with "F".
func fRateAppliedRule() Rule {
	return Rule{
		ID:       RuleFRateApplied,
		Title:    "Preferential F-Rate Applied",
		Requires: []string{schema.FieldRateType},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				rt := ds.GetTrimmed(row, schema.FieldRateType)
				if cfg.FRatePrefix {
					return strings.HasPrefix(rt, "F")
				}
				return rt == "F"
			})

			cols := []string{
				schema.FieldDeclarationNo, schema.FieldAcceptanceDate,
				schema.FieldHSCode, schema.FieldRateType, schema.FieldRateDesc,
				schema.FieldTariffRate, schema.FieldGoodsName, schema.FieldSpec1,
				schema.FieldOriginCountry, schema.FieldAmount,
			}
			return buildTable(ds, rows, cols, withRowDuty(ds, nil)...), nil
		},
	}
}

// ftaOpportunityRule FTA 기회 발굴
// Standard-rate declarations where the export country equals the origin
// country and duty is actually being paid: candidates for FTA coverage.
// Sorted by taxable value descending so the largest exposure leads.
func ftaOpportunityRule() Rule {
	return Rule{
		ID:    RuleFTAOpportunity,
		Title: "Undercaptured FTA Opportunity",
		Requires: []string{
			schema.FieldRateType, schema.FieldExportCountry,
			schema.FieldOriginCountry, schema.FieldTariffRate,
		},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				exp := ds.GetTrimmed(row, schema.FieldExportCountry)
				return ds.GetTrimmed(row, schema.FieldRateType) == "A" &&
					exp != "" &&
					exp == ds.GetTrimmed(row, schema.FieldOriginCountry) &&
					ds.Number(row, schema.FieldTariffRate) > 0
			})

			if ds.Has(schema.FieldTaxableUSD) {
				sort.SliceStable(rows, func(a, b int) bool {
					return ds.Number(rows[a], schema.FieldTaxableUSD) > ds.Number(rows[b], schema.FieldTaxableUSD)
				})
			}

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldRateType, schema.FieldTariffRate,
				schema.FieldExportCountry, schema.FieldOriginCountry, schema.FieldTaxableUSD,
				schema.FieldGoodsName, schema.FieldAmount, schema.FieldActualDuty)
			return buildTable(ds, rows, cols), nil
		},
	}
}

// lowPriceSuspicionRule 저가신고 의심
func lowPriceSuspicionRule() Rule {
	return Rule{
		ID:       RuleLowPriceSuspicion,
		Title:    "Possible Undervaluation",
		Requires: []string{schema.FieldUnitPrice},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				return ds.Number(row, schema.FieldUnitPrice) <= cfg.LowPriceThreshold
			})
			sort.SliceStable(rows, func(a, b int) bool {
				return ds.Number(rows[a], schema.FieldUnitPrice) < ds.Number(rows[b], schema.FieldUnitPrice)
			})

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldGoodsName, schema.FieldSpec1,
				schema.FieldUnitPrice, schema.FieldCurrency, schema.FieldAmount,
				schema.FieldPaymentMethod)
			return buildTable(ds, rows, cols), nil
		},
	}
}

// missingDomesticTaxRule 내국세 누락
// Alcohol chapter HS codes (10 digits starting "22") with no internal tax
// code. An absent internal-tax column counts the same as a blank value.
func missingDomesticTaxRule() Rule {
	return Rule{
		ID:       RuleMissingDomesticTax,
		Title:    "Missing Domestic Tax Code",
		Requires: []string{schema.FieldHSCode},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				hs := ds.GetTrimmed(row, schema.FieldHSCode)
				if len(hs) != 10 || !strings.HasPrefix(hs, "22") {
					return false
				}
				return ds.GetTrimmed(row, schema.FieldInternalTaxCode) == ""
			})
			sortRowsBy(ds, rows, schema.FieldDeclarationNo)

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldRateType, schema.FieldTariffRate,
				schema.FieldInternalTaxCode,
				schema.FieldSpec1, schema.FieldSpec2, schema.FieldSpec3,
				schema.FieldComp1, schema.FieldComp2, schema.FieldComp3,
				schema.FieldActualDuty, schema.FieldGoodsName,
				schema.FieldLineNo, schema.FieldRowNo,
				schema.FieldQty, schema.FieldQtyUnit, schema.FieldUnitPrice, schema.FieldAmount)
			return buildTable(ds, rows, cols, withRowDuty(ds, nil)...), nil
		},
	}
}

// specialTradeTypeRule 특수거래 구분
// Anything outside the ordinary-import allow-list needs a post-clearance
// review (re-export, exemption and similar regimes).
func specialTradeTypeRule() Rule {
	return Rule{
		ID:       RuleSpecialTradeType,
		Title:    "Non-Standard Trade Type",
		Requires: []string{schema.FieldTradeType},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			rows := selectRows(ds, func(row int) bool {
				return !cfg.IsOrdinaryTradeType(ds.GetTrimmed(row, schema.FieldTradeType))
			})
			sortRowsBy(ds, rows, schema.FieldTradeType)

			cols := []string{
				schema.FieldDeclarationNo, schema.FieldAcceptanceDate,
				schema.FieldTradeType, schema.FieldHSCode, schema.FieldGoodsName,
				schema.FieldAmount, schema.FieldRateType,
			}
			return buildTable(ds, rows, cols), nil
		},
	}
}

// missingFreeFreightRule 무상운임 누락
// EXW/FOB terms put freight on the importer; a blank or zero input freight
// on those terms means the taxable base may be understated. A missing
// input-freight column counts as missing freight on every row.
func missingFreeFreightRule() Rule {
	return Rule{
		ID:       RuleMissingFreeFreight,
		Title:    "Missing Freight on Free Terms",
		Requires: []string{schema.FieldIncoterms},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			hasInput := ds.Has(schema.FieldInputFreight)
			rows := selectRows(ds, func(row int) bool {
				term := ds.GetTrimmed(row, schema.FieldIncoterms)
				if term != "EXW" && term != "FOB" {
					return false
				}
				if !hasInput {
					return true
				}
				return ds.GetTrimmed(row, schema.FieldInputFreight) == "" ||
					ds.Number(row, schema.FieldInputFreight) == 0
			})

			cols := append(commonColumns(),
				schema.FieldPaymentMethod, schema.FieldIncoterms,
				schema.FieldFreight, schema.FieldFreightCurrency,
				schema.FieldInputFreight, schema.FieldCalcFreightKRW,
				schema.FieldAmount, schema.FieldGoodsName)
			return buildTable(ds, rows, cols), nil
		},
	}
}
