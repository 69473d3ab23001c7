package detector

import (
	"sort"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// pairKey 국가-통화 조합
type pairKey struct {
	country  string
	currency string
}

// countryCurrencyRatios 국가별 통화 사용비율 계산
// ratio = count(country, currency) / count(country), over rows where both
// values are non-blank.
func countryCurrencyRatios(ds *model.Dataset) map[pairKey]float64 {
	pairCounts := make(map[pairKey]int)
	countryCounts := make(map[string]int)
	for row := 0; row < ds.Len(); row++ {
		country := ds.GetTrimmed(row, schema.FieldPartnerCountry)
		currency := ds.GetTrimmed(row, schema.FieldCurrency)
		if country == "" || currency == "" {
			continue
		}
		pairCounts[pairKey{country, currency}]++
		countryCounts[country]++
	}

	ratios := make(map[pairKey]float64, len(pairCounts))
	for pair, count := range pairCounts {
		ratios[pair] = float64(count) / float64(countryCounts[pair.country])
	}
	return ratios
}

// currencyPartnerRule 통화단위 불일치 (거래처)
//
// A trade partner invoicing in more than one currency is worth a look; every
// row of such a partner is flagged. When the partner-country column exists,
// each row additionally carries the country-level anomaly score of its
// country/currency pair.
func currencyPartnerRule() Rule {
	return Rule{
		ID:       RuleCurrencyPartner,
		Title:    "Currency Drift by Partner",
		Requires: []string{schema.FieldTradePartner, schema.FieldCurrency},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			currencies := make(map[string]map[string]bool)
			for row := 0; row < ds.Len(); row++ {
				partner := ds.GetTrimmed(row, schema.FieldTradePartner)
				currency := ds.GetTrimmed(row, schema.FieldCurrency)
				if partner == "" || currency == "" {
					continue
				}
				if currencies[partner] == nil {
					currencies[partner] = make(map[string]bool)
				}
				currencies[partner][currency] = true
			}

			rows := selectRows(ds, func(row int) bool {
				return len(currencies[ds.GetTrimmed(row, schema.FieldTradePartner)]) > 1
			})
			sortRowsBy(ds, rows, schema.FieldTradePartner, schema.FieldCurrency)

			var extras []extraCol
			if ds.Has(schema.FieldPartnerCountry) {
				ratios := countryCurrencyRatios(ds)
				extras = append(extras, extraCol{
					name: schema.FieldAnomalyScore,
					value: func(row int) string {
						pair := pairKey{
							country:  ds.GetTrimmed(row, schema.FieldPartnerCountry),
							currency: ds.GetTrimmed(row, schema.FieldCurrency),
						}
						ratio, ok := ratios[pair]
						if !ok {
							return ""
						}
						return formatRounded((1-ratio)*100, 1)
					},
				})
			}

			cols := append(commonColumns(), schema.FieldCurrency, schema.FieldAmount)
			return buildTable(ds, rows, cols, extras...), nil
		},
	}
}

// currencyCountryRule 국가별 통화단위 불일치
//
// For each partner-country/currency pair the usage ratio is the pair's share
// of the country's rows. Pairs under the ratio threshold in countries that
// use more than one currency are the rare ones; their rows are flagged with
// anomaly score (1 - ratio) * 100.
func currencyCountryRule() Rule {
	return Rule{
		ID:       RuleCurrencyCountry,
		Title:    "Currency Drift by Country",
		Requires: []string{schema.FieldPartnerCountry, schema.FieldCurrency},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			ratios := countryCurrencyRatios(ds)

			perCountry := make(map[string]int)
			for pair := range ratios {
				perCountry[pair.country]++
			}

			// 통화가 하나뿐인 국가는 일관성 문제 없음
			flagged := make(map[pairKey]float64)
			for pair, ratio := range ratios {
				if perCountry[pair.country] > 1 && ratio < cfg.CurrencyRatioThreshold {
					flagged[pair] = ratio
				}
			}

			rows := selectRows(ds, func(row int) bool {
				pair := pairKey{
					country:  ds.GetTrimmed(row, schema.FieldPartnerCountry),
					currency: ds.GetTrimmed(row, schema.FieldCurrency),
				}
				_, ok := flagged[pair]
				return ok
			})

			rowRatio := func(row int) float64 {
				return flagged[pairKey{
					country:  ds.GetTrimmed(row, schema.FieldPartnerCountry),
					currency: ds.GetTrimmed(row, schema.FieldCurrency),
				}]
			}

			// 이상치점수 높은 순
			sort.SliceStable(rows, func(a, b int) bool {
				ra, rb := rowRatio(rows[a]), rowRatio(rows[b])
				if ra != rb {
					return ra < rb
				}
				ca := ds.GetTrimmed(rows[a], schema.FieldPartnerCountry)
				cb := ds.GetTrimmed(rows[b], schema.FieldPartnerCountry)
				if ca != cb {
					return ca < cb
				}
				return ds.GetTrimmed(rows[a], schema.FieldCurrency) < ds.GetTrimmed(rows[b], schema.FieldCurrency)
			})

			extras := []extraCol{
				{name: schema.FieldUsageRatio, value: func(row int) string {
					return formatRounded(rowRatio(row)*100, 1)
				}},
				{name: schema.FieldAnomalyScore, value: func(row int) string {
					return formatRounded((1-rowRatio(row))*100, 1)
				}},
			}

			cols := []string{
				schema.FieldPartnerCountry, schema.FieldCurrency,
				schema.FieldDeclarationNo, schema.FieldAcceptanceDate, schema.FieldAmount,
			}
			return buildTable(ds, rows, cols, extras...), nil
		},
	}
}
