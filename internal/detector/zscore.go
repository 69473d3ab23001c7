package detector

import (
	"math"
	"sort"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// priceGroupStats 규격별 단가 통계
type priceGroupStats struct {
	mean float64
	std  float64
}

// priceOutlierRule 단가 Risk (Z-Score)
//
// Rows with positive unit price group by specification code; groups of at
// least three members get a mean and sample standard deviation, and each
// member a z-score ((price-mean)/std, 0 when std is 0). Strictly |z| above
// the threshold flags the row. The 1.96 default is the two-sided 95%
// confidence bound.
func priceOutlierRule() Rule {
	return Rule{
		ID:       RulePriceOutlier,
		Title:    "Unit Price Outlier",
		Requires: []string{schema.FieldSpec1, schema.FieldUnitPrice},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			groups := make(map[string][]int)
			for row := 0; row < ds.Len(); row++ {
				if ds.Number(row, schema.FieldUnitPrice) <= 0 {
					continue
				}
				spec := ds.GetTrimmed(row, schema.FieldSpec1)
				if spec == "" {
					continue
				}
				groups[spec] = append(groups[spec], row)
			}

			stats := make(map[string]priceGroupStats)
			for spec, members := range groups {
				if len(members) < 3 {
					continue
				}
				stats[spec] = computeStats(ds, members)
			}

			zscores := make(map[int]float64)
			var rows []int
			for spec, st := range stats {
				for _, row := range groups[spec] {
					z := 0.0
					if st.std > 0 {
						z = (ds.Number(row, schema.FieldUnitPrice) - st.mean) / st.std
					}
					if math.Abs(z) > cfg.ZScoreThreshold {
						zscores[row] = z
						rows = append(rows, row)
					}
				}
			}

			// 가장 이상한 것부터
			sort.SliceStable(rows, func(a, b int) bool {
				return math.Abs(zscores[rows[a]]) > math.Abs(zscores[rows[b]])
			})

			specOf := func(row int) string { return ds.GetTrimmed(row, schema.FieldSpec1) }
			extras := []extraCol{
				{name: schema.FieldZScore, value: func(row int) string {
					return formatRounded(zscores[row], 2)
				}},
				{name: schema.FieldGroupMean, value: func(row int) string {
					return formatRounded(stats[specOf(row)].mean, 2)
				}},
				{name: schema.FieldGroupStd, value: func(row int) string {
					return formatRounded(stats[specOf(row)].std, 2)
				}},
			}

			cols := append(commonColumns(),
				schema.FieldHSCode, schema.FieldGoodsName, schema.FieldSpec1,
				schema.FieldUnitPrice, schema.FieldCurrency, schema.FieldAmount, schema.FieldQty)
			return buildTable(ds, rows, cols, extras...), nil
		},
	}
}

// computeStats 평균과 표본 표준편차
func computeStats(ds *model.Dataset, rows []int) priceGroupStats {
	n := float64(len(rows))
	var sum float64
	for _, row := range rows {
		sum += ds.Number(row, schema.FieldUnitPrice)
	}
	mean := sum / n

	var sq float64
	for _, row := range rows {
		d := ds.Number(row, schema.FieldUnitPrice) - mean
		sq += d * d
	}
	std := 0.0
	if n > 1 {
		std = math.Sqrt(sq / (n - 1))
	}
	return priceGroupStats{mean: mean, std: std}
}
