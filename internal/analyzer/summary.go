package analyzer

import (
	"sort"
	"time"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/parser"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// BuildSummary 위험 요약 생성
//
// Counts are by unique declaration identifier throughout. A rule counts the
// distinct identifiers in its own result table; without an identifier column
// the row count stands in. Total 0 yields percentage 0, never a division
// fault.
func BuildSummary(ds *model.Dataset, results []model.DetectionResult) *model.RiskSummary {
	total := totalDeclarations(ds)

	rules := make([]model.RuleCount, 0, len(results))
	for _, res := range results {
		count := resultDeclarations(res)
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total) * 100
		}
		rules = append(rules, model.RuleCount{
			RuleID:       res.RuleID,
			Title:        res.Title,
			Declarations: count,
			Percent:      percent,
		})
	}

	return &model.RiskSummary{
		TotalDeclarations: total,
		Rules:             rules,
		MonthlyTrend:      monthlyTrend(ds),
	}
}

// totalDeclarations 전체 신고 건수 (고유 신고번호 기준)
// Without a declaration-number column the row count is the only measure left.
func totalDeclarations(ds *model.Dataset) int {
	if !ds.Has(schema.FieldDeclarationNo) {
		return ds.Len()
	}
	seen := make(map[string]bool)
	for row := 0; row < ds.Len(); row++ {
		if decl := ds.GetTrimmed(row, schema.FieldDeclarationNo); decl != "" {
			seen[decl] = true
		}
	}
	return len(seen)
}

// resultDeclarations 규칙 결과 내 고유 신고 건수
func resultDeclarations(res model.DetectionResult) int {
	if res.Skipped || res.Table.Len() == 0 {
		return 0
	}
	idx, ok := res.Table.ColumnIndex(schema.FieldDeclarationNo)
	if !ok {
		return res.Table.Len()
	}
	seen := make(map[string]bool)
	for _, row := range res.Table.Rows {
		if idx < len(row) && row[idx] != "" {
			seen[row[idx]] = true
		}
	}
	return len(seen)
}

// monthlyTrend 월별 신고 건수 추이
//
// Acceptance dates must render as 8-digit YYYYMMDD after numeric cleanup;
// anything else is dropped. Any unexpected failure omits the trend rather
// than failing the summary.
func monthlyTrend(ds *model.Dataset) (trend []model.MonthCount) {
	defer func() {
		if recover() != nil {
			trend = nil
		}
	}()

	if !ds.HasAll(schema.FieldAcceptanceDate, schema.FieldDeclarationNo) {
		return nil
	}

	byMonth := make(map[string]map[string]bool)
	for row := 0; row < ds.Len(); row++ {
		date := parser.FormatDateCell(ds.Get(row, schema.FieldAcceptanceDate))
		if len(date) != 8 {
			continue
		}
		t, err := time.Parse("20060102", date)
		if err != nil {
			continue
		}
		decl := ds.GetTrimmed(row, schema.FieldDeclarationNo)
		if decl == "" {
			continue
		}
		month := t.Format("2006-01")
		if byMonth[month] == nil {
			byMonth[month] = make(map[string]bool)
		}
		byMonth[month][decl] = true
	}

	if len(byMonth) == 0 {
		return nil
	}

	trend = make([]model.MonthCount, 0, len(byMonth))
	for month, decls := range byMonth {
		trend = append(trend, model.MonthCount{Month: month, Declarations: len(decls)})
	}
	sort.Slice(trend, func(a, b int) bool { return trend[a].Month < trend[b].Month })
	return trend
}
