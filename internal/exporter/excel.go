package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// XLSXSink 엑셀 리포트 싱크
// One sheet per rule plus a leading summary sheet; each rule's key columns
// get conditional highlighting so the reviewer's eye lands on the reason a
// row was flagged.
type XLSXSink struct{}

// NewXLSXSink 엑셀 싱크 생성
func NewXLSXSink() *XLSXSink {
	return &XLSXSink{}
}

// Name 싱크 이름
func (s *XLSXSink) Name() string { return "xlsx" }

// ContentType 응답 타입
func (s *XLSXSink) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// keyColumns 규칙별 강조 컬럼
var keyColumns = map[string][]string{
	"high_rate_review":               {schema.FieldTariffRate, schema.FieldFTAReview},
	"low_rate_risk":                  {schema.FieldRateType, schema.FieldTariffRate},
	"hs_mismatch_risk":               {schema.FieldSpec1, schema.FieldHSCode},
	"price_outlier":                  {schema.FieldUnitPrice, schema.FieldZScore},
	"missing_domestic_tax":           {schema.FieldHSCode, schema.FieldInternalTaxCode},
	"import_requirement_mismatch":    {schema.FieldLawCode, schema.FieldIssuedDoc, schema.FieldNonTargetReason},
	"f_rate_applied":                 {schema.FieldRateType},
	"fta_opportunity":                {schema.FieldTariffRate, schema.FieldTaxableUSD},
	"low_price_suspicion":            {schema.FieldUnitPrice},
	"currency_inconsistency_partner": {schema.FieldCurrency, schema.FieldAnomalyScore},
	"currency_inconsistency_country": {schema.FieldCurrency, schema.FieldAnomalyScore},
	"special_trade_type":             {schema.FieldTradeType},
	"missing_free_freight":           {schema.FieldIncoterms, schema.FieldInputFreight},
	"usage_rate_applied":             {schema.FieldHSCode, schema.FieldUsagePurpose},
}

// Render 리포트를 엑셀 워크북으로 렌더링
func (s *XLSXSink) Render(rep *model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newReportStyles(f)
	if err != nil {
		return nil, err
	}

	if err := s.writeSummarySheet(f, rep, styles); err != nil {
		return nil, err
	}

	used := map[string]bool{"Summary": true}
	for _, res := range rep.Results {
		name := uniqueSheetName(res.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := s.writeRuleSheet(f, name, res, styles); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type reportStyles struct {
	title     int
	header    int
	highlight int
	note      int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var st reportStyles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("title style: %w", err)
	}

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "4472C4", Style: 2},
		},
	})
	if err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}

	st.highlight, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("highlight style: %w", err)
	}

	st.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "808080"},
	})
	if err != nil {
		return st, fmt.Errorf("note style: %w", err)
	}

	return st, nil
}

func (s *XLSXSink) writeSummarySheet(f *excelize.File, rep *model.Report, st reportStyles) error {
	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", "Import Declaration Risk Summary"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "D1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", st.title); err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A3", "File")
	_ = f.SetCellValue(sheet, "B3", rep.Filename)
	_ = f.SetCellValue(sheet, "A4", "Total declarations")
	_ = f.SetCellValue(sheet, "B4", rep.Summary.TotalDeclarations)

	row := 6
	headers := []string{"Rule", "Declarations", "Percent", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	_ = f.SetCellStyle(sheet, first, last, st.header)

	for _, rc := range rep.Summary.Rules {
		row++
		status := "ok"
		if res, ok := rep.Result(rc.RuleID); ok && res.Skipped {
			status = "skipped: " + res.Reason
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rc.Title)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rc.Declarations)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.1f%%", rc.Percent))
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), status)
	}

	if len(rep.Summary.MonthlyTrend) > 0 {
		row += 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Month")
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Declarations")
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), st.header)
		for _, mc := range rep.Summary.MonthlyTrend {
			row++
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), mc.Month)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), mc.Declarations)
		}
	}

	return f.SetColWidth(sheet, "A", "A", 32)
}

func (s *XLSXSink) writeRuleSheet(f *excelize.File, sheet string, res model.DetectionResult, st reportStyles) error {
	if res.Skipped {
		_ = f.SetCellValue(sheet, "A1", "Rule skipped: "+res.Reason)
		return f.SetCellStyle(sheet, "A1", "A1", st.note)
	}
	if res.Table.Len() == 0 {
		_ = f.SetCellValue(sheet, "A1", "No findings")
		return f.SetCellStyle(sheet, "A1", "A1", st.note)
	}

	highlight := make(map[int]bool)
	for _, key := range keyColumns[res.RuleID] {
		if idx, ok := res.Table.ColumnIndex(key); ok {
			highlight[idx] = true
		}
	}

	for i, col := range res.Table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(res.Table.Columns), 1)
	if err := f.SetCellStyle(sheet, first, last, st.header); err != nil {
		return err
	}

	for r, dataRow := range res.Table.Rows {
		for c, value := range dataRow {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if highlight[c] {
				if err := f.SetCellStyle(sheet, cell, cell, st.highlight); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// uniqueSheetName 엑셀 시트명 규칙에 맞춘 고유 이름 생성
// Sheet names cap at 31 characters and reject a handful of characters.
func uniqueSheetName(title string, used map[string]bool) string {
	name := title
	for _, ch := range []string{"[", "]", ":", "*", "?", "/", "\\"} {
		name = strings.ReplaceAll(name, ch, "")
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		name = "Rule"
	}
	base := []rune(name)
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" %d", i)
		if len(base)+len(suffix) > 31 {
			name = string(base[:31-len(suffix)]) + suffix
		} else {
			name = string(base) + suffix
		}
	}
	used[name] = true
	return name
}
