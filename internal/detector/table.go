package detector

import (
	"math"
	"sort"
	"strconv"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/parser"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// commonColumns 모든 규칙 결과의 공통 우선 컬럼
func commonColumns() []string {
	return []string{
		schema.FieldDeclarationNo,
		schema.FieldAcceptanceDate,
		schema.FieldBLNo,
		schema.FieldTradePartner,
		schema.FieldPartnerCountry,
	}
}

// extraCol 규칙이 계산해 붙이는 파생 컬럼
type extraCol struct {
	name  string
	value func(row int) string
}

// buildTable 플래그된 행들로 표시 테이블 구성
//
// Display columns are intersected with what the dataset actually has; derived
// columns follow. Acceptance dates are normalized for display.
func buildTable(ds *model.Dataset, rows []int, cols []string, extras ...extraCol) *model.Table {
	present := make([]string, 0, len(cols))
	for _, col := range cols {
		if ds.Has(col) {
			present = append(present, col)
		}
	}

	columns := make([]string, 0, len(present)+len(extras))
	columns = append(columns, present...)
	for _, ex := range extras {
		columns = append(columns, ex.name)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range present {
			v := ds.Get(row, col)
			if col == schema.FieldAcceptanceDate {
				v = parser.FormatDateCell(v)
			}
			cells = append(cells, v)
		}
		for _, ex := range extras {
			cells = append(cells, ex.value(row))
		}
		out = append(out, cells)
	}

	return &model.Table{Columns: columns, Rows: out}
}

// selectRows 조건을 만족하는 행 인덱스 수집
func selectRows(ds *model.Dataset, pred func(row int) bool) []int {
	var rows []int
	for i := 0; i < ds.Len(); i++ {
		if pred(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

// sortRowsBy 컬럼 값 기준 행 정렬
func sortRowsBy(ds *model.Dataset, rows []int, cols ...string) {
	sort.SliceStable(rows, func(a, b int) bool {
		for _, col := range cols {
			va, vb := ds.Get(rows[a], col), ds.Get(rows[b], col)
			if va != vb {
				return va < vb
			}
		}
		return false
	})
}

// rowDutyColumn 행별관세 파생 컬럼
// actual_duty * amount / line_payment_amt, apportioning the declared duty
// over the line's payment share. Present only when all three inputs exist.
func rowDutyColumn(ds *model.Dataset) (extraCol, bool) {
	if !ds.HasAll(schema.FieldActualDuty, schema.FieldAmount, schema.FieldLinePaymentAmt) {
		return extraCol{}, false
	}
	col := extraCol{
		name: schema.FieldRowDuty,
		value: func(row int) string {
			payment := ds.Number(row, schema.FieldLinePaymentAmt)
			if payment == 0 {
				return "0"
			}
			duty := ds.Number(row, schema.FieldActualDuty) * ds.Number(row, schema.FieldAmount) / payment
			return formatRounded(duty, 2)
		},
	}
	return col, true
}

// withRowDuty 행별관세 컬럼이 계산 가능하면 추가
func withRowDuty(ds *model.Dataset, extras []extraCol) []extraCol {
	if col, ok := rowDutyColumn(ds); ok {
		extras = append(extras, col)
	}
	return extras
}

func round(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}

func formatRounded(v float64, digits int) string {
	return strconv.FormatFloat(round(v, digits), 'f', -1, 64)
}
