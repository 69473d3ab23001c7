package parser

import (
	"strings"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// CoerceNumeric 숫자 의미 컬럼을 숫자 값으로 변환
//
// Runs after normalization and before any detector. Thousands separators are
// stripped; blank and unparsable cells become 0 so later arithmetic never
// propagates a missing-value marker. Re-running over already-coerced columns
// produces the same values, so the layer is idempotent.
func CoerceNumeric(ds *model.Dataset) {
	for _, col := range schema.NumericFields() {
		if !ds.Has(col) {
			continue
		}
		vals := make([]float64, ds.Len())
		for i := range vals {
			vals[i] = model.ParseNumber(ds.Get(i, col))
		}
		ds.SetNumeric(col, vals)
	}
}

// FormatDateCell 수리일자 셀을 8자리 표시 형식으로 변환
// Numeric exports render dates like "20250102.0"; strip the fraction and drop
// zero to blank.
func FormatDateCell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if s == "0" {
		return ""
	}
	return s
}
