package model

import (
	"strconv"
	"strings"
)

// Dataset 선적·수입신고 라인아이템 테이블
//
// One row per declared line item. Columns are discovered at load time and are
// not a fixed schema; after normalization the canonical columns carry the
// names from the schema package. The dataset is created once per uploaded
// file and treated as read-only for the rest of the analysis run.
type Dataset struct {
	Columns []string
	Rows    [][]string

	index map[string]int
	nums  map[string][]float64
}

// NewDataset 데이터셋 생성
// Short rows are padded so every row has one cell per column.
func NewDataset(columns []string, rows [][]string) *Dataset {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, ok := index[col]; !ok {
			index[col] = i
		}
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(columns) {
			p := make([]string, len(columns))
			copy(p, row)
			row = p
		}
		padded[i] = row[:len(columns)]
	}

	return &Dataset{
		Columns: columns,
		Rows:    padded,
		index:   index,
		nums:    make(map[string][]float64),
	}
}

// Len 행 개수
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Has 컬럼 존재 여부
func (d *Dataset) Has(col string) bool {
	_, ok := d.index[col]
	return ok
}

// HasAll 모든 컬럼 존재 여부
func (d *Dataset) HasAll(cols ...string) bool {
	for _, col := range cols {
		if !d.Has(col) {
			return false
		}
	}
	return true
}

// ColumnIndex 컬럼 인덱스 조회
func (d *Dataset) ColumnIndex(col string) (int, bool) {
	idx, ok := d.index[col]
	return idx, ok
}

// Get 셀 값 조회 (컬럼이 없으면 빈 문자열)
func (d *Dataset) Get(row int, col string) string {
	idx, ok := d.index[col]
	if !ok || row < 0 || row >= len(d.Rows) {
		return ""
	}
	return d.Rows[row][idx]
}

// GetTrimmed 공백 제거된 셀 값
func (d *Dataset) GetTrimmed(row int, col string) string {
	return strings.TrimSpace(d.Get(row, col))
}

// Number 숫자 값 조회
//
// Returns the coerced value when the column went through numeric coercion,
// otherwise parses on the fly. Blank and unparsable cells are 0, never a
// missing-value marker.
func (d *Dataset) Number(row int, col string) float64 {
	if vals, ok := d.nums[col]; ok && row >= 0 && row < len(vals) {
		return vals[row]
	}
	return ParseNumber(d.Get(row, col))
}

// SetNumeric 지정 컬럼의 숫자 변환 결과 저장
// Re-coercion overwrites with identical values, so the operation is idempotent.
func (d *Dataset) SetNumeric(col string, vals []float64) {
	if !d.Has(col) || len(vals) != len(d.Rows) {
		return
	}
	d.nums[col] = vals
}

// IsCoerced 숫자 변환 완료 여부
func (d *Dataset) IsCoerced(col string) bool {
	_, ok := d.nums[col]
	return ok
}

// WithColumn 상수 값 컬럼을 추가한 새 데이터셋 반환
// The receiver is not modified; existing columns are never overwritten.
func (d *Dataset) WithColumn(col, value string) *Dataset {
	if d.Has(col) {
		return d
	}
	columns := append(append([]string{}, d.Columns...), col)
	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		rows[i] = append(append([]string{}, row...), value)
	}
	return NewDataset(columns, rows)
}

// Renamed 컬럼명을 바꾼 새 데이터셋 반환
func (d *Dataset) Renamed(renames map[string]string) *Dataset {
	if len(renames) == 0 {
		return d
	}
	columns := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		if to, ok := renames[col]; ok {
			columns[i] = to
		} else {
			columns[i] = col
		}
	}
	return NewDataset(columns, d.Rows)
}

// ParseNumber 문자열을 숫자로 변환
// Strips thousands separators; blank and unparsable values become 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatNumber 숫자를 셀 문자열로 변환
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
