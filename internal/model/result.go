package model

// Table 탐지 결과 테이블
// Carries only the columns relevant to explaining why rows were flagged.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len 행 개수
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex 컬럼 인덱스 조회
func (t *Table) ColumnIndex(col string) (int, bool) {
	if t == nil {
		return 0, false
	}
	for i, c := range t.Columns {
		if c == col {
			return i, true
		}
	}
	return 0, false
}

// DetectionResult 단일 규칙의 탐지 결과
//
// A result is either a (possibly empty) table or an explicit skip with the
// reason surfaced as a warning. A skipped rule never aborts the pipeline.
type DetectionResult struct {
	RuleID  string `json:"ruleId"`
	Title   string `json:"title"`
	Table   *Table `json:"table,omitempty"`
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
}

// RuleCount 규칙별 신고 건수
type RuleCount struct {
	RuleID       string  `json:"ruleId"`
	Title        string  `json:"title"`
	Declarations int     `json:"declarations"`
	Percent      float64 `json:"percent"`
}

// MonthCount 월별 신고 건수
type MonthCount struct {
	Month        string `json:"month"` // "2006-01"
	Declarations int    `json:"declarations"`
}

// RiskSummary 전체 위험 요약
// Declaration counts are by unique declaration identifier, never by row count.
type RiskSummary struct {
	TotalDeclarations int          `json:"totalDeclarations"`
	Rules             []RuleCount  `json:"rules"`
	MonthlyTrend      []MonthCount `json:"monthlyTrend,omitempty"`
}

// Report 분석 산출물 (리포트 싱크에 전달되는 3요소)
type Report struct {
	Filename string            `json:"filename"`
	Dataset  *Dataset          `json:"-"`
	Results  []DetectionResult `json:"results"`
	Summary  *RiskSummary      `json:"summary"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Result 규칙 ID로 결과 조회
func (r *Report) Result(ruleID string) (DetectionResult, bool) {
	for _, res := range r.Results {
		if res.RuleID == ruleID {
			return res, true
		}
	}
	return DetectionResult{}, false
}
