package detector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// UsageRate 용도세율 참조 항목
type UsageRate struct {
	Purpose string // 용도
	Source  string // 출처
}

// UsageRateList HSK 코드 기반 용도세율 참조 목록
// Keys are HS codes with dots and hyphens stripped, truncated to 10 digits.
type UsageRateList struct {
	byHS map[string]UsageRate
}

// Len 항목 수
func (l *UsageRateList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byHS)
}

// Lookup 10자리 HS 코드로 조회
func (l *UsageRateList) Lookup(hs10 string) (UsageRate, bool) {
	if l == nil {
		return UsageRate{}, false
	}
	r, ok := l.byHS[hs10]
	return r, ok
}

// NormalizeHS HS 코드 정규화 (구두점 제거 후 앞 10자리)
func NormalizeHS(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, ".", "")
	code = strings.ReplaceAll(code, "-", "")
	if len(code) > 10 {
		code = code[:10]
	}
	return code
}

// LoadUsageRates 용도세율 CSV 파일 로드
func LoadUsageRates(path string) (*UsageRateList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open usage-rate csv: %w", err)
	}
	defer f.Close()
	return ReadUsageRates(f)
}

// ReadUsageRates 용도세율 CSV 읽기
// Expects a header row with HSK / 용도 / 출처 columns; unknown extra columns
// are ignored. Rows without an HSK value are skipped.
func ReadUsageRates(r io.Reader) (*UsageRateList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read usage-rate csv: %w", err)
	}
	if len(records) < 1 {
		return nil, errors.New("usage-rate csv is empty")
	}

	hsIdx, purposeIdx, sourceIdx := 0, 1, 2
	header := records[0]
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF")) {
		case "HSK":
			hsIdx = i
		case "용도":
			purposeIdx = i
		case "출처":
			sourceIdx = i
		}
	}

	list := &UsageRateList{byHS: make(map[string]UsageRate)}
	for _, rec := range records[1:] {
		if hsIdx >= len(rec) {
			continue
		}
		hs := NormalizeHS(rec[hsIdx])
		if hs == "" {
			continue
		}
		entry := UsageRate{}
		if purposeIdx < len(rec) {
			entry.Purpose = strings.TrimSpace(rec[purposeIdx])
		}
		if sourceIdx < len(rec) {
			entry.Source = strings.TrimSpace(rec[sourceIdx])
		}
		list.byHS[hs] = entry
	}

	return list, nil
}
