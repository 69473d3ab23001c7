package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CleanColumnName 컬럼명 정리 (공백/개행/탭 제거)
func CleanColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	return spaceRe.ReplaceAllString(name, " ")
}

// Normalizer 스키마 정규화기
type Normalizer struct {
	catalog *Catalog
}

// NewNormalizer 정규화기 생성
func NewNormalizer(catalog *Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

// Normalize 원본 테이블을 표준 스키마로 정규화
//
// Header names are cleaned and duplicates get a numeric suffix (the first
// occurrence keeps its name). Each catalog field then resolves in fixed
// precedence: exact match, keyword rules in listed order, hard default.
// Fields with neither stay absent; downstream detectors degrade to empty
// results for them. The input dataset is not modified.
func (n *Normalizer) Normalize(ds *model.Dataset) (*model.Dataset, []string) {
	var warnings []string

	columns := make([]string, len(ds.Columns))
	seen := make(map[string]int, len(ds.Columns))
	for i, col := range ds.Columns {
		name := CleanColumnName(col)
		if cnt, dup := seen[name]; dup {
			seen[name] = cnt + 1
			name = fmt.Sprintf("%s_%d", name, cnt)
		} else {
			seen[name] = 1
		}
		columns[i] = name
	}

	out := model.NewDataset(columns, ds.Rows)

	claimed := make(map[string]bool, len(columns))
	renames := make(map[string]string)

	// 1차: 정확 일치
	for _, field := range n.catalog.Fields() {
		for _, exact := range append([]string{field.Name}, field.Exact...) {
			if out.Has(exact) && !claimed[exact] {
				claimed[exact] = true
				if exact != field.Name {
					renames[exact] = field.Name
				}
				break
			}
		}
	}

	// 2차: 키워드 매칭 (미확보 컬럼만 대상)
	for _, field := range n.catalog.Fields() {
		if fieldResolved(field, claimed, renames) {
			continue
		}
		if col, ok := findByKeywords(out.Columns, field.Keywords, claimed); ok {
			claimed[col] = true
			renames[col] = field.Name
		}
	}

	out = out.Renamed(renames)

	// 3차: 기본값
	for _, field := range n.catalog.Fields() {
		if !field.HasDefault || out.Has(field.Name) {
			continue
		}
		out = out.WithColumn(field.Name, field.Default)
		warnings = append(warnings, fmt.Sprintf("column %q not found; defaulted to %q", field.Name, field.Default))
	}

	return out, warnings
}

func fieldResolved(field FieldSpec, claimed map[string]bool, renames map[string]string) bool {
	if claimed[field.Name] {
		return true
	}
	for _, to := range renames {
		if to == field.Name {
			return true
		}
	}
	return false
}

func findByKeywords(columns []string, rules []KeywordRule, claimed map[string]bool) (string, bool) {
	for _, rule := range rules {
		for _, col := range columns {
			if claimed[col] || !matchRule(col, rule) {
				continue
			}
			return col, true
		}
	}
	return "", false
}

func matchRule(col string, rule KeywordRule) bool {
	if len(rule.All) == 0 {
		return false
	}
	for _, kw := range rule.All {
		if !strings.Contains(col, kw) {
			return false
		}
	}
	for _, kw := range rule.Exclude {
		if strings.Contains(col, kw) {
			return false
		}
	}
	return true
}
