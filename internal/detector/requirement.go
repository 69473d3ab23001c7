package detector

import (
	"errors"
	"sort"
	"strings"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

// requirementColumns 수입요건 메타데이터 컬럼
func requirementColumns() []string {
	return []string{
		schema.FieldLawCode,
		schema.FieldIssuedDoc,
		schema.FieldNonTargetReason,
	}
}

// importRequirementRule 수입요건 Risk
//
// Line items under one specification code should clear under one consistent
// set of regulatory codes. In the default declaration scope, each
// declaration inside a specification builds the set of distinct non-blank
// values across the regulatory columns; when the declarations disagree,
// every row of that specification is flagged. The spec scope is the older
// variant comparing values across the whole specification.
func importRequirementRule() Rule {
	return Rule{
		ID:       RuleImportRequirement,
		Title:    "Import Requirement Mismatch",
		Requires: []string{schema.FieldSpec1, schema.FieldDeclarationNo},
		run: func(ds *model.Dataset, cfg Config) (*model.Table, error) {
			var reqCols []string
			for _, col := range requirementColumns() {
				if ds.Has(col) {
					reqCols = append(reqCols, col)
				}
			}
			if len(reqCols) == 0 {
				return nil, errors.New("no regulatory-code columns present")
			}

			groups := make(map[string][]int)
			for row := 0; row < ds.Len(); row++ {
				spec := ds.GetTrimmed(row, schema.FieldSpec1)
				if spec == "" {
					continue
				}
				groups[spec] = append(groups[spec], row)
			}

			var rows []int
			for _, members := range groups {
				var mismatch bool
				if cfg.RequirementScope == RequirementScopeSpec {
					mismatch = specScopeMismatch(ds, members, reqCols)
				} else {
					mismatch = declarationScopeMismatch(ds, members, reqCols)
				}
				if mismatch {
					rows = append(rows, members...)
				}
			}
			sortRowsBy(ds, rows, schema.FieldSpec1, schema.FieldDeclarationNo)

			cols := append(commonColumns(), schema.FieldSpec1, schema.FieldHSCode)
			cols = append(cols, reqCols...)
			cols = append(cols, schema.FieldGoodsName, schema.FieldOriginCountry)
			return buildTable(ds, rows, cols), nil
		},
	}
}

// declarationScopeMismatch 신고 단위 법령 세트 비교
func declarationScopeMismatch(ds *model.Dataset, members []int, reqCols []string) bool {
	byDecl := make(map[string]map[string]bool)
	for _, row := range members {
		decl := ds.GetTrimmed(row, schema.FieldDeclarationNo)
		if byDecl[decl] == nil {
			byDecl[decl] = make(map[string]bool)
		}
		for _, col := range reqCols {
			if v := ds.GetTrimmed(row, col); v != "" {
				byDecl[decl][v] = true
			}
		}
	}

	// 비어있지 않은 세트만 비교 대상
	sets := make(map[string]bool)
	nonEmpty := 0
	for _, vals := range byDecl {
		if len(vals) == 0 {
			continue
		}
		nonEmpty++
		sets[setKey(vals)] = true
	}
	return nonEmpty >= 2 && len(sets) > 1
}

// specScopeMismatch 규격 단위 값 비교 (구버전 정책)
func specScopeMismatch(ds *model.Dataset, members []int, reqCols []string) bool {
	if len(members) < 2 {
		return false
	}
	for _, col := range reqCols {
		vals := make(map[string]bool)
		for _, row := range members {
			if v := ds.GetTrimmed(row, col); v != "" {
				vals[v] = true
			}
		}
		if len(vals) > 1 {
			return true
		}
	}
	return false
}

// setKey 값 집합의 비교용 정규화 키
func setKey(vals map[string]bool) string {
	keys := make([]string, 0, len(vals))
	for v := range vals {
		keys = append(keys, v)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x1f")
}
