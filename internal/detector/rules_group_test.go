package detector

import (
	"testing"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

func TestHSMismatch_FlagsEveryRowOfInconsistentSpec(t *testing.T) {
	t.Parallel()

	// 같은 규격에 세번이 둘이면 일치 행 포함 전부 플래그
	ds := model.NewDataset(
		[]string{schema.FieldDeclarationNo, schema.FieldSpec1, schema.FieldHSCode},
		[][]string{
			{"D1", "S1", "2203000000"},
			{"D2", "S1", "2203000000"},
			{"D3", "S1", "8471300000"},
			{"D4", "S2", "8471300000"}, // 일관 규격
			{"D5", "S2", "8471300000"},
		},
	)

	res := hsMismatchRule().Detect(ds, DefaultConfig())
	got := columnValues(t, res.Table, schema.FieldDeclarationNo)
	if len(got) != 3 {
		t.Fatalf("flagged %v, want all 3 rows of S1", got)
	}
	for _, decl := range got {
		if decl == "D4" || decl == "D5" {
			t.Fatalf("consistent spec flagged: %v", got)
		}
	}
}

func TestHSMismatch_BlankSpecIgnored(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset(
		[]string{schema.FieldDeclarationNo, schema.FieldSpec1, schema.FieldHSCode},
		[][]string{
			{"D1", "", "2203000000"},
			{"D2", "", "8471300000"},
			{"D3", "  ", "1234567890"},
		},
	)

	res := hsMismatchRule().Detect(ds, DefaultConfig())
	if res.Table.Len() != 0 {
		t.Fatalf("blank specs grouped: %d rows", res.Table.Len())
	}
}
