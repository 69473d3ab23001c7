package parser

import (
	"testing"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
)

func TestCoerceNumeric(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset(
		[]string{schema.FieldAmount, schema.FieldUnitPrice, schema.FieldGoodsName},
		[][]string{
			{"1,234,567", "10.5", "goods"},
			{"", "n/a", "goods"},
		},
	)

	CoerceNumeric(ds)

	if !ds.IsCoerced(schema.FieldAmount) || !ds.IsCoerced(schema.FieldUnitPrice) {
		t.Fatalf("numeric columns not coerced")
	}
	if ds.IsCoerced(schema.FieldGoodsName) {
		t.Fatalf("text column coerced")
	}
	if got := ds.Number(0, schema.FieldAmount); got != 1234567 {
		t.Fatalf("amount = %v, want 1234567", got)
	}
	// 공백/해석 불가 값은 0, 결측 마커 아님
	if got := ds.Number(1, schema.FieldAmount); got != 0 {
		t.Fatalf("blank amount = %v, want 0", got)
	}
	if got := ds.Number(1, schema.FieldUnitPrice); got != 0 {
		t.Fatalf("unparsable price = %v, want 0", got)
	}
}

func TestCoerceNumeric_Idempotent(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset(
		[]string{schema.FieldAmount},
		[][]string{{"1,000"}, {"abc"}, {""}},
	)

	CoerceNumeric(ds)
	first := []float64{ds.Number(0, schema.FieldAmount), ds.Number(1, schema.FieldAmount), ds.Number(2, schema.FieldAmount)}
	CoerceNumeric(ds)
	for i, want := range first {
		if got := ds.Number(i, schema.FieldAmount); got != want {
			t.Fatalf("row %d drifted after re-coercion: %v vs %v", i, got, want)
		}
	}
}
