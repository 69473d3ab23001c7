package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	csvData := "수입신고번호,금액\n11111-11-111111A,\"1,000\"\n22222-22-222222B,250\n"
	ds, err := LoadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d, want 2", ds.Len())
	}
	if ds.Get(0, "금액") != "1,000" {
		t.Fatalf("quoted cell = %q", ds.Get(0, "금액"))
	}
}

func TestLoadCSV_StripsBOM(t *testing.T) {
	t.Parallel()

	csvData := "\uFEFF수입신고번호,금액\n1,2\n"
	ds, err := LoadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if !ds.Has("수입신고번호") {
		t.Fatalf("BOM not stripped from first header: %v", ds.Columns)
	}
}

func TestLoadCSV_RaggedRows(t *testing.T) {
	t.Parallel()

	csvData := "a,b,c\n1\n1,2,3\n"
	ds, err := LoadCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if ds.Get(0, "c") != "" || ds.Get(1, "c") != "3" {
		t.Fatalf("ragged rows mishandled: %v", ds.Rows)
	}
}

func TestLoadXLSX_RoundTrip(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"수입신고번호", "단가"})
	_ = f.SetSheetRow(sheet, "A2", &[]interface{}{"11111-11-111111A", 12.5})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	ds, err := LoadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("rows = %d, want 1", ds.Len())
	}
	if ds.Get(0, "수입신고번호") != "11111-11-111111A" {
		t.Fatalf("cell = %q", ds.Get(0, "수입신고번호"))
	}
}

func TestLoad_WrapsErrorsAsLoadError(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("not a workbook"), "broken.xlsx")
	if err == nil {
		t.Fatalf("want error for invalid workbook")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error not a LoadError: %v", err)
	}
	if loadErr.Filename != "broken.xlsx" {
		t.Fatalf("filename = %q", loadErr.Filename)
	}
}

func TestFormatDateCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"20250102", "20250102"},
		{"20250102.0", "20250102"},
		{"0", ""},
		{"", ""},
		{"  20250102  ", "20250102"},
	}
	for _, c := range cases {
		if got := FormatDateCell(c.in); got != c.want {
			t.Fatalf("FormatDateCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
