package schema

import (
	"strings"
	"testing"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

func TestCleanColumnName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"  수입신고번호  ", "수입신고번호"},
		{"수입\n신고번호", "수입신고번호"},
		{"세번\t부호\r", "세번부호"},
		{"무역거래처   상호", "무역거래처 상호"},
	}
	for _, c := range cases {
		if got := CleanColumnName(c.in); got != c.want {
			t.Fatalf("CleanColumnName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_ExactMatchRenames(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset(
		[]string{"수입신고번호", "수리일자", "세번부호", "세율구분", "관세실행세율"},
		[][]string{{"12345-67-890123X", "20250102", "2203000000", "A", "8"}},
	)

	out, warnings := NewNormalizer(DefaultCatalog()).Normalize(ds)

	for _, col := range []string{FieldDeclarationNo, FieldAcceptanceDate, FieldHSCode, FieldRateType, FieldTariffRate} {
		if !out.Has(col) {
			t.Fatalf("canonical column %q missing", col)
		}
	}
	if out.Get(0, FieldDeclarationNo) != "12345-67-890123X" {
		t.Fatalf("value lost on rename: %q", out.Get(0, FieldDeclarationNo))
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestNormalize_KeywordFallback(t *testing.T) {
	t.Parallel()

	// 정확 일치 실패, 키워드로만 해석 가능한 변형 헤더
	ds := model.NewDataset(
		[]string{"신고번호(15자리)", "해외공급자 국가", "관세 세율"},
		[][]string{{"11111-11-111111A", "CN", "8"}},
	)

	out, _ := NewNormalizer(DefaultCatalog()).Normalize(ds)

	if !out.Has(FieldDeclarationNo) {
		t.Fatalf("keyword rule did not claim 신고번호 header")
	}
	if !out.Has(FieldPartnerCountry) {
		t.Fatalf("keyword rule did not claim 해외공급자 국가 header")
	}
	if !out.Has(FieldTariffRate) {
		t.Fatalf("keyword rule did not claim 관세 세율 header")
	}
}

func TestNormalize_ExactBeatsKeyword(t *testing.T) {
	t.Parallel()

	// 정확 일치 헤더와 키워드만 맞는 헤더가 공존하면 정확 일치가 우선
	ds := model.NewDataset(
		[]string{"수입신고번호", "구신고번호"},
		[][]string{{"exact", "keyword"}},
	)

	out, _ := NewNormalizer(DefaultCatalog()).Normalize(ds)

	if out.Get(0, FieldDeclarationNo) != "exact" {
		t.Fatalf("keyword column won over exact: %q", out.Get(0, FieldDeclarationNo))
	}
}

func TestNormalize_TariffKeywordExclusions(t *testing.T) {
	t.Parallel()

	// "관세"+"율" 포함이라도 구분/감면 들어가면 관세실행세율이 아님
	ds := model.NewDataset(
		[]string{"관세감면율", "관세 세율"},
		[][]string{{"50", "8"}},
	)

	out, _ := NewNormalizer(DefaultCatalog()).Normalize(ds)

	if out.Get(0, FieldTariffRate) != "8" {
		t.Fatalf("tariff_rate resolved to %q, want 8", out.Get(0, FieldTariffRate))
	}
	if out.Get(0, FieldExemptionRate) != "50" {
		t.Fatalf("exemption_rate resolved to %q, want 50", out.Get(0, FieldExemptionRate))
	}
}

func TestNormalize_DefaultsForMissingRateColumns(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset([]string{"수입신고번호"}, [][]string{{"1"}, {"2"}})

	out, warnings := NewNormalizer(DefaultCatalog()).Normalize(ds)

	if out.Get(1, FieldRateType) != "A" {
		t.Fatalf("rate_type default = %q, want A", out.Get(1, FieldRateType))
	}
	if out.Get(0, FieldTariffRate) != "0" {
		t.Fatalf("tariff_rate default = %q, want 0", out.Get(0, FieldTariffRate))
	}
	if len(warnings) != 2 {
		t.Fatalf("want 2 default warnings, got %v", warnings)
	}

	// 신고번호는 절대 발명하지 않음
	noDecl := model.NewDataset([]string{"거래품명"}, [][]string{{"goods"}})
	out2, _ := NewNormalizer(DefaultCatalog()).Normalize(noDecl)
	if out2.Has(FieldDeclarationNo) {
		t.Fatalf("declaration_no must not be defaulted")
	}
}

func TestNormalize_DuplicateHeadersSuffixed(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset(
		[]string{"금액", "금액", "금액"},
		[][]string{{"1", "2", "3"}},
	)

	out, _ := NewNormalizer(DefaultCatalog()).Normalize(ds)

	// 첫 번째가 이름을 지키고 나머지는 접미사
	if out.Get(0, FieldAmount) != "1" {
		t.Fatalf("first duplicate lost its claim: %q", out.Get(0, FieldAmount))
	}
	var suffixed int
	for _, col := range out.Columns {
		if strings.HasPrefix(col, "금액_") {
			suffixed++
		}
	}
	if suffixed != 2 {
		t.Fatalf("want 2 suffixed duplicates, columns %v", out.Columns)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	ds := model.NewDataset(
		[]string{"수입신고번호", "세번부호", "결제통화단위"},
		[][]string{{"1", "2203000000", "USD"}},
	)

	n := NewNormalizer(DefaultCatalog())
	once, _ := n.Normalize(ds)
	twice, _ := n.Normalize(once)

	if len(once.Columns) != len(twice.Columns) {
		t.Fatalf("column count drifted: %v vs %v", once.Columns, twice.Columns)
	}
	for i := range once.Columns {
		if once.Columns[i] != twice.Columns[i] {
			t.Fatalf("column %d drifted: %q vs %q", i, once.Columns[i], twice.Columns[i])
		}
	}
}
