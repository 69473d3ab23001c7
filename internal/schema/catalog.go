package schema

// KeywordRule 키워드 매칭 규칙
// A header matches when it contains every All token and no Exclude token.
type KeywordRule struct {
	All     []string
	Exclude []string
}

// FieldSpec 표준 필드 해석 규칙
//
// Resolution precedence is fixed: exact-name match, then each keyword rule in
// listed order, then the default value (when one exists). The canonical name
// itself is always an exact candidate, which makes normalization idempotent.
type FieldSpec struct {
	Name       string
	Exact      []string
	Keywords   []KeywordRule
	Default    string
	HasDefault bool
}

// Catalog 표준 필드 카탈로그
// Immutable; built once and passed into the normalizer and the detectors
// instead of living as package-level mutable state.
type Catalog struct {
	fields []FieldSpec
}

// Fields 필드 목록 (선언 순서 = 해석 우선순위)
func (c *Catalog) Fields() []FieldSpec {
	return c.fields
}

// Field 이름으로 필드 조회
func (c *Catalog) Field(name string) (FieldSpec, bool) {
	for _, f := range c.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// DefaultCatalog WATI 수입신고 엑셀의 기본 카탈로그
//
// Exact names are the headers the declaration system emits. Keyword rules
// cover renamed or regional variants; they only ever claim a column that no
// exact match already claimed. Only rate_type and tariff_rate carry hard
// defaults so the baseline detectors never crash; a declaration identifier is
// never invented.
func DefaultCatalog() *Catalog {
	return &Catalog{fields: []FieldSpec{
		{Name: FieldDeclarationNo, Exact: []string{"수입신고번호"},
			Keywords: []KeywordRule{{All: []string{"신고번호"}}}},
		{Name: FieldAcceptanceDate, Exact: []string{"수리일자"},
			Keywords: []KeywordRule{{All: []string{"수리일"}}}},
		{Name: FieldBLNo, Exact: []string{"B/L번호", "BL번호"}},
		{Name: FieldHSCode, Exact: []string{"세번부호"},
			Keywords: []KeywordRule{{All: []string{"세번"}}, {All: []string{"HS", "부호"}}}},
		{Name: FieldRateType, Exact: []string{"세율구분"},
			Keywords:   []KeywordRule{{All: []string{"세율", "구분"}}},
			Default:    "A",
			HasDefault: true},
		{Name: FieldRateDesc, Exact: []string{"세율설명"}},
		{Name: FieldTariffRate, Exact: []string{"관세실행세율"},
			Keywords:   []KeywordRule{{All: []string{"관세", "율"}, Exclude: []string{"구분", "감면"}}},
			Default:    "0",
			HasDefault: true},
		{Name: FieldExportCountry, Exact: []string{"적출국코드"}},
		{Name: FieldOriginCountry, Exact: []string{"원산지코드"}},
		{Name: FieldSpec1, Exact: []string{"규격1"}},
		{Name: FieldSpec2, Exact: []string{"규격2"}},
		{Name: FieldSpec3, Exact: []string{"규격3"}},
		{Name: FieldComp1, Exact: []string{"성분1"}},
		{Name: FieldComp2, Exact: []string{"성분2"}},
		{Name: FieldComp3, Exact: []string{"성분3"}},
		{Name: FieldActualDuty, Exact: []string{"실제관세액"}},
		{Name: FieldPaymentMethod, Exact: []string{"결제방법"}},
		{Name: FieldCurrency, Exact: []string{"결제통화단위"},
			Keywords: []KeywordRule{{All: []string{"통화"}, Exclude: []string{"운임"}}}},
		{Name: FieldTradePartner, Exact: []string{"무역거래처상호"},
			Keywords: []KeywordRule{{All: []string{"거래처", "상호"}}}},
		{Name: FieldPartnerCountry, Exact: []string{"무역거래처국가코드"},
			Keywords: []KeywordRule{
				{All: []string{"국가코드", "거래처"}},
				{All: []string{"해외공급자", "국가"}},
				{All: []string{"적출국"}},
			}},
		{Name: FieldGoodsName, Exact: []string{"거래품명"}},
		{Name: FieldLineNo, Exact: []string{"란번호"}},
		{Name: FieldRowNo, Exact: []string{"행번호"}},
		{Name: FieldQty, Exact: []string{"수량_1", "수량1"}},
		{Name: FieldQtyUnit, Exact: []string{"수량단위_1", "수량단위1"}},
		{Name: FieldUnitPrice, Exact: []string{"단가"}},
		{Name: FieldAmount, Exact: []string{"금액"}},
		{Name: FieldLinePaymentAmt, Exact: []string{"란결제금액"}},
		{Name: FieldTradeType, Exact: []string{"거래구분"}},
		{Name: FieldInternalTaxCode, Exact: []string{"내국세부호"},
			Keywords: []KeywordRule{{All: []string{"내국세"}}}},
		{Name: FieldTaxableKRW, Exact: []string{"과세가격원화"}},
		{Name: FieldTaxableUSD, Exact: []string{"과세가격달러"}},
		{Name: FieldLawCode, Exact: []string{"법령코드"}},
		{Name: FieldIssuedDoc, Exact: []string{"발급서류명"}},
		{Name: FieldNonTargetReason, Exact: []string{"비대상사유"}},
		{Name: FieldFreightCurrency, Exact: []string{"운임통화단위"}},
		{Name: FieldInputFreight, Exact: []string{"입력운임"}},
		{Name: FieldCalcFreightKRW, Exact: []string{"계산된운임원화"}},
		{Name: FieldFreight, Exact: []string{"운임"},
			Keywords: []KeywordRule{{All: []string{"운임"}, Exclude: []string{"통화", "입력", "계산"}}}},
		{Name: FieldIncoterms, Exact: []string{"인도조건"}},
		{Name: FieldExemptionCode, Exact: []string{"관세감면분납부호"}},
		{Name: FieldExemptionRate, Exact: []string{"관세감면율"}},
	}}
}
