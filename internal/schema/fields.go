package schema

// 표준 필드명
//
// The canonical column names every detector depends on. WATI exports label
// these in Korean with no guaranteed order or exact spelling; the normalizer
// maps whatever it finds onto this closed set. A field may stay absent when
// the input has nothing resembling it.
const (
	FieldDeclarationNo   = "declaration_no"   // 수입신고번호
	FieldAcceptanceDate  = "acceptance_date"  // 수리일자 (8자리 YYYYMMDD)
	FieldBLNo            = "bl_no"            // B/L번호
	FieldHSCode          = "hs_code"          // 세번부호
	FieldRateType        = "rate_type"        // 세율구분
	FieldRateDesc        = "rate_desc"        // 세율설명
	FieldTariffRate      = "tariff_rate"      // 관세실행세율
	FieldExportCountry   = "export_country"   // 적출국코드
	FieldOriginCountry   = "origin_country"   // 원산지코드
	FieldSpec1           = "spec1"            // 규격1
	FieldSpec2           = "spec2"            // 규격2
	FieldSpec3           = "spec3"            // 규격3
	FieldComp1           = "comp1"            // 성분1
	FieldComp2           = "comp2"            // 성분2
	FieldComp3           = "comp3"            // 성분3
	FieldActualDuty      = "actual_duty"      // 실제관세액
	FieldPaymentMethod   = "payment_method"   // 결제방법
	FieldCurrency        = "currency"         // 결제통화단위
	FieldTradePartner    = "trade_partner"    // 무역거래처상호
	FieldPartnerCountry  = "partner_country"  // 무역거래처국가코드
	FieldGoodsName       = "goods_name"       // 거래품명
	FieldLineNo          = "line_no"          // 란번호
	FieldRowNo           = "row_no"           // 행번호
	FieldQty             = "qty"              // 수량_1
	FieldQtyUnit         = "qty_unit"         // 수량단위_1
	FieldUnitPrice       = "unit_price"       // 단가
	FieldAmount          = "amount"           // 금액
	FieldLinePaymentAmt  = "line_payment_amt" // 란결제금액
	FieldTradeType       = "trade_type"       // 거래구분
	FieldInternalTaxCode = "internal_tax_code" // 내국세부호
	FieldTaxableKRW      = "taxable_krw"      // 과세가격원화
	FieldTaxableUSD      = "taxable_usd"      // 과세가격달러
	FieldLawCode         = "law_code"         // 법령코드
	FieldIssuedDoc       = "issued_doc"       // 발급서류명
	FieldNonTargetReason = "non_target_reason" // 비대상사유
	FieldFreight         = "freight"          // 운임
	FieldFreightCurrency = "freight_currency" // 운임통화단위
	FieldInputFreight    = "input_freight"    // 입력운임
	FieldCalcFreightKRW  = "calc_freight_krw" // 계산된운임원화
	FieldIncoterms       = "incoterms"        // 인도조건
	FieldExemptionCode   = "exemption_code"   // 관세감면분납부호
	FieldExemptionRate   = "exemption_rate"   // 관세감면율
)

// 파생 컬럼명 (결과 테이블에서만 사용, 데이터셋에는 추가되지 않음)
const (
	FieldRowDuty      = "row_duty"      // 행별관세
	FieldFTAReview    = "fta_review"    // FTA사후환급 검토
	FieldZScore       = "z_score"       // 단가 Z-Score
	FieldGroupMean    = "group_mean"    // 규격별 평균단가
	FieldGroupStd     = "group_std"     // 규격별 표준편차
	FieldUsageRatio   = "usage_ratio"   // 국가 내 통화 사용비율(%)
	FieldAnomalyScore = "anomaly_score" // 이상치점수
	FieldUsagePurpose = "usage_purpose" // 용도세율 용도
	FieldUsageSource  = "usage_source"  // 용도세율 출처
)

// NumericFields 숫자 변환 대상 필드
// The type-coercion layer runs over exactly these after normalization.
func NumericFields() []string {
	return []string{
		FieldTariffRate,
		FieldUnitPrice,
		FieldAmount,
		FieldLinePaymentAmt,
		FieldActualDuty,
		FieldTaxableKRW,
		FieldTaxableUSD,
		FieldFreight,
		FieldInputFreight,
		FieldQty,
		FieldExemptionRate,
	}
}
