package detector

// RequirementScope 수입요건 비교 단위
const (
	// RequirementScopeDeclaration compares the regulatory-code set per
	// declaration inside each specification code.
	RequirementScopeDeclaration = "declaration"
	// RequirementScopeSpec compares values across the whole specification
	// code regardless of declaration.
	RequirementScopeSpec = "spec"
)

// Config 탐지기 설정
//
// Threshold and policy knobs for the rule catalog. Two observed variants of
// the high-rate and F-rate rules exist in the field; the defaults pick the
// stricter high-rate variant and the exact F match, with switches to restore
// the other behavior.
type Config struct {
	// LowPriceThreshold 저가신고 의심 단가 상한
	LowPriceThreshold float64
	// ZScoreThreshold 단가 이상치 Z-Score 기준 (초과 시 플래그, 경계값 제외)
	ZScoreThreshold float64
	// CurrencyRatioThreshold 국가 내 통화 사용비율 하한
	CurrencyRatioThreshold float64
	// HighRateMinRate 8% 환급 검토 최소 세율 (0이면 세율 조건 없음)
	HighRateMinRate float64
	// LowRateMaxRate 0% Risk 세율 상한
	LowRateMaxRate float64
	// FRatePrefix true면 세율구분이 F로 시작하는 모든 건, false면 정확히 "F"
	FRatePrefix bool
	// RequirementScope 수입요건 비교 단위 (declaration | spec)
	RequirementScope string
	// OrdinaryTradeTypes 일반 수입으로 보는 거래구분 코드
	OrdinaryTradeTypes []string
	// UsageRates 용도세율 HSK 참조 목록 (nil이면 해당 규칙은 건너뜀)
	UsageRates *UsageRateList
}

// DefaultConfig 기본 설정
func DefaultConfig() Config {
	return Config{
		LowPriceThreshold:      10,
		ZScoreThreshold:        1.96,
		CurrencyRatioThreshold: 0.10,
		HighRateMinRate:        8,
		LowRateMaxRate:         8,
		FRatePrefix:            false,
		RequirementScope:       RequirementScopeDeclaration,
		OrdinaryTradeTypes:     []string{"11", "21", "15", "25"},
	}
}

// IsOrdinaryTradeType 일반 수입 거래구분 여부
func (c Config) IsOrdinaryTradeType(code string) bool {
	for _, t := range c.OrdinaryTradeTypes {
		if code == t {
			return true
		}
	}
	return false
}
