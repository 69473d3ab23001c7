package exporter

import "github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"

// Sink 리포트 출력 싱크
//
// Renders the finished analysis report: the normalized dataset, the per-rule
// result tables and the risk summary. Sinks run strictly after the
// aggregator and are the only stage allowed to touch external outputs. A
// rule with no findings (or a skipped rule) is a first-class state every
// sink must render, never an omitted section. The word-processor renderer
// lives outside this module and plugs in through this interface.
type Sink interface {
	// Name 싱크 이름 (다운로드 파일 확장자 결정에 사용)
	Name() string
	// ContentType HTTP 응답 Content-Type
	ContentType() string
	// Render 리포트를 바이트로 렌더링
	Render(rep *model.Report) ([]byte, error)
}
