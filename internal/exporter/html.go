package exporter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

// HTMLSink 단일 페이지 HTML 리포트 싱크
type HTMLSink struct {
	// MaxRows 규칙당 표시할 최대 샘플 행 수
	MaxRows int
	tmpl    *template.Template
}

// NewHTMLSink HTML 싱크 생성
func NewHTMLSink() *HTMLSink {
	return &HTMLSink{
		MaxRows: 20,
		tmpl:    template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Name 싱크 이름
func (s *HTMLSink) Name() string { return "html" }

// ContentType 응답 타입
func (s *HTMLSink) ContentType() string { return "text/html; charset=utf-8" }

type htmlRuleView struct {
	Title   string
	Skipped bool
	Reason  string
	Columns []string
	Rows    [][]string
	Total   int
	Shown   int
}

type htmlReportView struct {
	Filename string
	Summary  *model.RiskSummary
	Rules    []htmlRuleView
	Warnings []string
}

// Render 리포트를 HTML 페이지로 렌더링
func (s *HTMLSink) Render(rep *model.Report) ([]byte, error) {
	view := htmlReportView{
		Filename: rep.Filename,
		Summary:  rep.Summary,
		Warnings: rep.Warnings,
	}

	for _, res := range rep.Results {
		rv := htmlRuleView{
			Title:   res.Title,
			Skipped: res.Skipped,
			Reason:  res.Reason,
			Total:   res.Table.Len(),
		}
		if !res.Skipped && res.Table.Len() > 0 {
			rv.Columns = res.Table.Columns
			limit := res.Table.Len()
			if s.MaxRows > 0 && limit > s.MaxRows {
				limit = s.MaxRows
			}
			rv.Rows = res.Table.Rows[:limit]
			rv.Shown = limit
		}
		view.Rules = append(view.Rules, rv)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>TradeGuard Report - {{.Filename}}</title>
<style>
body { font-family: 'Malgun Gothic', Arial, sans-serif; margin: 2rem; color: #222; }
h1 { color: #4472C4; border-bottom: 3px solid #4472C4; padding-bottom: .3rem; }
h2 { color: #2F5496; margin-top: 2rem; }
table { border-collapse: collapse; margin-top: .5rem; font-size: .85rem; }
th { background: #D9E1F2; border: 1px solid #bbb; padding: .3rem .5rem; }
td { border: 1px solid #ccc; padding: .25rem .5rem; }
.none { color: #808080; font-style: italic; }
.warn { color: #9C5700; }
.meta { color: #555; font-size: .9rem; }
</style>
</head>
<body>
<h1>Import Declaration Risk Report</h1>
<p class="meta">File: {{.Filename}} &middot; Total declarations: {{.Summary.TotalDeclarations}}</p>

<h2>Summary</h2>
<table>
<tr><th>Rule</th><th>Declarations</th><th>Percent</th></tr>
{{range .Summary.Rules}}<tr><td>{{.Title}}</td><td>{{.Declarations}}</td><td>{{printf "%.1f" .Percent}}%</td></tr>
{{end}}</table>

{{if .Summary.MonthlyTrend}}
<h2>Monthly Trend</h2>
<table>
<tr><th>Month</th><th>Declarations</th></tr>
{{range .Summary.MonthlyTrend}}<tr><td>{{.Month}}</td><td>{{.Declarations}}</td></tr>
{{end}}</table>
{{end}}

{{range .Rules}}
<h2>{{.Title}}</h2>
{{if .Skipped}}<p class="none">Rule skipped: {{.Reason}}</p>
{{else if not .Rows}}<p class="none">No findings</p>
{{else}}
<p class="meta">{{.Shown}} of {{.Total}} rows shown</p>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
{{end}}

{{if .Warnings}}
<h2>Warnings</h2>
{{range .Warnings}}<p class="warn">{{.}}</p>
{{end}}{{end}}
</body>
</html>
`
