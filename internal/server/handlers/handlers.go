package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/analyzer"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/exporter"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/parser"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/store"
)

const maxUploadSize = 50 * 1024 * 1024

// Handlers HTTP 요청 처리기
type Handlers struct {
	pipeline *analyzer.Pipeline
	store    *store.MemoryStore
	sinks    map[string]exporter.Sink
	log      *zap.Logger
}

// NewHandlers 처리기 생성
func NewHandlers(pipeline *analyzer.Pipeline, st *store.MemoryStore, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	sinks := make(map[string]exporter.Sink)
	for _, sink := range []exporter.Sink{exporter.NewXLSXSink(), exporter.NewHTMLSink()} {
		sinks[sink.Name()] = sink
	}
	return &Handlers{
		pipeline: pipeline,
		store:    st,
		sinks:    sinks,
		log:      log,
	}
}

// Response 공통 응답
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func errorResponse(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{Code: code, Message: message})
}

// RegisterRoutes 라우트 등록
func (h *Handlers) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/upload", h.Upload)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:id/summary", h.GetSummary)
	r.GET("/sessions/:id/rules", h.ListRules)
	r.GET("/sessions/:id/rules/:ruleId", h.GetRuleResult)
	r.GET("/sessions/:id/report/:format", h.DownloadReport)
	r.DELETE("/sessions/:id", h.DeleteSession)
}

// Upload 신고 파일 업로드 및 분석 실행
func (h *Handlers) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, 1001, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		errorResponse(c, http.StatusBadRequest, 1003, "file too large (max 50MB)")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		errorResponse(c, http.StatusBadRequest, 1002, "only .xlsx and .csv are supported")
		return
	}

	ds, err := parser.Load(file, header.Filename)
	if err != nil {
		var loadErr *parser.LoadError
		if errors.As(err, &loadErr) {
			h.log.Error("file load failed", zap.String("file", header.Filename), zap.Error(err))
			errorResponse(c, http.StatusBadRequest, 1004, "failed to parse file: "+err.Error())
			return
		}
		errorResponse(c, http.StatusInternalServerError, 1005, err.Error())
		return
	}

	report, err := h.pipeline.Run(c.Request.Context(), ds, header.Filename)
	if err != nil {
		// 분석 취소 (클라이언트 연결 종료 등)
		errorResponse(c, http.StatusInternalServerError, 1006, "analysis aborted: "+err.Error())
		return
	}

	session := h.store.Put(header.Filename, report)

	success(c, gin.H{
		"sessionId": session.ID,
		"filename":  session.Filename,
		"rows":      report.Dataset.Len(),
		"summary":   report.Summary,
		"warnings":  report.Warnings,
	})
}

// ListSessions 세션 목록
func (h *Handlers) ListSessions(c *gin.Context) {
	success(c, gin.H{"sessions": h.store.List()})
}

// GetSummary 위험 요약 조회
func (h *Handlers) GetSummary(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	success(c, gin.H{
		"filename": session.Filename,
		"summary":  session.Report.Summary,
		"warnings": session.Report.Warnings,
	})
}

// ruleInfo 규칙 목록 항목
type ruleInfo struct {
	RuleID  string `json:"ruleId"`
	Title   string `json:"title"`
	Rows    int    `json:"rows"`
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`
}

// ListRules 규칙별 결과 개요
func (h *Handlers) ListRules(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	rules := make([]ruleInfo, 0, len(session.Report.Results))
	for _, res := range session.Report.Results {
		rules = append(rules, ruleInfo{
			RuleID:  res.RuleID,
			Title:   res.Title,
			Rows:    res.Table.Len(),
			Skipped: res.Skipped,
			Reason:  res.Reason,
		})
	}
	success(c, gin.H{"rules": rules})
}

// GetRuleResult 단일 규칙 결과 테이블
func (h *Handlers) GetRuleResult(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	res, found := session.Report.Result(c.Param("ruleId"))
	if !found {
		errorResponse(c, http.StatusNotFound, 2002, "unknown rule")
		return
	}

	table := res.Table
	if table == nil {
		table = &model.Table{}
	}

	total := table.Len()
	rows := table.Rows
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 && limit < total {
			rows = rows[:limit]
		}
	}

	success(c, gin.H{
		"ruleId":  res.RuleID,
		"title":   res.Title,
		"skipped": res.Skipped,
		"reason":  res.Reason,
		"columns": table.Columns,
		"rows":    rows,
		"total":   total,
	})
}

// DownloadReport 리포트 다운로드 (xlsx | html)
func (h *Handlers) DownloadReport(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	sink, found := h.sinks[c.Param("format")]
	if !found {
		errorResponse(c, http.StatusNotFound, 2003, "unknown report format")
		return
	}

	data, err := sink.Render(session.Report)
	if err != nil {
		h.log.Error("report render failed",
			zap.String("session", session.ID),
			zap.String("format", sink.Name()),
			zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, 2004, "failed to render report")
		return
	}

	filename := fmt.Sprintf("tradeguard_report.%s", sink.Name())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, sink.ContentType(), data)
}

// DeleteSession 세션 삭제
func (h *Handlers) DeleteSession(c *gin.Context) {
	h.store.Delete(c.Param("id"))
	success(c, gin.H{"deleted": true})
}

func (h *Handlers) session(c *gin.Context) (*store.Session, bool) {
	session, err := h.store.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, 2001, "session not found")
		return nil, false
	}
	return session, true
}
