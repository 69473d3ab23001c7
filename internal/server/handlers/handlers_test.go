package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/analyzer"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/detector"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/schema"
	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	pipeline := analyzer.New(schema.DefaultCatalog(), detector.DefaultConfig(), nil)
	h := NewHandlers(pipeline, st, nil)

	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, st
}

func uploadCSV(t *testing.T, r *gin.Engine, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const sampleCSV = "수입신고번호,수리일자,세율구분,관세실행세율,세번부호,단가\n" +
	"11111-11-111111A,20250102,A,8,2203000000,5\n" +
	"22222-22-222222B,20250215,A,0,8471300000,500\n"

func TestUpload_RunsAnalysisAndStoresSession(t *testing.T) {
	r, st := newTestRouter(t)

	w := uploadCSV(t, r, "declarations.csv", sampleCSV)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 0 {
		t.Fatalf("code = %d message=%s", resp.Code, resp.Message)
	}

	data := resp.Data.(map[string]interface{})
	sessionID, _ := data["sessionId"].(string)
	if sessionID == "" {
		t.Fatalf("no session id in response: %v", data)
	}
	if st.Count() != 1 {
		t.Fatalf("store count = %d", st.Count())
	}

	session, err := st.Get(sessionID)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if session.Report.Summary.TotalDeclarations != 2 {
		t.Fatalf("total declarations = %d", session.Report.Summary.TotalDeclarations)
	}
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	r, _ := newTestRouter(t)

	// 레거시 .xls 는 파싱 불가라서 확장자 단계에서 거절
	for _, name := range []string{"notes.txt", "legacy.xls"} {
		w := uploadCSV(t, r, name, "hello")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", name, w.Code)
		}
		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.Contains(resp.Message, ".xlsx") {
			t.Fatalf("message does not name supported formats: %q", resp.Message)
		}
	}
}

func TestUpload_RejectsBrokenWorkbook(t *testing.T) {
	r, _ := newTestRouter(t)

	w := uploadCSV(t, r, "broken.xlsx", "definitely not a zip")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestRuleEndpoints(t *testing.T) {
	r, st := newTestRouter(t)

	uploadCSV(t, r, "declarations.csv", sampleCSV)
	sessionID := st.List()[0].ID

	// 규칙 목록은 전체 카탈로그와 같은 수
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/rules", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("rules status = %d", w.Code)
	}
	var resp struct {
		Data struct {
			Rules []ruleInfo `json:"rules"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Rules) != 14 {
		t.Fatalf("rules = %d, want 14", len(resp.Data.Rules))
	}

	// 단일 규칙 결과
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/sessions/"+sessionID+"/rules/"+detector.RuleMissingDomesticTax, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("rule status = %d", w.Code)
	}

	// 없는 규칙은 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/rules/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown rule status = %d", w.Code)
	}
}

func TestDownloadReport(t *testing.T) {
	r, st := newTestRouter(t)

	uploadCSV(t, r, "declarations.csv", sampleCSV)
	sessionID := st.List()[0].ID

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/report/xlsx", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("xlsx status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("empty workbook body")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/report/html", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("html status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/report/docx", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown format status = %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	r, st := newTestRouter(t)

	uploadCSV(t, r, "declarations.csv", sampleCSV)
	sessionID := st.List()[0].ID

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+sessionID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/"+sessionID+"/summary", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted session status = %d", w.Code)
	}
}
