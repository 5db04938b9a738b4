package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/adapter/logging"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/static/errs"
)

type fakeJudgingService struct {
	report *domain.JudgingReport
	err    error

	gotLanguage domain.Language
	gotPublic   []domain.TestCase
	gotHidden   []domain.TestCase
}

func (f *fakeJudgingService) RunTestCases(ctx context.Context, language domain.Language, code string, publicTests, hiddenTests []domain.TestCase) (*domain.JudgingReport, error) {
	f.gotLanguage = language
	f.gotPublic = publicTests
	f.gotHidden = hiddenTests
	return f.report, f.err
}

func newTestRouter(svc *fakeJudgingService) *mux.Router {
	r := mux.NewRouter()
	NewHandler(svc, logging.NewDevelopmentLogger()).RegisterRoutes(r)
	return r
}

func TestRunReturnsReport(t *testing.T) {
	svc := &fakeJudgingService{
		report: &domain.JudgingReport{
			Passed:      2,
			Total:       2,
			PublicTotal: 2,
			AllPassed:   true,
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(RunRequest{
		Language: "python",
		Code:     "print('hi')",
		TestCases: []domain.TestCase{
			{Input: "a", ExpectedOutput: "hi"},
			{Input: "b", ExpectedOutput: "hi"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/judge", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var report domain.JudgingReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !report.AllPassed || report.Total != 2 {
		t.Errorf("report = %+v, want allPassed with total 2", report)
	}
	if svc.gotLanguage != domain.LanguagePython {
		t.Errorf("language = %q, want python", svc.gotLanguage)
	}
}

func TestRunUnsupportedLanguageIsBadRequest(t *testing.T) {
	svc := &fakeJudgingService{err: errs.UnsupportedLanguage}
	router := newTestRouter(svc)

	body, _ := json.Marshal(RunRequest{Language: "cobol", Code: "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/judge", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errBody["error"] == "" {
		t.Error("expected an error message in the response body")
	}
}

func TestRunMissingCodeIsBadRequest(t *testing.T) {
	svc := &fakeJudgingService{}
	router := newTestRouter(svc)

	body, _ := json.Marshal(RunRequest{Language: "python"})
	req := httptest.NewRequest(http.MethodPost, "/api/judge", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPreflightAllowsCORS(t *testing.T) {
	router := newTestRouter(&fakeJudgingService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/judge", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected Access-Control-Allow-Methods to be set")
	}
}

func TestRunDefaultInputFillsEmptyCases(t *testing.T) {
	svc := &fakeJudgingService{report: &domain.JudgingReport{AllPassed: true}}
	router := newTestRouter(svc)

	body, _ := json.Marshal(RunRequest{
		Language: "c",
		Code:     "int main(){}",
		Input:    "shared stdin",
		TestCases: []domain.TestCase{
			{ExpectedOutput: "x"},
			{Input: "own", ExpectedOutput: "y"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/judge", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.gotPublic[0].Input != "shared stdin" {
		t.Errorf("first case input = %q, want the request-level input", svc.gotPublic[0].Input)
	}
	if svc.gotPublic[1].Input != "own" {
		t.Errorf("second case input = %q, want its own input kept", svc.gotPublic[1].Input)
	}
}

func TestLanguages(t *testing.T) {
	router := newTestRouter(&fakeJudgingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/judge/languages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp LanguagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Languages) != 5 {
		t.Errorf("languages = %v, want 5 entries", resp.Languages)
	}
}
