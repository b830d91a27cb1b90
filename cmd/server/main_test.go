package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/characters"
	"github.com/rpattn/marvel/internal/domain"
	"github.com/rpattn/marvel/internal/middleware"
	"github.com/rpattn/marvel/internal/repository"
)

func newTestRouter() http.Handler {
	repo := repository.NewMemoryCharacterRepository(
		domain.Character{ID: "1", Name: "Thor"},
		domain.Character{ID: "2", Name: "Captain America"},
	)
	return newRouter(repo, []string{"http://localhost:3000"}, zap.NewNop())
}

func TestRouterServesCharactersPage(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/characters", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "There are 2 characters") {
		t.Fatalf("page missing count:\n%s", rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRouterRedirectsRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/characters" {
		t.Fatalf("expected redirect to /characters, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRouterAppliesCORSToAPI(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/characters", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func TestRouterHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestPrintList(t *testing.T) {
	vm := characters.Render([]domain.Character{
		{ID: "1", Name: "Thor"},
		{ID: "2", Name: "Captain America"},
	}, domain.CharacterSort{Field: domain.CharacterSortFieldName, Direction: domain.SortDirectionDesc})

	var buf bytes.Buffer
	if err := printList(&buf, vm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Marvel Characters (orderBy=name, order=desc)\nThere are 2 characters\n") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if strings.Index(out, "Thor") > strings.Index(out, "Captain America") {
		t.Fatalf("expected Thor before Captain America:\n%s", out)
	}
}
