package nav

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleMenu(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nav/menu?active=explore", nil)
	recorder := httptest.NewRecorder()

	HandleMenu(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}

	body := recorder.Body.String()
	for _, label := range []string{"Home", "Overview", "Explore", "Dashboard"} {
		if !strings.Contains(body, ">"+label+"</a>") {
			t.Fatalf("expected menu to include %s, got: %s", label, body)
		}
	}
	if !strings.Contains(body, `href="/explore" hx-get="/explore"`) {
		t.Fatalf("expected explore link, got: %s", body)
	}
	if strings.Count(body, `aria-current="page"`) != 1 {
		t.Fatalf("expected exactly one active item, got: %s", body)
	}
	active := strings.Index(body, `aria-current="page"`)
	explore := strings.Index(body, `>Explore</a>`)
	overview := strings.Index(body, `>Overview</a>`)
	if !(overview < active && active < explore) {
		t.Fatalf("expected Explore to be the active item, got: %s", body)
	}
}

func TestHandleMenuRejectsUnknownPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nav/menu?active=settings", nil)
	recorder := httptest.NewRecorder()

	HandleMenu(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}
