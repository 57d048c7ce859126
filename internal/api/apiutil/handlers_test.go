package apiutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestWriteJSONError(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteJSONError(context.Background(), recorder, http.StatusUnprocessableEntity, "unknown column")

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := strings.TrimSpace(recorder.Body.String()); got != `{"error":"unknown column"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestRenderHTMLComponent(t *testing.T) {
	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hello</p>")
		return err
	})
	recorder := httptest.NewRecorder()

	if !RenderHTMLComponent(context.Background(), recorder, ok, map[string]string{"HX-Trigger": "refresh"}, "log", "err") {
		t.Fatal("expected render to succeed")
	}
	if recorder.Body.String() != "<p>hello</p>" {
		t.Fatalf("body = %q", recorder.Body.String())
	}
	if recorder.Header().Get("HX-Trigger") != "refresh" {
		t.Fatal("expected custom header to be set")
	}
}

func TestRenderHTMLComponentFailure(t *testing.T) {
	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<p>partial")
		return errors.New("render failed")
	})
	recorder := httptest.NewRecorder()

	if RenderHTMLComponent(context.Background(), recorder, failing, nil, "log", "Failed to render page") {
		t.Fatal("expected render to fail")
	}
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "partial") {
		t.Fatal("partial output must not be written")
	}
}
