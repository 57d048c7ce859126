package overview

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/models"
	"github.com/codr1/airbnbviz/internal/templates/layouts"
	"github.com/codr1/airbnbviz/internal/testutil"
)

type stubPreviewer struct {
	document string
	err      error
}

func (p stubPreviewer) PreviewRecord(context.Context) (string, error) {
	return p.document, p.err
}

func setup(t *testing.T, rows []models.Listing, previewer dataset.RecordPreviewer) {
	t.Helper()
	InitHandlers(testutil.NewHolder(t, rows), previewer, layouts.Site{AppName: "Airbnb Analysis"})
}

func serve(handler http.HandlerFunc, target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestHandleOverviewPageRawTab(t *testing.T) {
	setup(t, testutil.Listings(), stubPreviewer{document: `{"_id": "10006546", "name": "Ribeira <Duplex>"}`})

	recorder := serve(HandleOverviewPage, "/overview", false)
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "Select Data to View", `id="overview-data"`, "Ribeira &lt;Duplex&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestHandleOverviewPageInsightsPartial(t *testing.T) {
	setup(t, testutil.Listings(), nil)

	recorder := serve(HandleOverviewPage, "/overview?tab=insights&country=Portugal", true)
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	body := recorder.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("htmx request should receive the content partial only")
	}
	for _, want := range []string{`hx-get="/api/v1/overview/insights"`, `id="chart-top-property-types"`, `id="chart-listings-by-country"`, `<option value="Portugal" selected>`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestHandleOverviewPageRejectsBadInput(t *testing.T) {
	setup(t, testutil.Listings(), nil)

	if got := serve(HandleOverviewPage, "/overview?tab=settings", false).Code; got != http.StatusBadRequest {
		t.Fatalf("unknown tab status = %d", got)
	}
	if got := serve(HandleOverviewPage, "/overview?tab=insights&price_min=low", false).Code; got != http.StatusBadRequest {
		t.Fatalf("bad price status = %d", got)
	}
}

func TestHandleOverviewDataRawPreviewStates(t *testing.T) {
	tests := []struct {
		name      string
		previewer dataset.RecordPreviewer
		want      string
	}{
		{name: "disabled", previewer: dataset.DisabledPreviewer{}, want: "Raw document preview is not configured."},
		{name: "empty", previewer: stubPreviewer{err: dataset.ErrNoRecords}, want: "No records found in the collection."},
		{name: "failure", previewer: stubPreviewer{err: fmt.Errorf("connection reset")}, want: "Failed to load raw record."},
		{name: "document", previewer: stubPreviewer{document: `{"name": "Porto Loft"}`}, want: "Porto Loft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, testutil.Listings(), tt.previewer)

			recorder := serve(HandleOverviewData, "/api/v1/overview/data?view=raw", true)
			if recorder.Code != http.StatusOK {
				t.Fatalf("unexpected status: %d", recorder.Code)
			}
			if !strings.Contains(recorder.Body.String(), tt.want) {
				t.Fatalf("expected %q, got %s", tt.want, recorder.Body.String())
			}
		})
	}
}

func TestHandleOverviewDataDataframePaging(t *testing.T) {
	rows := make([]models.Listing, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, models.Listing{
			ID:           fmt.Sprintf("id-%03d", i),
			Name:         fmt.Sprintf("Listing %03d", i),
			HostName:     "Host",
			PropertyType: "Apartment",
			RoomType:     "Private room",
			Country:      "Spain",
			Price:        float64(10 + i),
		})
	}
	setup(t, rows, nil)

	body := serve(HandleOverviewData, "/api/v1/overview/data?view=dataframe&page=2", true).Body.String()
	for _, want := range []string{"Listing 050", "Listing 099", "Page 2 of 3", "120 rows × 8 columns", "page=1", "page=3"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page 2", want)
		}
	}
	if strings.Contains(body, "Listing 049") || strings.Contains(body, "Listing 100") {
		t.Error("page 2 should hold rows 50 through 99 only")
	}

	last := serve(HandleOverviewData, "/api/v1/overview/data?view=dataframe&page=99", true).Body.String()
	if !strings.Contains(last, "Page 3 of 3") || !strings.Contains(last, "Listing 119") {
		t.Fatalf("page past the end should clamp to the last page, got %s", last)
	}
}

func TestHandleOverviewDataframeIncludesRowsWithoutCountry(t *testing.T) {
	setup(t, testutil.Listings(), nil)

	body := serve(HandleOverviewData, "/api/v1/overview/data?view=dataframe", true).Body.String()
	if !strings.Contains(body, "Nowhere Cabin") {
		t.Fatalf("dataframe view should show every loaded row, got %s", body)
	}
}

func TestHandleOverviewInsights(t *testing.T) {
	setup(t, testutil.Listings(), nil)

	body := serve(HandleOverviewInsights, "/api/v1/overview/insights?country=Portugal&property_type=Condominium", true).Body.String()
	if strings.Count(body, "No data to display") != 4 {
		t.Fatalf("expected four empty chart placeholders, got %s", body)
	}

	if got := serve(HandleOverviewData, "/api/v1/overview/data?view=table", true).Code; got != http.StatusBadRequest {
		t.Fatalf("unknown view status = %d", got)
	}
}
