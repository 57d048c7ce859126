package request

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/models"
)

var testOptions = dataset.Options{PriceMin: 25, PriceMax: 317}

func TestParseSelectionDefaults(t *testing.T) {
	got, err := ParseSelection(url.Values{}, testOptions)
	if err != nil {
		t.Fatalf("ParseSelection() error = %v", err)
	}
	if got.Country != models.AllOption || got.PropertyType != models.AllOption {
		t.Fatalf("expected All defaults, got %+v", got)
	}
	if len(got.RoomTypes) != 0 {
		t.Fatalf("expected no room types, got %v", got.RoomTypes)
	}
	if got.PriceMin != 25 || got.PriceMax != 317 {
		t.Fatalf("expected dataset price range, got %v..%v", got.PriceMin, got.PriceMax)
	}
}

func TestParseSelectionValues(t *testing.T) {
	values, err := url.ParseQuery("country=Spain&property_type=Apartment&room_type=Private+room&room_type=Shared+room&room_type=Private+room&price_min=10&price_max=99.5")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}

	got, err := ParseSelection(values, testOptions)
	if err != nil {
		t.Fatalf("ParseSelection() error = %v", err)
	}
	if got.Country != "Spain" || got.PropertyType != "Apartment" {
		t.Fatalf("unexpected selects: %+v", got)
	}
	if len(got.RoomTypes) != 2 || got.RoomTypes[0] != "Private room" || got.RoomTypes[1] != "Shared room" {
		t.Fatalf("unexpected room types: %v", got.RoomTypes)
	}
	if got.PriceMin != 10 || got.PriceMax != 99.5 {
		t.Fatalf("unexpected price range: %v..%v", got.PriceMin, got.PriceMax)
	}
}

func TestParseSelectionRejectsBadPrice(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "word", query: "price_min=cheap"},
		{name: "nan", query: "price_max=NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			if _, err := ParseSelection(values, testOptions); err == nil {
				t.Fatalf("expected error for %q", tt.query)
			}
		})
	}
}

func TestSelectionFromRequestWritesBadRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/explore?price_min=abc", nil)
	recorder := httptest.NewRecorder()

	if _, ok := SelectionFromRequest(recorder, req, testOptions); ok {
		t.Fatal("expected parse failure")
	}
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestQueryRoundTripsSelection(t *testing.T) {
	selection := models.FilterSelection{
		Country:      "Brazil",
		PropertyType: models.AllOption,
		RoomTypes:    []string{"Entire home/apt"},
		PriceMin:     40,
		PriceMax:     120,
	}

	values := Query(selection)
	if values.Has(ParamPropertyType) {
		t.Fatalf("All should be omitted, got %v", values)
	}

	got, err := ParseSelection(values, testOptions)
	if err != nil {
		t.Fatalf("ParseSelection() error = %v", err)
	}
	if got.Country != "Brazil" || got.PropertyType != models.AllOption || got.PriceMin != 40 || got.PriceMax != 120 {
		t.Fatalf("unexpected selection %+v", got)
	}
	if len(got.RoomTypes) != 1 || got.RoomTypes[0] != "Entire home/apt" {
		t.Fatalf("unexpected room types %v", got.RoomTypes)
	}
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{"": 1, "0": 1, "-3": 1, "x": 1, "4": 4}
	for input, want := range tests {
		if got := ParsePage(input); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", input, got, want)
		}
	}
}
