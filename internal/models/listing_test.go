package models

import (
	"math"
	"testing"
)

func TestListingText(t *testing.T) {
	listing := Listing{
		ID:              "10006546",
		Name:            "Ribeira Charming Duplex",
		HostName:        "Ana&Gonçalo",
		PropertyType:    "House",
		RoomType:        "Entire home/apt",
		Country:         "Portugal",
		Price:           80.5,
		Availability365: 239,
	}

	tests := []struct {
		column string
		want   string
		ok     bool
	}{
		{column: ColumnName, want: "Ribeira Charming Duplex", ok: true},
		{column: ColumnHostName, want: "Ana&Gonçalo", ok: true},
		{column: ColumnCountry, want: "Portugal", ok: true},
		{column: ColumnPrice, want: "80.5", ok: true},
		{column: ColumnAvailability365, want: "239", ok: true},
		{column: "Bed_type", want: "", ok: false},
	}

	for _, test := range tests {
		t.Run(test.column, func(t *testing.T) {
			got, ok := listing.Text(test.column)
			if got != test.want || ok != test.ok {
				t.Fatalf("Text(%q) = (%q, %t), want (%q, %t)", test.column, got, ok, test.want, test.ok)
			}
		})
	}
}

func TestListingNumberMissingValues(t *testing.T) {
	listing := Listing{Price: math.NaN()}

	if _, ok := listing.Number(ColumnPrice); ok {
		t.Fatalf("expected NaN price to be reported as missing")
	}
	if _, ok := listing.Number(ColumnCountry); ok {
		t.Fatalf("expected string column to be rejected as numeric")
	}
	if _, ok := listing.Text(ColumnCountry); ok {
		t.Fatalf("expected empty country to be reported as missing")
	}
	if listing.HasCountry() {
		t.Fatalf("expected HasCountry to be false for empty country")
	}
}

func TestColumnKinds(t *testing.T) {
	if !IsColumn(ColumnRoomType) || IsNumericColumn(ColumnRoomType) {
		t.Fatalf("Room_type should be a known string column")
	}
	if !IsNumericColumn(ColumnAvailability365) {
		t.Fatalf("Availability_365 should be numeric")
	}
	if IsColumn("price") {
		t.Fatalf("column names are case sensitive")
	}
}

func TestFilterSelectionHasRoomType(t *testing.T) {
	selection := DefaultSelection(9, 48842)
	selection.RoomTypes = []string{"Private room"}

	if !selection.HasRoomType("Private room") {
		t.Fatalf("expected Private room to be selected")
	}
	if selection.HasRoomType("Shared room") {
		t.Fatalf("did not expect Shared room to be selected")
	}
	if selection.Country != AllOption || selection.PropertyType != AllOption {
		t.Fatalf("default selection should not restrict country or property type")
	}
}
