package testutil

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/models"
)

// Listings returns a small fixed dataset spanning three countries. The last
// row has no country and the one before it has no price.
func Listings() []models.Listing {
	return []models.Listing{
		{ID: "1", Name: "Ribeira Charming Duplex", HostName: "Ana", PropertyType: "House", RoomType: "Entire home/apt", Country: "Portugal", Price: 80, Availability365: 239},
		{ID: "2", Name: "Porto Loft", HostName: "Ana", PropertyType: "Apartment", RoomType: "Private room", Country: "Portugal", Price: 45, Availability365: 120},
		{ID: "3", Name: "Horto flat", HostName: "Thiago", PropertyType: "Apartment", RoomType: "Entire home/apt", Country: "Brazil", Price: 317, Availability365: 0},
		{ID: "4", Name: "Copacabana Room", HostName: "Livia", PropertyType: "Apartment", RoomType: "Private room", Country: "Brazil", Price: 60, Availability365: 142},
		{ID: "5", Name: "Ocean View Waikiki", HostName: "Ilo", PropertyType: "Condominium", RoomType: "Entire home/apt", Country: "United States", Price: 115, Availability365: 96},
		{ID: "6", Name: "Bushwick Couch", HostName: "Josh", PropertyType: "Apartment", RoomType: "Shared room", Country: "United States", Price: 25, Availability365: 365},
		{ID: "7", Name: "Unpriced Studio", HostName: "Josh", PropertyType: "Apartment", RoomType: "Private room", Country: "United States", Price: math.NaN(), Availability365: 10},
		{ID: "8", Name: "Nowhere Cabin", HostName: "Zed", PropertyType: "Cabin", RoomType: "Entire home/apt", Country: "", Price: 99, Availability365: 5},
	}
}

type staticSource struct {
	rows []models.Listing
}

func (s staticSource) Name() string { return "fixture" }

func (s staticSource) ReadAll(context.Context) ([]models.Listing, error) {
	return s.rows, nil
}

// NewHolder returns a dataset holder loaded with rows.
func NewHolder(t *testing.T, rows []models.Listing) *dataset.Holder {
	t.Helper()

	holder := dataset.NewHolder(staticSource{rows: rows})
	if err := holder.Load(context.Background()); err != nil {
		t.Fatalf("load fixture dataset: %v", err)
	}
	return holder
}

// NewSnapshot returns a snapshot of rows loaded at a fixed time.
func NewSnapshot(rows []models.Listing) *dataset.Snapshot {
	return dataset.NewSnapshot("fixture", rows, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}
