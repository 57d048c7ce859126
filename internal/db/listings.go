// internal/db/listings.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"github.com/codr1/airbnbviz/internal/models"
)

const listListingsQuery = `SELECT id, name, host_name, property_type, room_type, country, price, availability_365
FROM listings
ORDER BY id`

const insertListingQuery = `INSERT INTO listings (id, name, host_name, property_type, room_type, country, price, availability_365)
VALUES (:id, :name, :host_name, :property_type, :room_type, :country, :price, :availability_365)`

type listingRow struct {
	ID              string          `db:"id"`
	Name            string          `db:"name"`
	HostName        string          `db:"host_name"`
	PropertyType    string          `db:"property_type"`
	RoomType        string          `db:"room_type"`
	Country         sql.NullString  `db:"country"`
	Price           sql.NullFloat64 `db:"price"`
	Availability365 int             `db:"availability_365"`
}

func (r listingRow) toModel() models.Listing {
	listing := models.Listing{
		ID:              r.ID,
		Name:            r.Name,
		HostName:        r.HostName,
		PropertyType:    r.PropertyType,
		RoomType:        r.RoomType,
		Price:           math.NaN(),
		Availability365: r.Availability365,
	}
	if r.Country.Valid {
		listing.Country = r.Country.String
	}
	if r.Price.Valid {
		listing.Price = r.Price.Float64
	}
	return listing
}

func rowFromModel(listing models.Listing) listingRow {
	return listingRow{
		ID:              listing.ID,
		Name:            listing.Name,
		HostName:        listing.HostName,
		PropertyType:    listing.PropertyType,
		RoomType:        listing.RoomType,
		Country:         sql.NullString{String: listing.Country, Valid: listing.Country != ""},
		Price:           sql.NullFloat64{Float64: listing.Price, Valid: !math.IsNaN(listing.Price)},
		Availability365: listing.Availability365,
	}
}

// ListListings returns every stored listing ordered by id.
func (db *DB) ListListings(ctx context.Context) ([]models.Listing, error) {
	var rows []listingRow
	if err := db.SelectContext(ctx, &rows, listListingsQuery); err != nil {
		return nil, fmt.Errorf("error listing listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toModel())
	}
	return listings, nil
}

// CountListings returns the number of stored listings.
func (db *DB) CountListings(ctx context.Context) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM listings"); err != nil {
		return 0, fmt.Errorf("error counting listings: %w", err)
	}
	return count, nil
}

// ReplaceListings swaps the table contents for listings in one transaction.
func (db *DB) ReplaceListings(ctx context.Context, listings []models.Listing) error {
	return db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
			return fmt.Errorf("error clearing listings: %w", err)
		}

		stmt, err := tx.PrepareNamedContext(ctx, insertListingQuery)
		if err != nil {
			return fmt.Errorf("error preparing listing insert: %w", err)
		}
		defer stmt.Close()

		for _, listing := range listings {
			if _, err := stmt.ExecContext(ctx, rowFromModel(listing)); err != nil {
				return fmt.Errorf("error inserting listing %s: %w", listing.ID, err)
			}
		}
		return nil
	})
}

// ListingSource adapts DB to the dataset source interface.
type ListingSource struct {
	db     *DB
	driver string
}

func NewListingSource(db *DB, driver string) *ListingSource {
	return &ListingSource{db: db, driver: driver}
}

func (s *ListingSource) Name() string {
	return "database:" + s.driver
}

func (s *ListingSource) ReadAll(ctx context.Context) ([]models.Listing, error) {
	return s.db.ListListings(ctx)
}
