// internal/dataset/csv.go
package dataset

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/codr1/airbnbviz/internal/models"
)

var requiredColumns = []string{
	models.ColumnName,
	models.ColumnHostName,
	models.ColumnPropertyType,
	models.ColumnRoomType,
	models.ColumnCountry,
	models.ColumnPrice,
	models.ColumnAvailability365,
}

var columnTypes = map[string]series.Type{
	models.ColumnID:              series.String,
	models.ColumnName:            series.String,
	models.ColumnHostName:        series.String,
	models.ColumnPropertyType:    series.String,
	models.ColumnRoomType:        series.String,
	models.ColumnCountry:         series.String,
	models.ColumnPrice:           series.Float,
	models.ColumnAvailability365: series.Float,
}

var naValues = []string{"", "NA", "NaN", "nan", "null", "<nil>"}

// CSVSource reads the cleaned listings CSV.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

func (s *CSVSource) ReadAll(ctx context.Context) ([]models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset csv: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses a listings CSV with a header row. Missing values become an
// empty string, a NaN price or zero availability.
func ReadCSV(r io.Reader) ([]models.Listing, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse dataset csv: %w", df.Err)
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, column := range requiredColumns {
		if !present[column] {
			return nil, fmt.Errorf("dataset csv is missing column %q", column)
		}
	}

	ids := optionalColumn(df, present, models.ColumnID)
	names := df.Col(models.ColumnName)
	hosts := df.Col(models.ColumnHostName)
	propertyTypes := df.Col(models.ColumnPropertyType)
	roomTypes := df.Col(models.ColumnRoomType)
	countries := df.Col(models.ColumnCountry)
	prices := df.Col(models.ColumnPrice)
	availability := df.Col(models.ColumnAvailability365)

	listings := make([]models.Listing, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		listing := models.Listing{
			Name:            text(names, i),
			HostName:        text(hosts, i),
			PropertyType:    text(propertyTypes, i),
			RoomType:        text(roomTypes, i),
			Country:         text(countries, i),
			Price:           number(prices, i),
			Availability365: days(availability, i),
		}
		if ids != nil {
			listing.ID = text(*ids, i)
		}
		if listing.ID == "" {
			listing.ID = fmt.Sprintf("row-%d", i+1)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func optionalColumn(df dataframe.DataFrame, present map[string]bool, name string) *series.Series {
	if !present[name] {
		return nil
	}
	col := df.Col(name)
	return &col
}

func text(s series.Series, i int) string {
	elem := s.Elem(i)
	if elem.IsNA() {
		return ""
	}
	return elem.String()
}

func number(s series.Series, i int) float64 {
	elem := s.Elem(i)
	if elem.IsNA() {
		return math.NaN()
	}
	return elem.Float()
}

func days(s series.Series, i int) int {
	value := number(s, i)
	if math.IsNaN(value) {
		return 0
	}
	return int(math.Round(value))
}
