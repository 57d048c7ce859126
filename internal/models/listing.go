// internal/models/listing.go
package models

import (
	"math"
	"strconv"
)

// Dataset column names, as they appear in the cleaned CSV header.
const (
	ColumnID              = "Id"
	ColumnName            = "Name"
	ColumnHostName        = "Host_name"
	ColumnPropertyType    = "Property_type"
	ColumnRoomType        = "Room_type"
	ColumnCountry         = "Country"
	ColumnPrice           = "Price"
	ColumnAvailability365 = "Availability_365"
)

var stringColumns = map[string]bool{
	ColumnID:           true,
	ColumnName:         true,
	ColumnHostName:     true,
	ColumnPropertyType: true,
	ColumnRoomType:     true,
	ColumnCountry:      true,
}

var numericColumns = map[string]bool{
	ColumnPrice:           true,
	ColumnAvailability365: true,
}

// Listing is one Airbnb property record. An empty Country means the value was
// missing in the source; a NaN Price likewise.
type Listing struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	HostName        string  `json:"hostName"`
	PropertyType    string  `json:"propertyType"`
	RoomType        string  `json:"roomType"`
	Country         string  `json:"country"`
	Price           float64 `json:"price"`
	Availability365 int     `json:"availability365"`
}

// IsColumn reports whether name is a known listing column.
func IsColumn(name string) bool {
	return stringColumns[name] || numericColumns[name]
}

// IsNumericColumn reports whether name is a known numeric listing column.
func IsNumericColumn(name string) bool {
	return numericColumns[name]
}

// HasCountry reports whether the listing carries a country value.
func (l Listing) HasCountry() bool {
	return l.Country != ""
}

// Text returns the value of column as text. Numeric columns are formatted
// without trailing zeros. ok is false for unknown columns and missing values.
func (l Listing) Text(column string) (string, bool) {
	switch column {
	case ColumnID:
		return l.ID, l.ID != ""
	case ColumnName:
		return l.Name, l.Name != ""
	case ColumnHostName:
		return l.HostName, l.HostName != ""
	case ColumnPropertyType:
		return l.PropertyType, l.PropertyType != ""
	case ColumnRoomType:
		return l.RoomType, l.RoomType != ""
	case ColumnCountry:
		return l.Country, l.Country != ""
	case ColumnPrice, ColumnAvailability365:
		value, ok := l.Number(column)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Number returns the value of a numeric column. ok is false for unknown or
// non-numeric columns and for NaN values.
func (l Listing) Number(column string) (float64, bool) {
	switch column {
	case ColumnPrice:
		if math.IsNaN(l.Price) {
			return 0, false
		}
		return l.Price, true
	case ColumnAvailability365:
		return float64(l.Availability365), true
	default:
		return 0, false
	}
}
