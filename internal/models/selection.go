// internal/models/selection.go
package models

// AllOption is the sentinel select value meaning "no restriction".
const AllOption = "All"

// FilterSelection is the set of filter widget values for one interaction.
// It is rebuilt from every request and never stored.
type FilterSelection struct {
	Country      string
	PropertyType string
	RoomTypes    []string
	PriceMin     float64
	PriceMax     float64
}

// DefaultSelection returns a selection that restricts nothing within the
// given price bounds.
func DefaultSelection(priceMin, priceMax float64) FilterSelection {
	return FilterSelection{
		Country:      AllOption,
		PropertyType: AllOption,
		PriceMin:     priceMin,
		PriceMax:     priceMax,
	}
}

// HasRoomType reports whether roomType is part of the selection.
func (s FilterSelection) HasRoomType(roomType string) bool {
	for _, selected := range s.RoomTypes {
		if selected == roomType {
			return true
		}
	}
	return false
}
