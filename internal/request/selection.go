package request

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/models"
)

// Filter query parameter names shared by the pages and the aggregate API.
const (
	ParamCountry      = "country"
	ParamPropertyType = "property_type"
	ParamRoomType     = "room_type"
	ParamPriceMin     = "price_min"
	ParamPriceMax     = "price_max"
)

// ParseSelection builds a filter selection from query values. Absent widgets
// fall back to "All", no room type restriction and the dataset's price range.
func ParseSelection(values url.Values, options dataset.Options) (models.FilterSelection, error) {
	selection := models.DefaultSelection(options.PriceMin, options.PriceMax)

	if country := strings.TrimSpace(values.Get(ParamCountry)); country != "" {
		selection.Country = country
	}
	if propertyType := strings.TrimSpace(values.Get(ParamPropertyType)); propertyType != "" {
		selection.PropertyType = propertyType
	}

	for _, roomType := range values[ParamRoomType] {
		roomType = strings.TrimSpace(roomType)
		if roomType != "" && !selection.HasRoomType(roomType) {
			selection.RoomTypes = append(selection.RoomTypes, roomType)
		}
	}

	var err error
	if selection.PriceMin, err = parsePrice(values, ParamPriceMin, selection.PriceMin); err != nil {
		return models.FilterSelection{}, err
	}
	if selection.PriceMax, err = parsePrice(values, ParamPriceMax, selection.PriceMax); err != nil {
		return models.FilterSelection{}, err
	}

	return selection, nil
}

// SelectionFromRequest parses the filter selection from r, writing a 400
// response and returning false when a price bound is not a number.
func SelectionFromRequest(w http.ResponseWriter, r *http.Request, options dataset.Options) (models.FilterSelection, bool) {
	selection, err := ParseSelection(r.URL.Query(), options)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("query", r.URL.RawQuery).
			Msg("Invalid filter selection")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return models.FilterSelection{}, false
	}
	return selection, true
}

// Query encodes selection back into query values, omitting defaults.
func Query(selection models.FilterSelection) url.Values {
	values := url.Values{}
	if selection.Country != "" && selection.Country != models.AllOption {
		values.Set(ParamCountry, selection.Country)
	}
	if selection.PropertyType != "" && selection.PropertyType != models.AllOption {
		values.Set(ParamPropertyType, selection.PropertyType)
	}
	for _, roomType := range selection.RoomTypes {
		values.Add(ParamRoomType, roomType)
	}
	values.Set(ParamPriceMin, strconv.FormatFloat(selection.PriceMin, 'f', -1, 64))
	values.Set(ParamPriceMax, strconv.FormatFloat(selection.PriceMax, 'f', -1, 64))
	return values
}

// ParsePage parses a 1-based page number, defaulting to 1.
func ParsePage(value string) int {
	page, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePrice(values url.Values, key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return value, nil
}
