// internal/dataset/dataset.go
package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/models"
)

var ErrNotLoaded = errors.New("dataset not loaded")

// Source reads the complete listing collection from its backing store.
type Source interface {
	Name() string
	ReadAll(ctx context.Context) ([]models.Listing, error)
}

// Provider hands out the current immutable snapshot.
type Provider interface {
	Snapshot() *Snapshot
}

// Options are the values offered by the filter widgets.
type Options struct {
	Countries     []string
	PropertyTypes []string
	RoomTypes     []string
	PriceMin      float64
	PriceMax      float64
}

// Snapshot is one loaded copy of the dataset. It is never modified after
// NewSnapshot returns; callers must treat the returned slices as read-only.
type Snapshot struct {
	all      []models.Listing
	listings []models.Listing
	options  Options
	source   string
	loadedAt time.Time
}

// NewSnapshot builds a snapshot from rows. Rows without a Country are kept
// for the table view but excluded from Listings and from the widget options.
func NewSnapshot(source string, rows []models.Listing, loadedAt time.Time) *Snapshot {
	all := make([]models.Listing, len(rows))
	copy(all, rows)

	listings := make([]models.Listing, 0, len(all))
	for _, row := range all {
		if row.HasCountry() {
			listings = append(listings, row)
		}
	}

	return &Snapshot{
		all:      all,
		listings: listings,
		options:  buildOptions(listings),
		source:   source,
		loadedAt: loadedAt,
	}
}

// All returns every loaded row, including rows without a Country.
func (s *Snapshot) All() []models.Listing {
	return s.all
}

// Listings returns the rows with a Country; all filtering starts here.
func (s *Snapshot) Listings() []models.Listing {
	return s.listings
}

func (s *Snapshot) Options() Options {
	return s.options
}

func (s *Snapshot) Source() string {
	return s.source
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// DefaultSelection is the selection shown before the user touches a widget.
func (s *Snapshot) DefaultSelection() models.FilterSelection {
	return models.DefaultSelection(s.options.PriceMin, s.options.PriceMax)
}

func buildOptions(listings []models.Listing) Options {
	countries := make(map[string]struct{})
	propertyTypes := make(map[string]struct{})
	roomTypes := make(map[string]struct{})
	priceMin, priceMax := math.Inf(1), math.Inf(-1)

	for _, listing := range listings {
		countries[listing.Country] = struct{}{}
		if listing.PropertyType != "" {
			propertyTypes[listing.PropertyType] = struct{}{}
		}
		if listing.RoomType != "" {
			roomTypes[listing.RoomType] = struct{}{}
		}
		if price, ok := listing.Number(models.ColumnPrice); ok {
			priceMin = math.Min(priceMin, price)
			priceMax = math.Max(priceMax, price)
		}
	}

	if math.IsInf(priceMin, 1) {
		priceMin, priceMax = 0, 0
	}

	return Options{
		Countries:     sortedKeys(countries),
		PropertyTypes: sortedKeys(propertyTypes),
		RoomTypes:     sortedKeys(roomTypes),
		PriceMin:      priceMin,
		PriceMax:      priceMax,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Holder owns the current snapshot. Readers never block; a reload swaps in a
// new snapshot atomically.
type Holder struct {
	source  Source
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

func NewHolder(source Source) *Holder {
	return &Holder{source: source, now: time.Now}
}

// Load reads the source and installs the first snapshot.
func (h *Holder) Load(ctx context.Context) error {
	snapshot, err := h.read(ctx)
	if err != nil {
		return err
	}
	h.current.Store(snapshot)
	log.Ctx(ctx).Info().
		Str("source", snapshot.Source()).
		Int("rows", len(snapshot.All())).
		Int("listings_with_country", len(snapshot.Listings())).
		Msg("Dataset loaded")
	return nil
}

// Reload re-reads the source. On failure the previous snapshot stays active.
func (h *Holder) Reload(ctx context.Context) error {
	logger := log.Ctx(ctx)
	snapshot, err := h.read(ctx)
	if err != nil {
		logger.Error().Err(err).Str("source", h.source.Name()).Msg("Dataset reload failed; keeping previous snapshot")
		return err
	}
	previous := h.current.Swap(snapshot)
	event := logger.Info().Str("source", snapshot.Source()).Int("rows", len(snapshot.All()))
	if previous != nil {
		event = event.Int("previous_rows", len(previous.All()))
	}
	event.Msg("Dataset reloaded")
	return nil
}

// Snapshot returns the current snapshot, or nil before Load succeeds.
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}

func (h *Holder) read(ctx context.Context) (*Snapshot, error) {
	rows, err := h.source.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read dataset from %s: %w", h.source.Name(), err)
	}
	return NewSnapshot(h.source.Name(), rows, h.now()), nil
}
