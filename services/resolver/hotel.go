// File: services/resolver/hotel.go
package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"voyago/models"

	"go.uber.org/zap"
)

// HotelSearcher is the outbound contract for the hotel search provider.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, params models.HotelSearchParams) ([]models.HotelOffer, error)
}

// CityLookup resolves a free-form city keyword to a city code when the
// static table has no match.
type CityLookup interface {
	SearchCityCode(ctx context.Context, keyword string) (string, error)
}

// HotelResolver resolves a batch of hotel suggestions to priced offers.
// Like the transport resolver it never fails the batch: every suggestion
// gets exactly one map entry, sentinel or real.
type HotelResolver struct {
	Provider HotelSearcher
	Cities   CityCodes
	Lookup   CityLookup // optional
	Logger   *zap.Logger

	Timeout     time.Duration
	MaxInFlight int
}

// ResolveBatch derives a search context per suggestion, skipping those with
// no usable dates or location, and looks the rest up concurrently under a
// per-item timeout. Returns a map keyed by suggested name with one entry
// per suggestion.
func (r *HotelResolver) ResolveBatch(ctx context.Context, suggestions []models.HotelEntity, trip *models.TripContext, profile *models.TravelProfile) models.HotelDataMap {
	out := make(models.HotelDataMap, len(suggestions))
	if len(suggestions) == 0 {
		return out
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	inFlight := r.MaxInFlight
	if inFlight <= 0 {
		inFlight = DefaultMaxInFlight
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, inFlight)
	)
	for _, s := range suggestions {
		sctx := ExtractHotelContext(s, trip, profile)
		if sctx == nil {
			r.Logger.Warn("hotel lookup skipped, incomplete context",
				zap.String("name", s.Name))
			mu.Lock()
			out[s.Name] = models.NotFoundHotel(s.Name)
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(s models.HotelEntity, sctx *models.SearchContext) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data := r.resolveOne(ctx, s, sctx, timeout)
			mu.Lock()
			out[s.Name] = data
			mu.Unlock()
		}(s, sctx)
	}
	wg.Wait()

	resolved := 0
	for _, d := range out {
		if !d.NotFound {
			resolved++
		}
	}
	r.Logger.Info("hotel batch resolved",
		zap.Int("total", len(suggestions)),
		zap.Int("resolved", resolved))
	return out
}

func (r *HotelResolver) resolveOne(ctx context.Context, s models.HotelEntity, sctx *models.SearchContext, timeout time.Duration) models.HotelData {
	resCh := make(chan models.HotelData, 1)
	go func() {
		resCh <- r.lookup(ctx, s, sctx)
	}()

	select {
	case data := <-resCh:
		return data
	case <-time.After(timeout):
		r.Logger.Warn("hotel lookup timed out",
			zap.String("name", s.Name))
		return models.NotFoundHotel(s.Name)
	}
}

func (r *HotelResolver) lookup(ctx context.Context, s models.HotelEntity, sctx *models.SearchContext) models.HotelData {
	cityCode, ok := r.Cities.Resolve(sctx.Location)
	if !ok && r.Lookup != nil {
		code, err := r.Lookup.SearchCityCode(ctx, sctx.Location)
		if err == nil {
			cityCode, ok = code, true
		}
	}
	if !ok {
		r.Logger.Warn("no city code for location",
			zap.String("name", s.Name),
			zap.String("location", sctx.Location))
		return models.NotFoundHotel(s.Name)
	}

	offers, err := r.Provider.SearchHotels(ctx, models.HotelSearchParams{
		CityCode:     cityCode,
		CheckInDate:  sctx.CheckInDate,
		CheckOutDate: sctx.CheckOutDate,
		Adults:       sctx.Guests,
		Rooms:        sctx.Rooms,
		Max:          5,
	})
	if err != nil {
		r.Logger.Warn("hotel search failed",
			zap.String("name", s.Name),
			zap.Error(err))
		return models.NotFoundHotel(s.Name)
	}
	if len(offers) == 0 {
		r.Logger.Warn("no hotels found",
			zap.String("name", s.Name),
			zap.String("cityCode", cityCode))
		return models.NotFoundHotel(s.Name)
	}

	best := selectOffer(offers, s.Name)
	return models.HotelData{
		HotelID:   best.HotelID,
		Name:      best.Name,
		Price:     best.Price,
		Rating:    best.Rating,
		Address:   formatAddress(best.Address),
		Amenities: best.Amenities,
		Photos:    best.Photos,
		Available: best.Available,
	}
}

// selectOffer prefers the offer whose hotel name matches the suggested
// name, substring in either direction, case-insensitive. First match wins;
// no match falls back to the provider's top offer.
func selectOffer(offers []models.HotelOffer, suggested string) models.HotelOffer {
	want := strings.ToLower(suggested)
	for _, o := range offers {
		got := strings.ToLower(o.Name)
		if got == "" {
			continue
		}
		if strings.Contains(got, want) || strings.Contains(want, got) {
			return o
		}
	}
	return offers[0]
}

func formatAddress(a models.HotelAddress) string {
	parts := append([]string{}, a.Lines...)
	if a.CityName != "" {
		parts = append(parts, a.CityName)
	}
	if a.CountryCode != "" {
		parts = append(parts, a.CountryCode)
	}
	return strings.Join(parts, ", ")
}
