// File: services/resolver/transport.go
package resolver

import (
	"context"
	"sync"
	"time"

	"voyago/models"

	"go.uber.org/zap"
)

// DefaultLookupTimeout is the per-item budget for one provider call.
const DefaultLookupTimeout = 5 * time.Second

// DefaultMaxInFlight bounds how many provider calls one batch keeps
// in flight at once.
const DefaultMaxInFlight = 4

// FlightSearcher is the outbound contract for the flight search provider.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, params models.FlightSearchParams) ([]models.FlightOffer, error)
}

// TransportResolver resolves a batch of transport suggestions to offers.
// It never returns an error: provider errors, zero results, timeouts, and
// unsupported subtypes all collapse to a NotFound sentinel for that one
// entity, and the rest of the batch proceeds.
type TransportResolver struct {
	Provider FlightSearcher
	Logger   *zap.Logger

	// Timeout and MaxInFlight fall back to the package defaults when zero.
	Timeout     time.Duration
	MaxInFlight int
}

// ResolveBatch looks up every suggestion concurrently, each racing a
// per-item timeout, and returns a map keyed by suggested name with exactly
// one entry per suggestion. Duplicate names: last write wins.
func (r *TransportResolver) ResolveBatch(ctx context.Context, suggestions []models.TransportEntity) models.TransportDataMap {
	out := make(models.TransportDataMap, len(suggestions))
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
		wg.Add(1)
		go func(s models.TransportEntity) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data := r.resolveOne(ctx, s, timeout)
			mu.Lock()
			out[s.Name] = data
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	resolved := 0
	for _, d := range out {
		if !d.NotFound {
			resolved++
		}
	}
	r.Logger.Info("transport batch resolved",
		zap.Int("total", len(suggestions)),
		zap.Int("resolved", resolved))
	return out
}

// resolveOne races the provider call against the timeout. Losing the race
// abandons the call rather than cancelling it; the buffered channel lets
// the late goroutine finish without blocking.
func (r *TransportResolver) resolveOne(ctx context.Context, s models.TransportEntity, timeout time.Duration) models.TransportData {
	resCh := make(chan models.TransportData, 1)
	go func() {
		resCh <- r.lookup(ctx, s)
	}()

	select {
	case data := <-resCh:
		return data
	case <-time.After(timeout):
		r.Logger.Warn("transport lookup timed out",
			zap.String("name", s.Name))
		return models.NotFoundTransport("flight")
	}
}

func (r *TransportResolver) lookup(ctx context.Context, s models.TransportEntity) models.TransportData {
	switch s.Type {
	case models.TransportFlight:
		return r.lookupFlight(ctx, s)
	case models.TransportTransfer, models.TransportTaxi:
		// Transfer search is not implemented; a documented gap, resolved
		// to the sentinel rather than silently succeeding.
		r.Logger.Warn("transfer search not implemented",
			zap.String("name", s.Name))
		return models.NotFoundTransport("transfer")
	default:
		r.Logger.Warn("unsupported transport type",
			zap.String("name", s.Name),
			zap.String("type", string(s.Type)))
		return models.NotFoundTransport("flight")
	}
}

func (r *TransportResolver) lookupFlight(ctx context.Context, s models.TransportEntity) models.TransportData {
	adults := s.Adults
	if adults <= 0 {
		adults = 1
	}
	class := s.TravelClass
	if class == "" {
		class = models.ClassEconomy
	}

	params := models.FlightSearchParams{
		Origin:        s.Origin,
		Destination:   s.Destination,
		DepartureDate: s.DepartureDate,
		ReturnDate:    s.ReturnDate,
		Adults:        adults,
		TravelClass:   class,
		Max:           5,
	}

	offers, err := r.Provider.SearchFlights(ctx, params)
	if err != nil {
		r.Logger.Warn("flight search failed",
			zap.String("name", s.Name),
			zap.Error(err))
		return models.NotFoundTransport("flight")
	}
	if len(offers) == 0 {
		r.Logger.Warn("no flights found", zap.String("name", s.Name))
		return models.NotFoundTransport("flight")
	}

	// The provider returns offers pre-sorted by relevance; the first offer
	// is taken as-is, with no client-side re-ranking.
	best := offers[0]
	return models.TransportData{
		ID:                     best.ID,
		Kind:                   "flight",
		Price:                  best.Price,
		Itineraries:            best.Itineraries,
		ValidatingAirlineCodes: best.ValidatingAirlineCodes,
	}
}
