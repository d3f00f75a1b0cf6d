// File: services/providers/amadeus/flights.go
package amadeus

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"voyago/models"
)

// flightOffersResponse is the untyped provider payload; it is validated
// field by field before conversion to models.FlightOffer.
type flightOffersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
				Duration    string `json:"duration"`
			} `json:"segments"`
		} `json:"itineraries"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

// SearchFlights queries the flight-offers endpoint. The returned slice keeps
// the provider's order; callers relying on "first offer wins" depend on that.
func (c *Client) SearchFlights(ctx context.Context, params models.FlightSearchParams) ([]models.FlightOffer, error) {
	q := url.Values{}
	q.Set("originLocationCode", params.Origin)
	q.Set("destinationLocationCode", params.Destination)
	q.Set("departureDate", params.DepartureDate)
	if params.ReturnDate != "" {
		q.Set("returnDate", params.ReturnDate)
	}
	q.Set("adults", strconv.Itoa(params.Adults))
	if params.TravelClass != "" {
		q.Set("travelClass", string(params.TravelClass))
	}
	if params.Max > 0 {
		q.Set("max", strconv.Itoa(params.Max))
	}

	var resp flightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", q, &resp); err != nil {
		return nil, err
	}

	offers := make([]models.FlightOffer, 0, len(resp.Data))
	for i, d := range resp.Data {
		if d.ID == "" || d.Price.Total == "" {
			return nil, fmt.Errorf("flight offer %d missing id or price", i)
		}
		offer := models.FlightOffer{
			ID: d.ID,
			Price: models.Price{
				Total:    d.Price.Total,
				Currency: d.Price.Currency,
			},
			ValidatingAirlineCodes: d.ValidatingAirlineCodes,
		}
		for _, it := range d.Itineraries {
			itinerary := models.Itinerary{Duration: it.Duration}
			for _, s := range it.Segments {
				itinerary.Segments = append(itinerary.Segments, models.FlightSegment{
					Departure:   models.FlightPoint{IataCode: s.Departure.IataCode, At: s.Departure.At},
					Arrival:     models.FlightPoint{IataCode: s.Arrival.IataCode, At: s.Arrival.At},
					CarrierCode: s.CarrierCode,
					Number:      s.Number,
					Duration:    s.Duration,
				})
			}
			offer.Itineraries = append(offer.Itineraries, itinerary)
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
