// File: services/providers/amadeus/hotels.go
package amadeus

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"voyago/models"
)

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID string `json:"hotelId"`
			Name    string `json:"name"`
			Rating  string `json:"rating"`
			Address struct {
				Lines       []string `json:"lines"`
				PostalCode  string   `json:"postalCode"`
				CityName    string   `json:"cityName"`
				CountryCode string   `json:"countryCode"`
			} `json:"address"`
			Amenities []string `json:"amenities"`
			Media     []struct {
				URI string `json:"uri"`
			} `json:"media"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

// SearchHotels queries the hotel-offers endpoint for a city. Each returned
// hotel carries its cheapest offer's price. Hotels without any priced offer
// are dropped; a hotel entry missing its id or name is a malformed response.
func (c *Client) SearchHotels(ctx context.Context, params models.HotelSearchParams) ([]models.HotelOffer, error) {
	q := url.Values{}
	q.Set("cityCode", params.CityCode)
	q.Set("checkInDate", params.CheckInDate)
	q.Set("checkOutDate", params.CheckOutDate)
	q.Set("adults", strconv.Itoa(params.Adults))
	if params.Rooms > 0 {
		q.Set("roomQuantity", strconv.Itoa(params.Rooms))
	}
	q.Set("bestRateOnly", "true")

	var resp hotelOffersResponse
	if err := c.get(ctx, "/v2/shopping/hotel-offers", q, &resp); err != nil {
		return nil, err
	}

	offers := make([]models.HotelOffer, 0, len(resp.Data))
	for i, d := range resp.Data {
		if d.Hotel.HotelID == "" || d.Hotel.Name == "" {
			return nil, fmt.Errorf("hotel offer %d missing hotel id or name", i)
		}
		if len(d.Offers) == 0 {
			continue
		}

		// Cheapest offer per hotel.
		sort.Slice(d.Offers, func(a, b int) bool {
			pa, _ := strconv.ParseFloat(d.Offers[a].Price.Total, 64)
			pb, _ := strconv.ParseFloat(d.Offers[b].Price.Total, 64)
			return pa < pb
		})
		best := d.Offers[0]

		rating := 0.0
		if d.Hotel.Rating != "" {
			rating, _ = strconv.ParseFloat(d.Hotel.Rating, 64)
		}

		var photos []string
		for _, m := range d.Hotel.Media {
			if m.URI != "" {
				photos = append(photos, m.URI)
			}
		}

		offers = append(offers, models.HotelOffer{
			HotelID: d.Hotel.HotelID,
			Name:    d.Hotel.Name,
			Price: models.Price{
				Total:    best.Price.Total,
				Currency: best.Price.Currency,
			},
			Rating: rating,
			Address: models.HotelAddress{
				Lines:       d.Hotel.Address.Lines,
				PostalCode:  d.Hotel.Address.PostalCode,
				CityName:    d.Hotel.Address.CityName,
				CountryCode: d.Hotel.Address.CountryCode,
			},
			Amenities: d.Hotel.Amenities,
			Photos:    photos,
			Available: d.Available,
		})

		if params.Max > 0 && len(offers) >= params.Max {
			break
		}
	}
	return offers, nil
}
