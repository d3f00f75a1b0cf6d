// File: services/resolver/context.go
package resolver

import (
	"strings"
	"time"

	"voyago/models"
)

const dateLayout = "2006-01-02"

// unknownLocation is the placeholder emitted when no location source exists;
// a context carrying it is invalid.
const unknownLocation = "Unknown"

// ExtractHotelContext derives the concrete search parameters for one hotel
// suggestion. Returns nil when no valid date source exists or the resolved
// check-in date is already past; absence is the signal to skip the lookup,
// never an error.
//
// Location priority: explicit location on the suggestion, then the trailing
// tokens of its search query, then the suggested name. Date priority:
// suggestion dates, then trip start/end, then the first trip segment's
// dates. Guest count defaults to the profile value and finally 2; rooms
// default to one room per two guests, minimum 1.
func ExtractHotelContext(s models.HotelEntity, trip *models.TripContext, profile *models.TravelProfile) *models.SearchContext {
	location := extractLocation(s)

	checkIn, checkOut := s.CheckInDate, s.CheckOutDate
	if checkIn == "" || checkOut == "" {
		checkIn, checkOut = datesFromTrip(trip)
		if checkIn == "" || checkOut == "" {
			return nil
		}
	}

	// Reject stays that already started, at day granularity.
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return nil
	}
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if in.Before(today) {
		return nil
	}

	guests := s.Guests
	if guests <= 0 && profile != nil {
		guests = profile.DefaultGuests
	}
	if guests <= 0 {
		guests = 2
	}

	rooms := s.Rooms
	if rooms <= 0 {
		rooms = (guests + 1) / 2
	}
	if rooms < 1 {
		rooms = 1
	}

	ctx := &models.SearchContext{
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       guests,
		Rooms:        rooms,
		Location:     location,
	}
	if !IsValidContext(ctx) {
		return nil
	}
	return ctx
}

// IsValidContext reports whether a search context is complete enough to
// query a provider with.
func IsValidContext(ctx *models.SearchContext) bool {
	if ctx == nil {
		return false
	}
	return ctx.CheckInDate != "" &&
		ctx.CheckOutDate != "" &&
		ctx.Guests > 0 &&
		ctx.Rooms > 0 &&
		ctx.Location != "" &&
		ctx.Location != unknownLocation
}

// Nights returns the stay length implied by a context, minimum 1.
func Nights(ctx *models.SearchContext) int {
	in, err1 := time.Parse(dateLayout, ctx.CheckInDate)
	out, err2 := time.Parse(dateLayout, ctx.CheckOutDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

func extractLocation(s models.HotelEntity) string {
	if s.Location != "" {
		return s.Location
	}

	// A search query like "Hilton hotel Paris France" usually trails with
	// the location. Tokens mentioning "hotel" are the establishment, not
	// the place.
	if s.SearchQuery != "" {
		words := strings.Fields(s.SearchQuery)
		if len(words) >= 2 {
			trailing := strings.Join(words[len(words)-2:], " ")
			if trailing != "" && !strings.Contains(strings.ToLower(trailing), "hotel") {
				return trailing
			}
		}
	}

	if s.Name != "" {
		return s.Name
	}
	return unknownLocation
}

func datesFromTrip(trip *models.TripContext) (string, string) {
	if trip == nil {
		return "", ""
	}
	if trip.StartDate != "" && trip.EndDate != "" {
		return trip.StartDate, trip.EndDate
	}
	if len(trip.Segments) > 0 {
		first := trip.Segments[0]
		if first.StartDate != "" && first.EndDate != "" {
			return first.StartDate, first.EndDate
		}
	}
	return "", ""
}
