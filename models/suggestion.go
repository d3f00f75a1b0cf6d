package models

// TransportType identifies the kind of transport a suggestion refers to.
type TransportType string

const (
	TransportFlight   TransportType = "Flight"
	TransportTransfer TransportType = "Transfer"
	TransportTaxi     TransportType = "Taxi"
	TransportTrain    TransportType = "Train"
	TransportBus      TransportType = "Bus"
)

// TravelClass is the requested cabin class for flight searches.
type TravelClass string

const (
	ClassEconomy        TravelClass = "ECONOMY"
	ClassPremiumEconomy TravelClass = "PREMIUM_ECONOMY"
	ClassBusiness       TravelClass = "BUSINESS"
	ClassFirst          TravelClass = "FIRST"
)

// PlaceEntity is a place mentioned in generated trip text, extracted by the
// tagger for display and downstream place lookups.
type PlaceEntity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Context     string `json:"context"`
	Type        string `json:"type"`
	SearchQuery string `json:"searchQuery"`
}

// TransportEntity is a flight/transfer/train/bus mentioned in generated text.
type TransportEntity struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          TransportType `json:"type"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	DepartureDate string        `json:"departureDate"`
	ReturnDate    string        `json:"returnDate,omitempty"`
	Adults        int           `json:"adults"`
	TravelClass   TravelClass   `json:"travelClass,omitempty"`
}

// HotelEntity is a hotel mentioned in generated text, with the stay
// parameters the tagger could recover from the lookup requirements.
type HotelEntity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Context      string `json:"context"`
	Location     string `json:"location"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Guests       int    `json:"guests"`
	Rooms        int    `json:"rooms"`
	SearchQuery  string `json:"searchQuery"`
}

// TaggerOutput is the structured result of the entity tagging stage: the
// inline-tagged text plus one typed list per entity kind. Every inline tag
// in MarkedText has exactly one matching list entry, joined by id.
type TaggerOutput struct {
	MarkedText string            `json:"markedText"`
	Places     []PlaceEntity     `json:"places"`
	Transport  []TransportEntity `json:"transport"`
	Hotels     []HotelEntity     `json:"hotels"`
}
