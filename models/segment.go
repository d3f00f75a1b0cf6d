package models

// SegmentType discriminates the kinds of message segments the merger emits.
type SegmentType string

const (
	SegmentText      SegmentType = "text"
	SegmentPlace     SegmentType = "place"
	SegmentFlight    SegmentType = "flight"
	SegmentHotel     SegmentType = "hotel"
	SegmentTransport SegmentType = "transport"
)

// MessageSegment is one unit of the final renderable output: either a run of
// literal text or a tagged entity with its originating suggestion and, when
// resolution succeeded, the resolved availability payload. Segments are
// created once by the merger and are immutable afterward.
type MessageSegment struct {
	Type    SegmentType `json:"type"`
	Content string      `json:"content,omitempty"`
	Display string      `json:"display,omitempty"`

	Place     *PlaceEntity     `json:"place,omitempty"`
	Transport *TransportEntity `json:"transportSuggestion,omitempty"`
	Hotel     *HotelEntity     `json:"hotelSuggestion,omitempty"`

	TransportData *TransportData `json:"transportData,omitempty"`
	HotelData     *HotelData     `json:"hotelData,omitempty"`
}

// HasTransportData reports whether the segment carries usable transport
// availability. Presence of a payload is not enough: a sentinel payload
// renders as plain text.
func (s MessageSegment) HasTransportData() bool {
	return s.TransportData != nil && !s.TransportData.NotFound
}

// HasHotelData reports whether the segment carries usable hotel availability.
func (s MessageSegment) HasHotelData() bool {
	return s.HotelData != nil && !s.HotelData.NotFound
}

// Interactive reports whether the rendering layer should treat the segment
// as clickable and eligible for add-to-itinerary actions.
func (s MessageSegment) Interactive() bool {
	switch s.Type {
	case SegmentFlight, SegmentTransport:
		return s.HasTransportData()
	case SegmentHotel:
		return s.HasHotelData()
	default:
		return false
	}
}
