package models

// TripSegment is one leg of a planned trip, used as a date source when a
// hotel suggestion carries no explicit dates.
type TripSegment struct {
	ID         string `json:"id"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	StartTitle string `json:"startTitle,omitempty"`
	EndTitle   string `json:"endTitle,omitempty"`
}

// TripContext carries trip-level data the caller already knows, letting the
// context resolver fill gaps in entity suggestions. All dates are YYYY-MM-DD.
type TripContext struct {
	TripID    string        `json:"tripId,omitempty"`
	StartDate string        `json:"startDate,omitempty"`
	EndDate   string        `json:"endDate,omitempty"`
	Segments  []TripSegment `json:"segments,omitempty"`
}

// TravelProfile holds the profile defaults consulted when a suggestion
// omits guest counts.
type TravelProfile struct {
	DefaultGuests int `json:"defaultGuests,omitempty"`
}

// SearchContext is the concrete set of parameters needed to query the hotel
// provider for one entity. A nil context means the lookup is skipped.
type SearchContext struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Guests       int    `json:"guests"`
	Rooms        int    `json:"rooms"`
	Location     string `json:"location"`
}

// GenerationOutput is the result of the content generation stage: the full
// model response split into its prose and lookup-requirements parts.
type GenerationOutput struct {
	Text               string `json:"text"`
	NaturalLanguage    string `json:"naturalLanguage"`
	LookupRequirements string `json:"lookupRequirements"`
}

// PipelineRequest is the payload for a pipeline invocation. Either Query is
// set (the generation stage runs first) or Text plus LookupRequirements are
// supplied directly.
type PipelineRequest struct {
	Query              string         `json:"query,omitempty"`
	Text               string         `json:"text,omitempty"`
	LookupRequirements string         `json:"lookupRequirements,omitempty"`
	TripContext        *TripContext   `json:"tripContext,omitempty"`
	Profile            *TravelProfile `json:"profile,omitempty"`
}

// ResolutionStats aggregates per-batch lookup outcomes. Observability only;
// no control flow depends on these counts.
type ResolutionStats struct {
	TransportResolved int `json:"transportResolved"`
	TransportFailed   int `json:"transportFailed"`
	HotelsResolved    int `json:"hotelsResolved"`
	HotelsFailed      int `json:"hotelsFailed"`
}

// StageTimings records per-stage wall-clock durations in milliseconds.
type StageTimings struct {
	GenerationMS int64 `json:"generationMs,omitempty"`
	TaggingMS    int64 `json:"taggingMs"`
	ResolutionMS int64 `json:"resolutionMs"`
	MergeMS      int64 `json:"mergeMs"`
}

// PipelineResult is the full output of one pipeline invocation.
type PipelineResult struct {
	Generated    *GenerationOutput `json:"generated,omitempty"`
	Tagged       *TaggerOutput     `json:"tagged"`
	TransportMap TransportDataMap  `json:"transportMap"`
	HotelMap     HotelDataMap      `json:"hotelMap"`
	Segments     []MessageSegment  `json:"segments"`
	Stats        ResolutionStats   `json:"stats"`
	Timings      StageTimings      `json:"timings"`
}
