// File: services/segments/merger.go
package segments

import (
	"regexp"

	"voyago/models"
)

// Inline tag grammar produced by the tagger:
//
//	<place id="le-meurice-1" context="Paris France 1st arrondissement" type="Restaurant">Le Meurice</place>
//	<hotel id="hotel-plaza-1" context="..." dates="2026-01-24:2026-01-27">Hôtel Plaza Athénée</hotel>
//	<flight id="jfk-cdg-flight" route="JFK-CDG" dates="2026-01-24:2026-01-31" class="ECONOMY">JFK to Paris</flight>
//
// RE2 has no backreferences, so the closing tag kind is captured separately
// and checked during parsing.
var (
	tagPattern    = regexp.MustCompile(`<(place|hotel|flight|transport)\b([^>]*)>([^<]*)</(place|hotel|flight|transport)>`)
	idAttrPattern = regexp.MustCompile(`id="([^"]*)"`)
)

// TagIDs extracts the ids of all well-formed inline tags in marked text,
// grouped by tag kind. Used to verify tag/entity consistency.
func TagIDs(marked string) map[string][]string {
	ids := make(map[string][]string)
	for _, m := range tagPattern.FindAllStringSubmatch(marked, -1) {
		kind, attrs, closeKind := m[1], m[2], m[4]
		if kind != closeKind {
			continue
		}
		if idm := idAttrPattern.FindStringSubmatch(attrs); idm != nil {
			ids[kind] = append(ids[kind], idm[1])
		}
	}
	return ids
}

// Merge parses tagged text into an ordered segment sequence and attaches
// resolved availability to each entity segment. Literal text between tags is
// preserved exactly, including whitespace. Segment order is the textual
// order of the marked text; resolver completion order never matters because
// data is attached by map lookup.
//
// Merge is a pure function: running it twice over the same inputs yields an
// identical sequence.
func Merge(marked string, tagged *models.TaggerOutput, transportMap models.TransportDataMap, hotelMap models.HotelDataMap) []models.MessageSegment {
	placeByID := make(map[string]models.PlaceEntity, len(tagged.Places))
	for _, p := range tagged.Places {
		placeByID[p.ID] = p
	}
	transportByID := make(map[string]models.TransportEntity, len(tagged.Transport))
	for _, t := range tagged.Transport {
		transportByID[t.ID] = t
	}
	hotelByID := make(map[string]models.HotelEntity, len(tagged.Hotels))
	for _, h := range tagged.Hotels {
		hotelByID[h.ID] = h
	}

	var out []models.MessageSegment
	last := 0
	for _, loc := range tagPattern.FindAllStringSubmatchIndex(marked, -1) {
		start, end := loc[0], loc[1]
		if start > last {
			out = append(out, models.MessageSegment{
				Type:    models.SegmentText,
				Content: marked[last:start],
			})
		}
		last = end

		kind := marked[loc[2]:loc[3]]
		attrs := marked[loc[4]:loc[5]]
		display := marked[loc[6]:loc[7]]
		closeKind := marked[loc[8]:loc[9]]

		// A mismatched closing tag is not renderable as an entity; degrade
		// the whole run to plain text rather than dropping it.
		if kind != closeKind {
			out = append(out, models.MessageSegment{
				Type:    models.SegmentText,
				Content: marked[start:end],
			})
			continue
		}

		id := ""
		if idm := idAttrPattern.FindStringSubmatch(attrs); idm != nil {
			id = idm[1]
		}

		out = append(out, buildEntitySegment(kind, id, display,
			placeByID, transportByID, hotelByID, transportMap, hotelMap))
	}

	if last < len(marked) {
		out = append(out, models.MessageSegment{
			Type:    models.SegmentText,
			Content: marked[last:],
		})
	}
	return out
}

func buildEntitySegment(
	kind, id, display string,
	placeByID map[string]models.PlaceEntity,
	transportByID map[string]models.TransportEntity,
	hotelByID map[string]models.HotelEntity,
	transportMap models.TransportDataMap,
	hotelMap models.HotelDataMap,
) models.MessageSegment {
	switch kind {
	case "place":
		seg := models.MessageSegment{Type: models.SegmentPlace, Display: display}
		if p, ok := placeByID[id]; ok {
			seg.Place = &p
		}
		return seg

	case "hotel":
		seg := models.MessageSegment{Type: models.SegmentHotel, Display: display}
		name := display
		if h, ok := hotelByID[id]; ok {
			seg.Hotel = &h
			name = h.Name
		}
		seg.HotelData = lookupHotel(hotelMap, id, name)
		return seg

	default: // flight, transport
		segType := models.SegmentFlight
		if kind == "transport" {
			segType = models.SegmentTransport
		}
		seg := models.MessageSegment{Type: segType, Display: display}
		name := display
		if t, ok := transportByID[id]; ok {
			seg.Transport = &t
			name = t.Name
			if t.Type != models.TransportFlight {
				seg.Type = models.SegmentTransport
			}
		}
		seg.TransportData = lookupTransport(transportMap, id, name)
		return seg
	}
}

// Resolver maps are keyed by suggested name; callers may also remap by
// entity id, so both keys are tried.
func lookupTransport(m models.TransportDataMap, id, name string) *models.TransportData {
	if m == nil {
		return nil
	}
	if d, ok := m[id]; ok {
		return &d
	}
	if d, ok := m[name]; ok {
		return &d
	}
	return nil
}

func lookupHotel(m models.HotelDataMap, id, name string) *models.HotelData {
	if m == nil {
		return nil
	}
	if d, ok := m[id]; ok {
		return &d
	}
	if d, ok := m[name]; ok {
		return &d
	}
	return nil
}
