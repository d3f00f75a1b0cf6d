package segments

import (
	"strings"
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parisMarked = `Day 1: Fly out on <flight id="jfk-cdg-flight" route="JFK-CDG" dates="2026-10-01:2026-10-08" class="ECONOMY">JFK to Paris</flight>, then check in at <hotel id="plaza-athenee-1" context="Paris France" dates="2026-10-01:2026-10-08">Hôtel Plaza Athénée</hotel>.
Dinner at <place id="le-meurice-1" context="Paris France 1st arrondissement" type="Restaurant">Le Meurice</place> nearby.`

func parisTagged() *models.TaggerOutput {
	return &models.TaggerOutput{
		MarkedText: parisMarked,
		Places: []models.PlaceEntity{
			{ID: "le-meurice-1", Name: "Le Meurice", Context: "Paris France 1st arrondissement", Type: "Restaurant"},
		},
		Transport: []models.TransportEntity{
			{ID: "jfk-cdg-flight", Name: "JFK to Paris", Type: models.TransportFlight, Origin: "JFK", Destination: "CDG"},
		},
		Hotels: []models.HotelEntity{
			{ID: "plaza-athenee-1", Name: "Hôtel Plaza Athénée", Location: "Paris France"},
		},
	}
}

func parisMaps() (models.TransportDataMap, models.HotelDataMap) {
	return models.TransportDataMap{
			"JFK to Paris": {ID: "offer-1", Kind: "flight", Price: models.Price{Total: "420.00", Currency: "EUR"}},
		}, models.HotelDataMap{
			"Hôtel Plaza Athénée": {HotelID: "h-77", Name: "Hôtel Plaza Athénée", Price: models.Price{Total: "950.00", Currency: "EUR"}, Available: true},
		}
}

func TestMergeOrderAndContent(t *testing.T) {
	tagged := parisTagged()
	tmap, hmap := parisMaps()

	segs := Merge(parisMarked, tagged, tmap, hmap)
	require.Len(t, segs, 7)

	assert.Equal(t, models.SegmentText, segs[0].Type)
	assert.Equal(t, "Day 1: Fly out on ", segs[0].Content)

	assert.Equal(t, models.SegmentFlight, segs[1].Type)
	assert.Equal(t, "JFK to Paris", segs[1].Display)
	require.NotNil(t, segs[1].Transport)
	assert.Equal(t, "jfk-cdg-flight", segs[1].Transport.ID)
	require.NotNil(t, segs[1].TransportData)
	assert.Equal(t, "420.00", segs[1].TransportData.Price.Total)

	assert.Equal(t, models.SegmentText, segs[2].Type)
	assert.Equal(t, ", then check in at ", segs[2].Content)

	assert.Equal(t, models.SegmentHotel, segs[3].Type)
	require.NotNil(t, segs[3].HotelData)
	assert.Equal(t, "h-77", segs[3].HotelData.HotelID)

	assert.Equal(t, models.SegmentText, segs[4].Type)
	assert.Equal(t, ".\nDinner at ", segs[4].Content)

	assert.Equal(t, models.SegmentPlace, segs[5].Type)
	assert.Equal(t, "Le Meurice", segs[5].Display)
	require.NotNil(t, segs[5].Place)
	assert.Nil(t, segs[5].TransportData)
	assert.Nil(t, segs[5].HotelData)

	assert.Equal(t, models.SegmentText, segs[6].Type)
	assert.Equal(t, " nearby.", segs[6].Content)
}

func TestMergePreservesTextExactly(t *testing.T) {
	tagged := parisTagged()
	tmap, hmap := parisMaps()

	segs := Merge(parisMarked, tagged, tmap, hmap)

	// Concatenating text contents and entity display texts reproduces the
	// untagged prose, whitespace included.
	var sb strings.Builder
	for _, s := range segs {
		if s.Type == models.SegmentText {
			sb.WriteString(s.Content)
		} else {
			sb.WriteString(s.Display)
		}
	}
	stripped := tagPattern.ReplaceAllString(parisMarked, "$3")
	assert.Equal(t, stripped, sb.String())
}

func TestMergeIsIdempotent(t *testing.T) {
	tagged := parisTagged()
	tmap, hmap := parisMaps()

	first := Merge(parisMarked, tagged, tmap, hmap)
	second := Merge(parisMarked, tagged, tmap, hmap)
	assert.Equal(t, first, second)
}

func TestMergeMismatchedCloseDegradesToText(t *testing.T) {
	marked := `Visit <place id="x-1" type="Museum">the Louvre</hotel> today.`
	segs := Merge(marked, &models.TaggerOutput{MarkedText: marked}, nil, nil)

	require.Len(t, segs, 3)
	assert.Equal(t, models.SegmentText, segs[1].Type)
	assert.Equal(t, `<place id="x-1" type="Museum">the Louvre</hotel>`, segs[1].Content)
}

func TestMergeNotFoundDataIsNotRenderable(t *testing.T) {
	tagged := parisTagged()
	tmap := models.TransportDataMap{"JFK to Paris": models.NotFoundTransport("flight")}
	hmap := models.HotelDataMap{"Hôtel Plaza Athénée": models.NotFoundHotel("Hôtel Plaza Athénée")}

	segs := Merge(parisMarked, tagged, tmap, hmap)

	require.NotNil(t, segs[1].TransportData)
	assert.True(t, segs[1].TransportData.NotFound)
	assert.False(t, segs[1].HasTransportData())

	require.NotNil(t, segs[3].HotelData)
	assert.False(t, segs[3].HasHotelData())
}

func TestMergeNonFlightTransportSegmentType(t *testing.T) {
	marked := `Take the <flight id="shuttle-1" route="NRT-TYO" dates="2026-10-02" class="">airport shuttle</flight>.`
	tagged := &models.TaggerOutput{
		MarkedText: marked,
		Transport: []models.TransportEntity{
			{ID: "shuttle-1", Name: "airport shuttle", Type: models.TransportTransfer},
		},
	}
	segs := Merge(marked, tagged, models.TransportDataMap{
		"airport shuttle": models.NotFoundTransport("transfer"),
	}, nil)

	require.Len(t, segs, 3)
	assert.Equal(t, models.SegmentTransport, segs[1].Type)
}

func TestMergeEntitySegmentWithoutListEntry(t *testing.T) {
	// A tag whose id has no list entry still renders, carrying only its
	// display text.
	marked := `<place id="ghost-1" type="Park">Ghost Park</place>`
	segs := Merge(marked, &models.TaggerOutput{MarkedText: marked}, nil, nil)

	require.Len(t, segs, 1)
	assert.Equal(t, models.SegmentPlace, segs[0].Type)
	assert.Nil(t, segs[0].Place)
	assert.Equal(t, "Ghost Park", segs[0].Display)
}

func TestTagIDs(t *testing.T) {
	ids := TagIDs(parisMarked)
	assert.Equal(t, []string{"jfk-cdg-flight"}, ids["flight"])
	assert.Equal(t, []string{"plaza-athenee-1"}, ids["hotel"])
	assert.Equal(t, []string{"le-meurice-1"}, ids["place"])
}
