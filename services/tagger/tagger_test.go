package tagger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"voyago/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	response string
	err      error
	system   string
	prompt   string
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	f.system = system
	f.prompt = prompt
	return f.response, f.err
}

func validResponse(t *testing.T) string {
	t.Helper()
	out := models.TaggerOutput{
		MarkedText: `Stay at <hotel id="plaza-1" context="Paris France" dates="2026-10-01:2026-10-04">Plaza</hotel> after <flight id="jfk-cdg-1" route="JFK-CDG" dates="2026-10-01" class="ECONOMY">your flight</flight>.`,
		Places:     []models.PlaceEntity{},
		Transport: []models.TransportEntity{
			{ID: "jfk-cdg-1", Name: "your flight", Type: models.TransportFlight, Origin: "JFK", Destination: "CDG", DepartureDate: "2026-10-01"},
		},
		Hotels: []models.HotelEntity{
			{ID: "plaza-1", Name: "Plaza", Location: "Paris France", CheckInDate: "2026-10-01", CheckOutDate: "2026-10-04"},
		},
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	return string(b)
}

func TestTaggerRunValidOutput(t *testing.T) {
	gen := &fakeGenerator{response: validResponse(t)}
	tg := New(gen, zap.NewNop())

	out, err := tg.Run(context.Background(), "Stay at Plaza after your flight.", "LOOKUP_REQUIREMENTS:\n- hotel Plaza\n- flight JFK-CDG")
	require.NoError(t, err)
	assert.Len(t, out.Hotels, 1)
	assert.Len(t, out.Transport, 1)
	assert.Contains(t, gen.prompt, "LOOKUP_REQUIREMENTS")
}

func TestTaggerRunStripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n" + validResponse(t) + "\n```"}
	tg := New(gen, zap.NewNop())

	out, err := tg.Run(context.Background(), "text", "")
	require.NoError(t, err)
	assert.Len(t, out.Hotels, 1)
}

func TestTaggerRunStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I could not process that request."},
		{"missing marked text", `{"places":[],"transport":[],"hotels":[]}`},
		{"empty marked text", `{"markedText":"","places":[],"transport":[],"hotels":[]}`},
		{"missing entity lists", `{"markedText":"some text"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: tt.response}
			tg := New(gen, zap.NewNop())

			out, err := tg.Run(context.Background(), "text", "")
			assert.Error(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestTaggerRunGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	tg := New(gen, zap.NewNop())

	out, err := tg.Run(context.Background(), "text", "")
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestTaggerConsistencyViolations(t *testing.T) {
	marshal := func(out models.TaggerOutput) string {
		b, err := json.Marshal(out)
		require.NoError(t, err)
		return string(b)
	}

	tests := []struct {
		name     string
		response string
	}{
		{
			"tag without list entry",
			marshal(models.TaggerOutput{
				MarkedText: `<hotel id="ghost-1" context="x" dates="2026-10-01:2026-10-02">Ghost</hotel>`,
				Places:     []models.PlaceEntity{},
				Transport:  []models.TransportEntity{},
				Hotels:     []models.HotelEntity{},
			}),
		},
		{
			"list entry without tag",
			marshal(models.TaggerOutput{
				MarkedText: "no tags here",
				Places:     []models.PlaceEntity{},
				Transport:  []models.TransportEntity{},
				Hotels:     []models.HotelEntity{{ID: "orphan-1", Name: "Orphan"}},
			}),
		},
		{
			"duplicate entry id",
			marshal(models.TaggerOutput{
				MarkedText: `<hotel id="dup-1" context="x" dates="d">Dup</hotel>`,
				Places:     []models.PlaceEntity{},
				Transport:  []models.TransportEntity{},
				Hotels:     []models.HotelEntity{{ID: "dup-1"}, {ID: "dup-1"}},
			}),
		},
		{
			"malformed tag id",
			marshal(models.TaggerOutput{
				MarkedText: `<hotel id="Bad_ID" context="x" dates="d">Bad</hotel>`,
				Places:     []models.PlaceEntity{},
				Transport:  []models.TransportEntity{},
				Hotels:     []models.HotelEntity{{ID: "Bad_ID"}},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: tt.response}
			tg := New(gen, zap.NewNop())

			out, err := tg.Run(context.Background(), "text", "")
			assert.Error(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestTaggerFlightAndTransportTagsShareList(t *testing.T) {
	out := models.TaggerOutput{
		MarkedText: `<flight id="f-1" route="A-B" dates="d" class="">flight</flight> and <transport id="t-1">shuttle</transport>`,
		Places:     []models.PlaceEntity{},
		Transport: []models.TransportEntity{
			{ID: "f-1", Name: "flight", Type: models.TransportFlight},
			{ID: "t-1", Name: "shuttle", Type: models.TransportTransfer},
		},
		Hotels: []models.HotelEntity{},
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)

	gen := &fakeGenerator{response: string(b)}
	tg := New(gen, zap.NewNop())

	got, err := tg.Run(context.Background(), "text", "")
	require.NoError(t, err)
	assert.Len(t, got.Transport, 2)
}
