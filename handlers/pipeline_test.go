package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voyago/models"
	"voyago/services/generation"
	"voyago/services/pipeline"
	"voyago/services/resolver"
	"voyago/services/tagger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct{ response string }

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	return f.response, nil
}

type fakeFlights struct{}

func (fakeFlights) SearchFlights(ctx context.Context, params models.FlightSearchParams) ([]models.FlightOffer, error) {
	return []models.FlightOffer{{ID: "offer-1", Price: models.Price{Total: "420.00", Currency: "EUR"}}}, nil
}

type fakeHotels struct{}

func (fakeHotels) SearchHotels(ctx context.Context, params models.HotelSearchParams) ([]models.HotelOffer, error) {
	return []models.HotelOffer{{HotelID: "h1", Name: "Plaza", Price: models.Price{Total: "950.00", Currency: "EUR"}, Available: true}}, nil
}

func taggedJSON(t *testing.T) string {
	t.Helper()
	checkIn := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 0, 17).Format("2006-01-02")
	out := models.TaggerOutput{
		MarkedText: `Stay at <hotel id="plaza-1" context="Paris France" dates="` + checkIn + `:` + checkOut + `">Plaza</hotel>.`,
		Places:     []models.PlaceEntity{},
		Transport:  []models.TransportEntity{},
		Hotels: []models.HotelEntity{
			{ID: "plaza-1", Name: "Plaza", Location: "Paris France", CheckInDate: checkIn, CheckOutDate: checkOut, Guests: 2, Rooms: 1},
		},
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	return string(b)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	svc := pipeline.NewService(
		generation.NewContentGenerator(&fakeGenerator{response: taggedJSON(t)}, logger),
		tagger.New(&fakeGenerator{response: taggedJSON(t)}, logger),
		&resolver.TransportResolver{Provider: fakeFlights{}, Logger: logger},
		&resolver.HotelResolver{Provider: fakeHotels{}, Cities: resolver.DefaultCityCodes(), Logger: logger},
	)

	h := &PipelineHandler{Service: svc, Logger: logger}
	r := gin.New()
	r.POST("/api/pipeline/run", h.Run)
	r.POST("/api/pipeline/tag", h.Tag)
	return r
}

func TestPipelineRunEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"text":"Stay at Plaza.","lookupRequirements":"LOOKUP_REQUIREMENTS:\n- HOTEL: Plaza"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.PipelineResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.HotelMap, 1)
	assert.False(t, result.HotelMap["Plaza"].NotFound)
	assert.NotEmpty(t, result.Segments)
}

func TestPipelineRunEndpointRejectsEmptyBody(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPipelineTagEndpointRequiresText(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pipeline/tag", strings.NewReader(`{"query":"plan a trip"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
