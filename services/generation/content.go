// File: services/generation/content.go
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voyago/models"

	"go.uber.org/zap"
)

// requirementsMarker separates the prose from the machine-readable lookup
// block in the model's response.
const requirementsMarker = "LOOKUP_REQUIREMENTS:"

const contentSystemPrompt = `You are a travel planning assistant. Generate natural, helpful travel recommendations.

Your response has TWO parts:

1. NATURAL LANGUAGE SECTION - Friendly, detailed travel advice. Be specific about flight routes and dates, hotel locations with neighborhoods, restaurant names with location context, and activities.

2. LOOKUP_REQUIREMENTS SECTION - At the end, add a structured section starting with "LOOKUP_REQUIREMENTS:" listing every item that needs an availability or place lookup.

Format for LOOKUP_REQUIREMENTS:
- FLIGHT: [name], origin: [IATA], destination: [IATA], departure: [YYYY-MM-DD], return: [YYYY-MM-DD or one-way], adults: [number], class: [ECONOMY/BUSINESS/FIRST]
- HOTEL: [name], location: [full location with district], check-in: [YYYY-MM-DD], check-out: [YYYY-MM-DD], guests: [number], rooms: [number]
- PLACE: [name], location: [full location with district], type: [Restaurant/Museum/Attraction/etc]

DATE RULES:
- Today is %s
- Always use concrete future dates in YYYY-MM-DD format, 1-30 days out when the user gives none

LOCATION CONTEXT RULES:
- Always include city, country, and district/neighborhood when known: "Paris France 8th arrondissement"
- Never output a bare city name as a location`

// ContentGenerator runs the first pipeline stage: it turns a user query into
// prose plus the structured lookup-requirements block the tagger consumes.
type ContentGenerator struct {
	gen    Generator
	logger *zap.Logger
}

func NewContentGenerator(gen Generator, logger *zap.Logger) *ContentGenerator {
	return &ContentGenerator{gen: gen, logger: logger}
}

// Generate produces travel content for the query. A provider failure here is
// fatal for the invocation: without content there is nothing to enrich.
func (c *ContentGenerator) Generate(ctx context.Context, query string, tripCtx *models.TripContext) (*models.GenerationOutput, error) {
	prompt := query
	if tripCtx != nil {
		if tripCtx.StartDate != "" && tripCtx.EndDate != "" {
			prompt += fmt.Sprintf("\nTrip dates: %s to %s", tripCtx.StartDate, tripCtx.EndDate)
		}
	}

	system := fmt.Sprintf(contentSystemPrompt, time.Now().Format("2006-01-02"))

	text, err := c.gen.Generate(ctx, system, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("content generation failed: %w", err)
	}

	out := splitGeneratedContent(text)
	c.logger.Info("content generation complete",
		zap.Int("textLen", len(out.Text)),
		zap.Int("requirementsLen", len(out.LookupRequirements)))
	return out, nil
}

// splitGeneratedContent separates the prose from the lookup-requirements
// block. A response without the marker still flows through; the tagger then
// sees an empty requirements block and emits no entities.
func splitGeneratedContent(text string) *models.GenerationOutput {
	out := &models.GenerationOutput{Text: text}

	idx := strings.Index(text, requirementsMarker)
	if idx < 0 {
		out.NaturalLanguage = strings.TrimSpace(text)
		return out
	}

	out.NaturalLanguage = strings.TrimSpace(text[:idx])
	out.LookupRequirements = strings.TrimSpace(text[idx:])
	return out
}
