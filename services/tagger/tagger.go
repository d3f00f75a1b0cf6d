// File: services/tagger/tagger.go
package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"voyago/models"
	"voyago/services/generation"
	"voyago/services/segments"

	"go.uber.org/zap"
)

const systemPrompt = `You are a structured data extraction assistant. You take natural language travel content with a LOOKUP_REQUIREMENTS block, mark up entities with inline XML tags carrying context attributes, and emit three entity lists for API lookups.

OUTPUT FORMAT - return valid JSON only (no markdown, no code fences):

{
  "markedText": "text with XML tags",
  "places": [...],
  "transport": [...],
  "hotels": [...]
}

XML TAG FORMATS:

<place id="unique-id" context="full location context" type="category">Display Name</place>
<hotel id="unique-id" context="full location context" dates="YYYY-MM-DD:YYYY-MM-DD">Display Name</hotel>
<flight id="unique-id" route="XXX-YYY" dates="YYYY-MM-DD:YYYY-MM-DD" class="ECONOMY">Display Name</flight>

RULES:

1. IDs must be unique, lowercase, hyphenated (e.g., "le-meurice-1", "jfk-cdg-flight")
2. The context attribute MUST include city, country, and district/neighborhood when available
3. Wrap the EXACT text that appears in the natural language section
4. Every item in LOOKUP_REQUIREMENTS must appear both as an XML tag AND in the matching list, joined by id

ENTITY LIST FIELDS:

places: id, name, context, type, searchQuery
transport: id, name, type (Flight/Transfer/Train/Bus), origin, destination, departureDate, returnDate, adults, travelClass
hotels: id, name, context, location, checkInDate, checkOutDate, guests, rooms, searchQuery

Build searchQuery by combining name + type + context. Parse dates from LOOKUP_REQUIREMENTS carefully. Items without dates never go in the hotels/transport arrays.`

var idPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Tagger runs the entity tagging stage. Unlike the resolvers, any malformed
// output here is fatal: downstream correctness depends entirely on the
// tag/entity consistency this stage guarantees, so errors propagate instead
// of being patched.
type Tagger struct {
	gen    generation.Generator
	logger *zap.Logger
}

func New(gen generation.Generator, logger *zap.Logger) *Tagger {
	return &Tagger{gen: gen, logger: logger}
}

// Run tags the natural-language text according to the lookup requirements
// and returns the marked text plus the three typed entity lists.
func (t *Tagger) Run(ctx context.Context, naturalText, lookupRequirements string) (*models.TaggerOutput, error) {
	prompt := naturalText + "\n\n" + lookupRequirements

	raw, err := t.gen.Generate(ctx, systemPrompt, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("entity tagging call failed: %w", err)
	}

	out, err := parseOutput(raw)
	if err != nil {
		t.logger.Error("entity tagging returned malformed output",
			zap.Error(err),
			zap.String("preview", preview(raw, 300)))
		return nil, err
	}

	if err := validateConsistency(out); err != nil {
		return nil, err
	}

	t.logger.Info("entity tagging complete",
		zap.Int("markedTextLen", len(out.MarkedText)),
		zap.Int("places", len(out.Places)),
		zap.Int("transport", len(out.Transport)),
		zap.Int("hotels", len(out.Hotels)))
	return out, nil
}

// parseOutput strictly decodes the model response. Missing top-level fields
// are structural errors, never defaulted.
func parseOutput(raw string) (*models.TaggerOutput, error) {
	cleaned := stripCodeFences(raw)

	var parsed struct {
		MarkedText *string                   `json:"markedText"`
		Places     *[]models.PlaceEntity     `json:"places"`
		Transport  *[]models.TransportEntity `json:"transport"`
		Hotels     *[]models.HotelEntity     `json:"hotels"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("tagger output is not valid JSON: %w", err)
	}
	if parsed.MarkedText == nil || *parsed.MarkedText == "" {
		return nil, fmt.Errorf("tagger output missing markedText")
	}
	if parsed.Places == nil || parsed.Transport == nil || parsed.Hotels == nil {
		return nil, fmt.Errorf("tagger output missing entity lists")
	}

	return &models.TaggerOutput{
		MarkedText: *parsed.MarkedText,
		Places:     *parsed.Places,
		Transport:  *parsed.Transport,
		Hotels:     *parsed.Hotels,
	}, nil
}

// validateConsistency enforces the tag/entity bijection: every inline tag id
// must have exactly one list entry of the matching kind, and vice versa.
// Divergence is a structural defect of the tagging stage, not a recoverable
// runtime state.
func validateConsistency(out *models.TaggerOutput) error {
	tagIDs := segments.TagIDs(out.MarkedText)

	listIDs := map[string][]string{}
	for _, p := range out.Places {
		listIDs["place"] = append(listIDs["place"], p.ID)
	}
	for _, tr := range out.Transport {
		listIDs["transport"] = append(listIDs["transport"], tr.ID)
	}
	for _, h := range out.Hotels {
		listIDs["hotel"] = append(listIDs["hotel"], h.ID)
	}

	// flight and transport tags both describe transport entities.
	transportTags := append(append([]string{}, tagIDs["flight"]...), tagIDs["transport"]...)

	if err := matchIDs("place", tagIDs["place"], listIDs["place"]); err != nil {
		return err
	}
	if err := matchIDs("transport", transportTags, listIDs["transport"]); err != nil {
		return err
	}
	if err := matchIDs("hotel", tagIDs["hotel"], listIDs["hotel"]); err != nil {
		return err
	}
	return nil
}

func matchIDs(kind string, tags, entries []string) error {
	tagSet := make(map[string]int, len(tags))
	for _, id := range tags {
		if !idPattern.MatchString(id) {
			return fmt.Errorf("tagger produced malformed %s id %q", kind, id)
		}
		tagSet[id]++
	}
	entrySet := make(map[string]int, len(entries))
	for _, id := range entries {
		entrySet[id]++
	}

	for id, n := range tagSet {
		if n > 1 {
			return fmt.Errorf("tagger produced duplicate %s tag id %q", kind, id)
		}
		if entrySet[id] == 0 {
			return fmt.Errorf("inline %s tag %q has no matching list entry", kind, id)
		}
	}
	for id, n := range entrySet {
		if n > 1 {
			return fmt.Errorf("tagger produced duplicate %s entry id %q", kind, id)
		}
		if tagSet[id] == 0 {
			return fmt.Errorf("%s entry %q has no matching inline tag", kind, id)
		}
	}
	return nil
}

// stripCodeFences removes markdown fences some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
