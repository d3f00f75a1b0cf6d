// File: services/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"voyago/models"
	"voyago/services/generation"
	"voyago/services/resolver"
	"voyago/services/segments"
	"voyago/services/tagger"
	"voyago/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyRequest is returned when a request carries neither a query to
// generate from nor pre-generated text to tag.
var ErrEmptyRequest = errors.New("pipeline: request needs a query or text")

// Service runs the full resolution pipeline: optional content generation,
// entity tagging, parallel availability resolution, and segment assembly.
// Tagging failures abort the run; resolution failures never do.
type Service struct {
	generator *generation.ContentGenerator
	tagger    *tagger.Tagger
	transport *resolver.TransportResolver
	hotels    *resolver.HotelResolver
	logger    *zap.Logger
}

func NewService(gen *generation.ContentGenerator, tag *tagger.Tagger, transport *resolver.TransportResolver, hotels *resolver.HotelResolver) *Service {
	return &Service{
		generator: gen,
		tagger:    tag,
		transport: transport,
		hotels:    hotels,
		logger:    utils.GetLogger().Named("pipeline"),
	}
}

// Run executes the pipeline for one request and returns the fully assembled
// result. The input text and tag structure pass through to the output
// segments byte-for-byte outside the tags themselves.
func (s *Service) Run(ctx context.Context, req models.PipelineRequest) (*models.PipelineResult, error) {
	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("requestId", requestID))

	text := req.Text
	requirements := req.LookupRequirements

	result := &models.PipelineResult{}

	if req.Query != "" {
		start := time.Now()
		gen, err := s.generator.Generate(ctx, req.Query, req.TripContext)
		if err != nil {
			logger.Error("content generation failed", zap.Error(err))
			return nil, err
		}
		result.Generated = gen
		result.Timings.GenerationMS = time.Since(start).Milliseconds()
		text = gen.NaturalLanguage
		requirements = gen.LookupRequirements
	}
	if text == "" {
		return nil, ErrEmptyRequest
	}

	tagStart := time.Now()
	tagged, err := s.tagger.Run(ctx, text, requirements)
	if err != nil {
		logger.Error("entity tagging failed", zap.Error(err))
		return nil, err
	}
	result.Tagged = tagged
	result.Timings.TaggingMS = time.Since(tagStart).Milliseconds()
	logger.Info("entities tagged",
		zap.Int("places", len(tagged.Places)),
		zap.Int("transport", len(tagged.Transport)),
		zap.Int("hotels", len(tagged.Hotels)))

	resolveStart := time.Now()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.TransportMap = s.transport.ResolveBatch(ctx, tagged.Transport)
	}()
	go func() {
		defer wg.Done()
		result.HotelMap = s.hotels.ResolveBatch(ctx, tagged.Hotels, req.TripContext, req.Profile)
	}()
	wg.Wait()
	result.Timings.ResolutionMS = time.Since(resolveStart).Milliseconds()
	result.Stats = stats(result.TransportMap, result.HotelMap)

	mergeStart := time.Now()
	result.Segments = segments.Merge(tagged.MarkedText, tagged, result.TransportMap, result.HotelMap)
	result.Timings.MergeMS = time.Since(mergeStart).Milliseconds()

	logger.Info("pipeline complete",
		zap.Int("segments", len(result.Segments)),
		zap.Int("transportResolved", result.Stats.TransportResolved),
		zap.Int("hotelsResolved", result.Stats.HotelsResolved))
	return result, nil
}

func stats(transport models.TransportDataMap, hotels models.HotelDataMap) models.ResolutionStats {
	var s models.ResolutionStats
	for _, d := range transport {
		if d.NotFound {
			s.TransportFailed++
		} else {
			s.TransportResolved++
		}
	}
	for _, d := range hotels {
		if d.NotFound {
			s.HotelsFailed++
		} else {
			s.HotelsResolved++
		}
	}
	return s
}
