package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/lensvault/backend/internal/domain"
	"github.com/lensvault/backend/internal/enrichment"
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	EnableDebugLogging bool
}

// SearchService evaluates filter criteria against the enriched corpus.
// Each call reads one immutable snapshot; result structures are allocated
// per call and never shared.
type SearchService struct {
	corpus             domain.Corpus
	enableDebugLogging bool
}

// NewSearchService creates a search service backed by the given corpus
func NewSearchService(corpus domain.Corpus, config SearchConfig) *SearchService {
	return &SearchService{
		corpus:             corpus,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search applies every present clause of the criteria as an independent
// filter; the result is their conjunction in original corpus order. An
// empty criteria returns the whole corpus. Facets and statistics are
// computed over the filtered set.
func (s *SearchService) Search(ctx context.Context, filters domain.FilterCriteria) (*domain.SearchResult, error) {
	all, err := s.corpus.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("corpus snapshot: %w", err)
	}

	filtered := make([]domain.EnrichedRecord, 0, len(all))
	for _, record := range all {
		if matchesCriteria(record, filters) {
			filtered = append(filtered, record)
		}
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %d/%d records matched", len(filtered), len(all))
	}

	return &domain.SearchResult{
		Products:   filtered,
		Total:      len(filtered),
		Filters:    buildFilterOptions(filtered),
		Statistics: buildStatistics(all, filtered),
	}, nil
}

// FilterOptions returns the unconstrained facets, used to populate UI
// filter controls.
func (s *SearchService) FilterOptions(ctx context.Context) (*domain.SearchResult, error) {
	return s.Search(ctx, domain.FilterCriteria{})
}

// GetProduct looks a single record up by id.
func (s *SearchService) GetProduct(ctx context.Context, id string) (*domain.EnrichedRecord, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.corpus.Get(ctx, id)
}

// Statistics summarizes the whole corpus.
func (s *SearchService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	all, err := s.corpus.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("corpus snapshot: %w", err)
	}
	stats := buildStatistics(all, all)
	return &stats, nil
}

func matchesCriteria(record domain.EnrichedRecord, filters domain.FilterCriteria) bool {
	if filters.Search != "" && !matchesText(record, filters.Search, filters.Operators.Text) {
		return false
	}
	if len(filters.Categories) > 0 && !containsString(filters.Categories, record.Category) {
		return false
	}
	if len(filters.DeviceTypes) > 0 && !containsString(filters.DeviceTypes, record.SmartSpecs.DeviceType) {
		return false
	}
	if len(filters.Eras) > 0 && !containsString(filters.Eras, record.SmartSpecs.Era) {
		return false
	}
	if filters.Megapixels != nil && !matchesMegapixels(record, *filters.Megapixels, filters.Operators.Megapixels) {
		return false
	}
	if len(filters.SensorSizes) > 0 && !matchesSensorSize(record, filters.SensorSizes, filters.Operators.Sensor) {
		return false
	}
	if len(filters.SensorTypes) > 0 && !matchesSensorType(record, filters.SensorTypes) {
		return false
	}
	if len(filters.SearchTags) > 0 && !matchesSearchTags(record, filters.SearchTags) {
		return false
	}
	if (filters.FocalLengthMin != nil || filters.FocalLengthMax != nil) &&
		!matchesFocalLength(record, filters.FocalLengthMin, filters.FocalLengthMax) {
		return false
	}
	if filters.HasZoom != nil && record.SmartSpecs.HasZoom() != *filters.HasZoom {
		return false
	}
	if (filters.MarketedAfter != "" || filters.MarketedBefore != "") &&
		!matchesMarketedDate(record, filters.MarketedAfter, filters.MarketedBefore) {
		return false
	}
	if len(filters.DataQuality) > 0 && !containsString(filters.DataQuality, record.DataQuality) {
		return false
	}
	return true
}

func matchesText(record domain.EnrichedRecord, term, operator string) bool {
	term = strings.ToLower(term)
	name := strings.ToLower(record.Name)
	text := record.SearchableText

	switch operator {
	case domain.TextOpExact:
		return name == term || strings.Contains(text, term)
	case domain.TextOpStartsWith:
		return strings.HasPrefix(name, term)
	case domain.TextOpEndsWith:
		return strings.HasSuffix(name, term)
	default: // contains
		return strings.Contains(text, term) || strings.Contains(name, term)
	}
}

// matchesMegapixels compares the record's primary megapixel value. A
// record with no extracted megapixels never passes a megapixel clause.
func matchesMegapixels(record domain.EnrichedRecord, filter domain.MegapixelFilter, operator string) bool {
	primary := record.SmartSpecs.Megapixels.Primary
	if primary == nil {
		return false
	}
	mp := *primary

	if filter.Exact != nil {
		switch operator {
		case domain.MPOpGreater:
			return mp > *filter.Exact
		case domain.MPOpLess:
			return mp < *filter.Exact
		case "", domain.MPOpEquals:
			return mp == *filter.Exact
		default:
			// "between" needs min/max, not exact
			return false
		}
	}

	if filter.Min != nil && mp < *filter.Min {
		return false
	}
	if filter.Max != nil && mp > *filter.Max {
		return false
	}
	if len(filter.Values) > 0 && !containsFloat(filter.Values, mp) {
		return false
	}
	return true
}

func matchesSensorSize(record domain.EnrichedRecord, sizes []string, operator string) bool {
	primary := record.SmartSpecs.SensorSize.Primary
	if primary == nil {
		return false
	}
	primaryLower := strings.ToLower(*primary)

	for _, size := range sizes {
		if operator == domain.SensorOpExact {
			if *primary == size {
				return true
			}
			continue
		}
		// contains (default): substring match against primary or any detected token
		sizeLower := strings.ToLower(size)
		if strings.Contains(primaryLower, sizeLower) {
			return true
		}
		for _, detected := range record.SmartSpecs.SensorSize.Detected {
			if strings.Contains(strings.ToLower(detected), sizeLower) {
				return true
			}
		}
	}
	return false
}

func matchesSensorType(record domain.EnrichedRecord, types []string) bool {
	for _, filterType := range types {
		filterLower := strings.ToLower(filterType)
		for _, sensorType := range record.SmartSpecs.SensorType {
			if strings.Contains(strings.ToLower(sensorType), filterLower) {
				return true
			}
		}
	}
	return false
}

func matchesSearchTags(record domain.EnrichedRecord, tags []string) bool {
	for _, tag := range tags {
		if containsString(record.SmartSpecs.SearchTags, tag) {
			return true
		}
	}
	return false
}

// matchesFocalLength passes a record when any of its focal-length entries
// overlaps the requested range. Bounds are optional and inclusive.
func matchesFocalLength(record domain.EnrichedRecord, min, max *float64) bool {
	lenses := record.SmartSpecs.LensSpecs.FocalLength
	if len(lenses) == 0 {
		return false
	}

	for _, lens := range lenses {
		effMin, effMax := lens.EffectiveRange()
		if min != nil && effMax < *min {
			continue
		}
		if max != nil && effMin > *max {
			continue
		}
		return true
	}
	return false
}

// matchesMarketedDate excludes records with no parsable year outright;
// bounds are inclusive year comparisons.
func matchesMarketedDate(record domain.EnrichedRecord, after, before string) bool {
	year := enrichment.MarketedYear(record.MarketedDate)
	if year == 0 {
		return false
	}

	if after != "" {
		if bound, err := strconv.Atoi(after); err == nil && year < bound {
			return false
		}
	}
	if before != "" {
		if bound, err := strconv.Atoi(before); err == nil && year > bound {
			return false
		}
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsFloat(haystack []float64, needle float64) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
