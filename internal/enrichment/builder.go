package enrichment

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lensvault/backend/internal/domain"
)

// searchTagChecks define feature tags inferred from text presence, in the
// order tags appear on a record.
var searchTagChecks = []struct {
	tag   string
	match func(text string) bool
}{
	{"zoom", containsAny("zoom")},
	{"macro", containsAny("macro")},
	{"stabilization", containsAny("stabilization", "image stabilizer")},
	{"touchscreen", containsAll("touch", "screen")},
	{"wifi", containsAny("wifi", "wireless")},
	{"bluetooth", containsAny("bluetooth")},
	{"4k", containsAny("4k")},
	{"full-hd", containsAny("full hd", "1080")},
}

// categoryTagChecks tag a record from its category label.
var categoryTagChecks = []struct {
	tag   string
	match string
}{
	{"digital", "digital"},
	{"film", "film"},
	{"dslr", "dslr"},
	{"compact", "compact"},
}

func containsAny(terms ...string) func(string) bool {
	return func(text string) bool {
		for _, t := range terms {
			if strings.Contains(text, t) {
				return true
			}
		}
		return false
	}
}

func containsAll(terms ...string) func(string) bool {
	return func(text string) bool {
		for _, t := range terms {
			if !strings.Contains(text, t) {
				return false
			}
		}
		return true
	}
}

// SearchableText flattens every textual field of a product into one
// lower-cased string: name, description, specification values, regional
// names and marketing date. Specification values are joined in sorted key
// order so the result is deterministic.
func SearchableText(raw domain.RawProduct) string {
	specValues := make([]string, 0, len(raw.Specifications))
	for _, key := range sortedKeys(raw.Specifications) {
		specValues = append(specValues, raw.Specifications[key])
	}

	parts := []string{
		raw.Name,
		raw.Description,
		strings.Join(specValues, " "),
		strings.Join(raw.Names.Values(), " "),
		raw.MarketedDate,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Build enriches a single raw product. It is a pure function of its input:
// identical raw products always yield identical records, and it never
// fails: missing or malformed source text degrades to empty fields.
func Build(raw domain.RawProduct) domain.EnrichedRecord {
	searchable := SearchableText(raw)

	specs := domain.SmartSpecs{
		Megapixels:    ExtractNumericField(megapixelRule, raw.Specifications, searchable),
		SensorSize:    ExtractSensorSize(raw.Specifications, searchable),
		SensorType:    ExtractSensorType(searchable),
		LensSpecs:     ExtractLensSpecs(searchable),
		ISORange:      ExtractISORange(searchable),
		VideoSpecs:    ExtractVideoSpecs(searchable),
		PhysicalSpecs: ExtractPhysicalSpecs(searchable),
		DeviceType:    CategorizeDevice(raw.Category, raw.Name),
		Era:           DetermineEra(raw.MarketedDate),
		SearchTags:    buildSearchTags(raw.Category, searchable),
	}

	return domain.EnrichedRecord{
		RawProduct:     raw,
		SmartSpecs:     specs,
		SearchableText: searchable,
	}
}

func buildSearchTags(category, searchable string) []string {
	var tags []string
	seen := make(map[string]bool)

	categoryLower := strings.ToLower(category)
	for _, check := range categoryTagChecks {
		if strings.Contains(categoryLower, check.match) && !seen[check.tag] {
			seen[check.tag] = true
			tags = append(tags, check.tag)
		}
	}

	for _, check := range searchTagChecks {
		if check.match(searchable) && !seen[check.tag] {
			seen[check.tag] = true
			tags = append(tags, check.tag)
		}
	}
	return tags
}

// EnrichAll builds enriched records for a full raw dataset and stamps each
// with the run time. This is the batch entry point called once per corpus
// refresh.
func EnrichAll(rawProducts []domain.RawProduct) []domain.EnrichedRecord {
	enhanced := time.Now().UTC().Format(time.RFC3339)
	records := make([]domain.EnrichedRecord, 0, len(rawProducts))

	for i, raw := range rawProducts {
		record := Build(raw)
		record.LastEnhanced = enhanced
		records = append(records, record)

		if (i+1)%50 == 0 {
			log.Printf("[ENRICH] Processed %d/%d products", i+1, len(rawProducts))
		}
	}
	return records
}

// BuildDatasetStatistics summarizes an enrichment run for persistence
// alongside the records.
func BuildDatasetStatistics(records []domain.EnrichedRecord) domain.DatasetStatistics {
	stats := domain.DatasetStatistics{
		MegapixelDistribution:  make(map[string]int),
		SensorSizeDistribution: make(map[string]int),
	}

	seenCategories := make(map[string]bool)
	seenEras := make(map[string]bool)

	for _, record := range records {
		smart := record.SmartSpecs

		if smart.Megapixels.Primary != nil {
			stats.MegapixelProducts++
			bucket := strconv.Itoa(int(*smart.Megapixels.Primary))
			stats.MegapixelDistribution[bucket]++
		}

		if smart.SensorSize.Primary != nil {
			stats.SensorProducts++
			stats.SensorSizeDistribution[*smart.SensorSize.Primary]++
		}

		if len(smart.LensSpecs.FocalLength) > 0 {
			stats.LensProducts++
		}

		if !seenCategories[record.Category] {
			seenCategories[record.Category] = true
			stats.Categories = append(stats.Categories, record.Category)
		}
		if !seenEras[smart.Era] {
			seenEras[smart.Era] = true
			stats.Eras = append(stats.Eras, smart.Era)
		}
	}

	return stats
}
