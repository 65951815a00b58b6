package usecase

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lensvault/backend/internal/domain"
)

const topCategoryCount = 5

// buildFilterOptions computes facet counts over the filtered result set.
// Each dimension lists the distinct values that actually appear, with
// per-value counts.
func buildFilterOptions(filtered []domain.EnrichedRecord) domain.FilterOptions {
	var categories, megapixels, sensorSizes, sensorTypes, eras, deviceTypes, features []string

	for _, record := range filtered {
		categories = append(categories, record.Category)
		eras = append(eras, record.SmartSpecs.Era)
		deviceTypes = append(deviceTypes, record.SmartSpecs.DeviceType)
		sensorTypes = append(sensorTypes, record.SmartSpecs.SensorType...)
		features = append(features, record.SmartSpecs.SearchTags...)

		if mp := record.SmartSpecs.Megapixels.Primary; mp != nil {
			megapixels = append(megapixels, megapixelLabel(*mp))
		}
		if size := record.SmartSpecs.SensorSize.Primary; size != nil {
			sensorSizes = append(sensorSizes, *size)
		}
	}

	return domain.FilterOptions{
		Categories:  countOptions(categories, false),
		Megapixels:  countOptions(megapixels, true),
		SensorSizes: countOptions(sensorSizes, false),
		SensorTypes: countOptions(sensorTypes, false),
		Eras:        countOptions(eras, false),
		DeviceTypes: countOptions(deviceTypes, false),
		Features:    countOptions(features, false),
	}
}

// countOptions tallies distinct values. Megapixel facets sort by numeric
// value descending; everything else sorts by count descending with
// alphabetical tie-break.
func countOptions(values []string, numericMegapixels bool) []domain.FilterOption {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	options := make([]domain.FilterOption, 0, len(counts))
	for value, count := range counts {
		options = append(options, domain.FilterOption{Value: value, Label: value, Count: count})
	}

	sort.Slice(options, func(i, j int) bool {
		if numericMegapixels {
			return megapixelValue(options[i].Value) > megapixelValue(options[j].Value)
		}
		if options[i].Count != options[j].Count {
			return options[i].Count > options[j].Count
		}
		return options[i].Value < options[j].Value
	})
	return options
}

// buildStatistics summarizes the filtered set against the full corpus:
// mean primary megapixels (1 decimal), megapixel range, and the top
// categories of the filtered set.
func buildStatistics(all, filtered []domain.EnrichedRecord) domain.Statistics {
	var megapixels []float64
	var categories []string

	for _, record := range filtered {
		categories = append(categories, record.Category)
		if mp := record.SmartSpecs.Megapixels.Primary; mp != nil {
			megapixels = append(megapixels, *mp)
		}
	}

	stats := domain.Statistics{
		TotalProducts: len(all),
		FilteredCount: len(filtered),
	}

	if len(megapixels) > 0 {
		sum := 0.0
		min, max := megapixels[0], megapixels[0]
		for _, mp := range megapixels {
			sum += mp
			if mp < min {
				min = mp
			}
			if mp > max {
				max = mp
			}
		}
		stats.AverageMegapixels = math.Round(sum/float64(len(megapixels))*10) / 10
		stats.MegapixelRange = domain.MegapixelRange{Min: min, Max: max}
	}

	topCategories := countOptions(categories, false)
	if len(topCategories) > topCategoryCount {
		topCategories = topCategories[:topCategoryCount]
	}
	stats.TopCategories = topCategories

	return stats
}

func megapixelLabel(mp float64) string {
	return strconv.FormatFloat(mp, 'f', -1, 64) + "MP"
}

func megapixelValue(label string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(label, "MP"), 64)
	if err != nil {
		return 0
	}
	return v
}
