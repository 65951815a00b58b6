package enrichment

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lensvault/backend/internal/domain"
)

// Context snippet bounds around a match, in bytes.
const (
	contextBefore = 20
	contextAfter  = 50
)

// ExtractNumericField applies a numeric rule to the structured
// specification map first (field-scoped, provenance "spec.<key>") and then
// to the flattened searchable text (provenance "description"). All
// patterns contribute candidates; duplicates are removed by exact value
// equality. Absent or empty text yields empty values and a nil primary,
// never an error. Malformed numeric captures are skipped per-occurrence.
func ExtractNumericField(rule NumericFieldRule, specs map[string]string, searchable string) domain.MegapixelField {
	var details []domain.MegapixelDetail

	for _, key := range sortedKeys(specs) {
		value := specs[key]
		details = appendNumericMatches(details, rule, value, "spec."+key)
	}
	details = appendNumericMatches(details, rule, searchable, "description")

	seen := make(map[float64]bool)
	var values []float64
	for _, d := range details {
		if !seen[d.Value] {
			seen[d.Value] = true
			values = append(values, d.Value)
		}
	}

	field := domain.MegapixelField{Values: values, Details: details}
	if len(values) > 0 {
		selector := rule.Primary
		if selector == nil {
			selector = firstOf
		}
		primary := selector(values)
		field.Primary = &primary
		if rule.SortDesc {
			sort.Sort(sort.Reverse(sort.Float64Slice(field.Values)))
		}
	}
	return field
}

func appendNumericMatches(details []domain.MegapixelDetail, rule NumericFieldRule, text, source string) []domain.MegapixelDetail {
	if text == "" {
		return details
	}
	for _, pattern := range rule.Patterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			if loc[2] < 0 {
				continue
			}
			v, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			if err != nil || (rule.Plausible != nil && !rule.Plausible(v)) {
				continue
			}
			details = append(details, domain.MegapixelDetail{
				Value:   v,
				Source:  source,
				Context: contextSnippet(text, loc[0]),
			})
		}
	}
	return details
}

// ExtractSensorSize collects sensor-size mentions from the specification
// map and the searchable text, canonicalizing each raw match. Detected
// holds unique canonical tokens in scan order; primary is the first match.
func ExtractSensorSize(specs map[string]string, searchable string) domain.SensorSizeField {
	var details []domain.SensorSizeDetail

	for _, key := range sortedKeys(specs) {
		details = appendSensorSizeMatches(details, specs[key], "spec."+key)
	}
	details = appendSensorSizeMatches(details, searchable, "extracted")

	seen := make(map[string]bool)
	var detected []string
	for _, d := range details {
		if !seen[d.Standardized] {
			seen[d.Standardized] = true
			detected = append(detected, d.Standardized)
		}
	}

	field := domain.SensorSizeField{Detected: detected, Details: details}
	if len(details) > 0 {
		primary := details[0].Standardized
		field.Primary = &primary
	}
	return field
}

func appendSensorSizeMatches(details []domain.SensorSizeDetail, text, source string) []domain.SensorSizeDetail {
	if text == "" {
		return details
	}
	for _, pattern := range sensorSizePatterns {
		for _, raw := range pattern.FindAllString(text, -1) {
			details = append(details, domain.SensorSizeDetail{
				Raw:          raw,
				Standardized: StandardizeSensorSize(raw),
				Source:       source,
			})
		}
	}
	return details
}

// ExtractSensorType returns the unique lower-cased sensor technology
// tokens found in the text (ccd, cmos, bsi, ...).
func ExtractSensorType(searchable string) []string {
	seen := make(map[string]bool)
	var types []string
	for _, pattern := range sensorTypePatterns {
		for _, m := range pattern.FindAllStringSubmatch(searchable, -1) {
			t := strings.ToLower(m[1])
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	return types
}

// ExtractLensSpecs collects every focal-length and aperture mention. A
// product page may describe several lens variants, so all entries are kept.
func ExtractLensSpecs(searchable string) domain.LensSpecs {
	specs := domain.LensSpecs{}

	for _, pattern := range focalLengthPatterns {
		for _, m := range pattern.FindAllStringSubmatch(searchable, -1) {
			first, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if len(m) > 2 && m[2] != "" {
				second, err := strconv.ParseFloat(m[2], 64)
				if err != nil {
					continue
				}
				specs.FocalLength = append(specs.FocalLength, domain.FocalLength{
					Min: first, Max: second, Type: domain.LensTypeZoom,
				})
			} else {
				specs.FocalLength = append(specs.FocalLength, domain.FocalLength{
					Value: first, Type: domain.LensTypePrime,
				})
			}
		}
	}

	for _, pattern := range aperturePatterns {
		for _, m := range pattern.FindAllStringSubmatch(searchable, -1) {
			first, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if len(m) > 2 && m[2] != "" {
				second, err := strconv.ParseFloat(m[2], 64)
				if err != nil {
					continue
				}
				specs.Aperture = append(specs.Aperture, domain.Aperture{Wide: first, Tele: second})
			} else {
				specs.Aperture = append(specs.Aperture, domain.Aperture{Value: first})
			}
		}
	}

	return specs
}

// ExtractISORange collects ISO sensitivity mentions, ranges and single
// values alike.
func ExtractISORange(searchable string) []domain.ISORange {
	var ranges []domain.ISORange
	for _, pattern := range isoPatterns {
		for _, m := range pattern.FindAllStringSubmatch(searchable, -1) {
			first, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if len(m) > 2 && m[2] != "" {
				second, err := strconv.Atoi(m[2])
				if err != nil {
					continue
				}
				ranges = append(ranges, domain.ISORange{Min: first, Max: second})
			} else {
				ranges = append(ranges, domain.ISORange{Value: first})
			}
		}
	}
	return ranges
}

// ExtractVideoSpecs collects video format mentions and classifies the best
// one into a resolution tier.
func ExtractVideoSpecs(searchable string) domain.VideoSpecs {
	specs := domain.VideoSpecs{}
	for _, pattern := range videoResolutionPatterns {
		for _, raw := range pattern.FindAllString(searchable, -1) {
			specs.Formats = append(specs.Formats, strings.ToLower(raw))
		}
	}

	switch {
	case anyFormat(specs.Formats, "4k", "uhd"):
		specs.MaxResolution = domain.Video4K
	case anyFormat(specs.Formats, "1080", "full hd"):
		specs.MaxResolution = domain.VideoFullHD
	case anyFormat(specs.Formats, "720", "hd"):
		specs.MaxResolution = domain.VideoHD
	}
	return specs
}

func anyFormat(formats []string, terms ...string) bool {
	for _, f := range formats {
		for _, t := range terms {
			if strings.Contains(f, t) {
				return true
			}
		}
	}
	return false
}

// ExtractPhysicalSpecs finds dimensions and weight. Unlike the list-valued
// fields, only the first match per pattern list is kept: a page mentions
// its own measurements once and anything later is accessory noise.
func ExtractPhysicalSpecs(searchable string) domain.PhysicalSpecs {
	specs := domain.PhysicalSpecs{}

	for _, pattern := range dimensionPatterns {
		m := pattern.FindStringSubmatch(searchable)
		if m == nil {
			continue
		}
		w, errW := strconv.ParseFloat(m[1], 64)
		h, errH := strconv.ParseFloat(m[2], 64)
		d, errD := strconv.ParseFloat(m[3], 64)
		if errW != nil || errH != nil || errD != nil {
			continue
		}
		specs.Dimensions = &domain.Dimensions{Width: w, Height: h, Depth: d, Unit: "mm"}
		break
	}

	for _, pattern := range weightPatterns {
		m := pattern.FindStringSubmatch(searchable)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := "g"
		if strings.Contains(strings.ToLower(m[0]), "kg") {
			unit = "kg"
		}
		specs.Weight = &domain.Weight{Value: v, Unit: unit}
		break
	}

	return specs
}

// contextSnippet returns a bounded window of text around a match for
// provenance auditing.
func contextSnippet(text string, matchStart int) string {
	start := matchStart - contextBefore
	if start < 0 {
		start = 0
	}
	end := matchStart + contextAfter
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// sortedKeys keeps specification scans deterministic; Go map iteration
// order would otherwise vary between runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
