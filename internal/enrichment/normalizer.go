package enrichment

import (
	"strconv"
	"strings"
)

// sensorSizeMapping is an ordered substring → canonical-label table.
// Order matters: the first matching entry wins.
type sensorSizeMapping struct {
	match     string
	canonical string
}

var sensorSizeMappings = []sensorSizeMapping{
	{"1/2.3", `1/2.3"`},
	{"1/1.7", `1/1.7"`},
	{"1/1.8", `1/1.8"`},
	{"2/3", `2/3"`},
	{"full frame", "Full Frame"},
	{"aps-c", "APS-C"},
	{"aps-h", "APS-H"},
	{"micro four thirds", "Micro Four Thirds"},
	{"super 35mm", "Super 35mm"},
}

// StandardizeSensorSize maps a raw sensor-size match to its canonical
// label. Unknown formats are returned unchanged so they are preserved in
// the detected list rather than dropped.
func StandardizeSensorSize(raw string) string {
	size := strings.ToLower(raw)
	for _, m := range sensorSizeMappings {
		if strings.Contains(size, m.match) {
			return m.canonical
		}
	}
	return raw
}

// CategorizeDevice derives a device type from the scraped category label.
// Checks run in a fixed priority order; an unrecognized category is
// passed through as-is.
func CategorizeDevice(category, name string) string {
	c := strings.ToLower(category)

	switch {
	case strings.Contains(c, "dslr"):
		return "DSLR Camera"
	case strings.Contains(c, "compact") && strings.Contains(c, "digital"):
		return "Compact Digital Camera"
	case strings.Contains(c, "camcorder"):
		return "Camcorder"
	case strings.Contains(c, "cinema"):
		return "Cinema Camera"
	case strings.Contains(c, "film"):
		return "Film Camera"
	}
	return category
}

// Era bucket labels.
const (
	EraUnknown = "Unknown"
	EraVintage = "Vintage (Pre-1980)"
)

// DetermineEra buckets a marketing date string by the first 4-digit year
// it contains. Absent or unparsable dates map to "Unknown"; this is a
// total function.
func DetermineEra(marketedDate string) string {
	if marketedDate == "" {
		return EraUnknown
	}
	match := yearRegex.FindString(marketedDate)
	if match == "" {
		return EraUnknown
	}
	year, err := strconv.Atoi(match)
	if err != nil || year == 0 {
		return EraUnknown
	}

	switch {
	case year < 1980:
		return EraVintage
	case year < 1990:
		return "1980s"
	case year < 2000:
		return "1990s"
	case year < 2010:
		return "2000s"
	case year < 2020:
		return "2010s"
	}
	return "2020s"
}

// MarketedYear extracts the first 4-digit year from a marketing date
// string, returning 0 when none is found.
func MarketedYear(marketedDate string) int {
	match := yearRegex.FindString(marketedDate)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}
