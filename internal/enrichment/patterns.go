package enrichment

import "regexp"

// The extraction rules are declarative data: each field maps to an ordered
// list of patterns tried against every specification value and the full
// searchable text. All matching patterns contribute candidates (union, not
// first-match-wins); source text is too inconsistent for a single pattern
// per field (e.g. "12.1 megapixels" vs "approx. 12 million effective pixels").

// NumericFieldRule describes extraction of a single-valued numeric field:
// its patterns, the plausibility check that rejects false positives, and
// the policy that picks the primary value from the deduplicated candidates.
type NumericFieldRule struct {
	Field     string
	Patterns  []*regexp.Regexp
	Plausible func(v float64) bool
	Primary   func(values []float64) float64
	SortDesc  bool
}

// megapixelRule extracts sensor resolution. Primary is the maximum of all
// plausible candidates: marketing text often lists reduced-mode pixel
// counts next to the headline figure, and the largest is taken as the
// sensor's own. The 0-200 window rejects unrelated numbers in the text.
var megapixelRule = NumericFieldRule{
	Field: "megapixels",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*megapixels?`),
		regexp.MustCompile(`(?i)approx\.?\s*(\d+\.?\d*)\s*megapixels?`),
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*million\s+(?:effective\s+)?pixels?`),
		regexp.MustCompile(`(?i)approximately\s+(\d+\.?\d*)\s+million\s+(?:effective\s+)?pixels?`),
	},
	Plausible: func(v float64) bool { return v > 0 && v < 200 },
	Primary:   maxOf,
	SortDesc:  true,
}

var sensorSizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d/\d+\.?\d*)[\s-]?(?:inch|type)`),
	regexp.MustCompile(`(?i)(full\s*frame|aps-c|aps-h|micro\s*four\s*thirds?)`),
	regexp.MustCompile(`(?i)(super\s*35\s*mm)`),
	regexp.MustCompile(`(?i)(\d+\.?\d*\s*x\s*\d+\.?\d*\s*mm)`),
}

var sensorTypePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(ccd|cmos|saticon|tube)`),
	regexp.MustCompile(`(?i)(back.?illuminated|bsi)`),
}

// Focal-length patterns: the range form must come first so "28-90mm" is
// recorded as a zoom; the single form still picks up the trailing "90mm".
var focalLengthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:-|–|to)\s*(\d+\.?\d*)\s*mm`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mm`),
}

var aperturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)f/(\d+\.?\d*)\s*(?:-|–|to)\s*f/(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)f/(\d+\.?\d*)`),
}

var isoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)iso\s*(\d+)\s*(?:-|–|to)\s*(\d+)`),
	regexp.MustCompile(`(?i)iso\s*(\d+)`),
	regexp.MustCompile(`(?i)sensitivity.*?(\d+)\s*(?:-|–|to)\s*(\d+)`),
}

var videoResolutionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(4k|uhd|ultra\s*hd)`),
	regexp.MustCompile(`(?i)(full\s*hd|1080p?|1920\s*x\s*1080)`),
	regexp.MustCompile(`(?i)(hd|720p?|1280\s*x\s*720)`),
	regexp.MustCompile(`(?i)(\d+)\s*x\s*(\d+)\s*(?:pixels?)?`),
}

var dimensionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:mm)?\s*x\s*(\d+\.?\d*)\s*(?:mm)?\s*x\s*(\d+\.?\d*)\s*mm`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*\(\s*w\s*\)\s*x\s*(\d+\.?\d*)\s*\(\s*h\s*\)\s*x\s*(\d+\.?\d*)\s*mm`),
}

var weightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*g(?:rams?)?`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*kg`),
	regexp.MustCompile(`(?i)weight.*?(\d+\.?\d*)\s*g`),
}

// yearRegex finds the first 4-digit year in a marketing date string.
var yearRegex = regexp.MustCompile(`\d{4}`)

func maxOf(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// firstOf is the default primary selector for fields without an explicit
// tie-break rule.
func firstOf(values []float64) float64 { return values[0] }
