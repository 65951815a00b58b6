package domain

// Data quality levels assigned by the scraper. "failed" marks a product
// whose page could not be fetched; it still flows through enrichment and
// simply yields empty extracted fields.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
	QualityFailed = "failed"
)

// RegionalNames holds market-specific product names scraped from the
// catalog page.
type RegionalNames struct {
	Japan    string `json:"japan,omitempty"`
	Americas string `json:"americas,omitempty"`
	Europe   string `json:"europe,omitempty"`
}

// Values returns the non-empty regional names in a stable order.
func (n RegionalNames) Values() []string {
	var out []string
	for _, v := range []string{n.Japan, n.Americas, n.Europe} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// RawProduct is a product record as produced by the catalog scraper,
// before any enrichment. Immutable once scraped.
type RawProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model,omitempty"`
	Category     string `json:"category"`
	CategoryCode string `json:"categoryCode"`
	ProductURL   string `json:"productUrl"`

	Names        RegionalNames `json:"names,omitempty"`
	MarketedDate string        `json:"marketedDate,omitempty"`

	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	Description    string            `json:"description,omitempty"`

	ScrapedAt   string `json:"scrapedAt,omitempty"`
	DataQuality string `json:"dataQuality"`
	Error       string `json:"error,omitempty"`
}

// MegapixelDetail records the provenance of a single megapixel candidate:
// which field it came from and a snippet of the surrounding text.
type MegapixelDetail struct {
	Value   float64 `json:"value"`
	Source  string  `json:"source"`
	Context string  `json:"context"`
}

// MegapixelField holds all plausible megapixel values found for a product.
// Primary is the maximum of Values when any were found, nil otherwise.
type MegapixelField struct {
	Values  []float64         `json:"values"`
	Primary *float64          `json:"primary"`
	Details []MegapixelDetail `json:"details"`
}

// SensorSizeDetail records a raw sensor-size match and its canonical form.
type SensorSizeDetail struct {
	Raw          string `json:"raw"`
	Standardized string `json:"standardized"`
	Source       string `json:"source"`
}

// SensorSizeField holds the canonical sensor-size tokens detected for a
// product. Primary is the first match in scan order, nil if none matched.
type SensorSizeField struct {
	Detected []string           `json:"detected"`
	Primary  *string            `json:"primary"`
	Details  []SensorSizeDetail `json:"details"`
}

// Lens focal-length entry kinds.
const (
	LensTypeZoom  = "zoom"
	LensTypePrime = "prime"
)

// FocalLength is one focal-length mention in a product's text. Zoom
// entries carry Min/Max, prime entries carry Value.
type FocalLength struct {
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Value float64 `json:"value,omitempty"`
	Type  string  `json:"type"`
}

// EffectiveRange returns the focal range an entry covers. Prime lenses
// cover a single point; a prime with no value covers [0, +inf) so that
// bound-only filters still consider it.
func (f FocalLength) EffectiveRange() (min, max float64) {
	if f.Type == LensTypeZoom {
		return f.Min, f.Max
	}
	if f.Value > 0 {
		return f.Value, f.Value
	}
	return 0, maxFocalLength
}

// maxFocalLength stands in for an unbounded upper focal limit.
const maxFocalLength = 1e9

// Aperture is one aperture mention. Variable-aperture zooms carry
// Wide/Tele, fixed apertures carry Value.
type Aperture struct {
	Wide  float64 `json:"wide,omitempty"`
	Tele  float64 `json:"tele,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// LensSpecs groups all lens mentions found for a product. A single text
// blob may describe several lens variants.
type LensSpecs struct {
	FocalLength []FocalLength `json:"focalLength"`
	Aperture    []Aperture    `json:"aperture"`
}

// ISORange is one ISO sensitivity mention, either a range or a single value.
type ISORange struct {
	Min   int `json:"min,omitempty"`
	Max   int `json:"max,omitempty"`
	Value int `json:"value,omitempty"`
}

// Video resolution tiers, highest first.
const (
	Video4K     = "4K"
	VideoFullHD = "Full HD"
	VideoHD     = "HD"
)

// VideoSpecs holds detected video capabilities. MaxResolution is empty
// when no recognizable format was found.
type VideoSpecs struct {
	MaxResolution string   `json:"maxResolution,omitempty"`
	Formats       []string `json:"formats"`
}

// Dimensions are physical width x height x depth measurements.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Unit   string  `json:"unit"`
}

// Weight is a physical weight measurement.
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// PhysicalSpecs holds extracted physical measurements, nil when absent.
type PhysicalSpecs struct {
	Dimensions *Dimensions `json:"dimensions"`
	Weight     *Weight     `json:"weight"`
}

// SmartSpecs is the full bundle of attributes mined from a product's
// free-text specification fields.
type SmartSpecs struct {
	Megapixels    MegapixelField  `json:"megapixels"`
	SensorSize    SensorSizeField `json:"sensorSize"`
	SensorType    []string        `json:"sensorType"`
	LensSpecs     LensSpecs       `json:"lensSpecs"`
	ISORange      []ISORange      `json:"isoRange"`
	VideoSpecs    VideoSpecs      `json:"videoSpecs"`
	PhysicalSpecs PhysicalSpecs   `json:"physicalSpecs"`
	DeviceType    string          `json:"deviceType"`
	Era           string          `json:"era"`
	SearchTags    []string        `json:"searchTags"`
}

// HasZoom reports whether the product has a zoom-type focal entry or the
// "zoom" search tag.
func (s SmartSpecs) HasZoom() bool {
	for _, lens := range s.LensSpecs.FocalLength {
		if lens.Type == LensTypeZoom {
			return true
		}
	}
	for _, tag := range s.SearchTags {
		if tag == "zoom" {
			return true
		}
	}
	return false
}

// EnrichedRecord is a RawProduct plus its mined attributes and the
// lower-cased searchable text. Built once per product, never mutated.
type EnrichedRecord struct {
	RawProduct

	SmartSpecs     SmartSpecs `json:"smartSpecs"`
	SearchableText string     `json:"searchableText"`
	LastEnhanced   string     `json:"lastEnhanced,omitempty"`
}

// RawDataset is the persisted output of a scrape run.
type RawDataset struct {
	ScrapedAt     string       `json:"scrapedAt,omitempty"`
	TotalProducts int          `json:"totalProducts"`
	Products      []RawProduct `json:"products"`
}

// DatasetStatistics summarizes an enrichment run across the whole dataset.
type DatasetStatistics struct {
	MegapixelProducts      int            `json:"megapixelProducts"`
	SensorProducts         int            `json:"sensorProducts"`
	LensProducts           int            `json:"lensProducts"`
	Categories             []string       `json:"categories"`
	Eras                   []string       `json:"eras"`
	MegapixelDistribution  map[string]int `json:"megapixelDistribution"`
	SensorSizeDistribution map[string]int `json:"sensorSizeDistribution"`
}

// EnrichedDataset is the persisted output of an enrichment run.
type EnrichedDataset struct {
	CreatedAt     string            `json:"createdAt"`
	SourceFile    string            `json:"sourceFile,omitempty"`
	TotalProducts int               `json:"totalProducts"`
	Statistics    DatasetStatistics `json:"statistics"`
	Products      []EnrichedRecord  `json:"products"`
}

// ScrapeJob tracks one scraping run.
type ScrapeJob struct {
	ID           string   `json:"id"`
	Status       string   `json:"status"` // pending, running, completed, failed
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime,omitempty"`
	ProductCount int      `json:"productCount"`
	Errors       []string `json:"errors"`
	Source       string   `json:"source"`
}
