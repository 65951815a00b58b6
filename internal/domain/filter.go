package domain

// Text search operators.
const (
	TextOpContains   = "contains"
	TextOpExact      = "exact"
	TextOpStartsWith = "startsWith"
	TextOpEndsWith   = "endsWith"
)

// Megapixel comparison operators.
const (
	MPOpEquals  = "equals"
	MPOpGreater = "greater"
	MPOpLess    = "less"
	MPOpBetween = "between"
)

// Sensor size matching operators.
const (
	SensorOpContains = "contains"
	SensorOpExact    = "exact"
)

// FilterOperators selects the comparison semantics for individual clauses.
// Zero values fall back to the defaults (contains / equals / contains).
type FilterOperators struct {
	Text       string `json:"textOperator,omitempty"`
	Megapixels string `json:"megapixelsOperator,omitempty"`
	Sensor     string `json:"sensorOperator,omitempty"`
}

// MegapixelFilter constrains the primary megapixel value. When Exact is
// set the Megapixels operator decides the comparison; otherwise Min, Max
// and Values are all applied together.
type MegapixelFilter struct {
	Exact  *float64  `json:"exact,omitempty"`
	Min    *float64  `json:"min,omitempty"`
	Max    *float64  `json:"max,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// FilterCriteria is a compound search specification. Every clause is
// optional; an absent clause imposes no constraint. The overall result is
// the conjunction of all present clauses.
type FilterCriteria struct {
	Search string `json:"search,omitempty"`

	Categories  []string `json:"categories,omitempty"`
	DeviceTypes []string `json:"deviceTypes,omitempty"`
	Eras        []string `json:"eras,omitempty"`

	Megapixels *MegapixelFilter `json:"megapixels,omitempty"`

	SensorSizes []string `json:"sensorSizes,omitempty"`
	SensorTypes []string `json:"sensorTypes,omitempty"`

	FocalLengthMin *float64 `json:"focalLengthMin,omitempty"`
	FocalLengthMax *float64 `json:"focalLengthMax,omitempty"`
	HasZoom        *bool    `json:"hasZoom,omitempty"`

	SearchTags []string `json:"searchTags,omitempty"`

	MarketedAfter  string `json:"marketedAfter,omitempty"`
	MarketedBefore string `json:"marketedBefore,omitempty"`

	DataQuality []string `json:"dataQuality,omitempty"`

	Operators FilterOperators `json:"operators,omitempty"`
}

// FilterOption is one facet value with its occurrence count in a result set.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterOptions groups the facet dimensions exposed to filter UIs.
type FilterOptions struct {
	Categories  []FilterOption `json:"categories"`
	Megapixels  []FilterOption `json:"megapixels"`
	SensorSizes []FilterOption `json:"sensorSizes"`
	SensorTypes []FilterOption `json:"sensorTypes"`
	Eras        []FilterOption `json:"eras"`
	DeviceTypes []FilterOption `json:"deviceTypes"`
	Features    []FilterOption `json:"features"`
}

// MegapixelRange is the min/max of primary megapixels across a result set.
type MegapixelRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Statistics summarizes a search result against the whole corpus.
type Statistics struct {
	TotalProducts     int            `json:"totalProducts"`
	FilteredCount     int            `json:"filteredCount"`
	AverageMegapixels float64        `json:"averageMegapixels"`
	TopCategories     []FilterOption `json:"topCategories"`
	MegapixelRange    MegapixelRange `json:"megapixelRange"`
}

// SearchResult is the full response of a corpus query: the filtered
// products in corpus order, facets over the filtered set, and statistics.
type SearchResult struct {
	Products   []EnrichedRecord `json:"products"`
	Total      int              `json:"total"`
	Filters    FilterOptions    `json:"filters"`
	Statistics Statistics       `json:"statistics"`
}
