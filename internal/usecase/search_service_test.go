package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lensvault/backend/internal/domain"
	"github.com/lensvault/backend/internal/enrichment"
)

// stubCorpus serves a fixed record set without any store behind it.
type stubCorpus struct {
	records []domain.EnrichedRecord
}

func (s *stubCorpus) Snapshot(ctx context.Context) ([]domain.EnrichedRecord, error) {
	return s.records, nil
}

func (s *stubCorpus) Get(ctx context.Context, id string) (*domain.EnrichedRecord, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubCorpus) Invalidate() {}

func testRecords() []domain.EnrichedRecord {
	compact := domain.RawProduct{
		ID:           "psa",
		Name:         "PowerShot S95",
		Category:     "Compact Digital Camera",
		MarketedDate: "May 2009",
		Specifications: map[string]string{
			"image_sensor": "1/2.3-inch CMOS, approx. 12.1 megapixels",
			"lens":         "28-140mm f/2.8",
		},
		Description: "Compact camera with optical zoom and wifi.",
		DataQuality: domain.QualityHigh,
	}
	dslr := domain.RawProduct{
		ID:           "eosb",
		Name:         "EOS 650D",
		Category:     "DSLR Camera",
		MarketedDate: "October 2012",
		Specifications: map[string]string{
			"image_sensor": "APS-C CMOS sensor, approx. 24.2 megapixels",
		},
		Description: "Digital SLR with full hd movie recording and wifi.",
		DataQuality: domain.QualityHigh,
	}
	return []domain.EnrichedRecord{enrichment.Build(compact), enrichment.Build(dslr)}
}

func newTestService() *SearchService {
	return NewSearchService(&stubCorpus{records: testRecords()}, SearchConfig{})
}

func resultIDs(result *domain.SearchResult) []string {
	ids := make([]string, 0, len(result.Products))
	for _, p := range result.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

func assertIDs(t *testing.T, result *domain.SearchResult, want ...string) {
	t.Helper()
	got := resultIDs(result)
	if len(got) != len(want) {
		t.Fatalf("result ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result ids = %v, want %v", got, want)
		}
	}
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestSearch_EmptyCriteriaReturnsWholeCorpus(t *testing.T) {
	service := newTestService()

	result, err := service.Search(context.Background(), domain.FilterCriteria{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	assertIDs(t, result, "psa", "eosb")
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestSearch_TextOperators(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name     string
		search   string
		operator string
		want     []string
	}{
		{"contains default", "powershot", "", []string{"psa"}},
		{"contains matches searchable text", "megapixels", "", []string{"psa", "eosb"}},
		{"starts with", "eos", domain.TextOpStartsWith, []string{"eosb"}},
		{"ends with", "s95", domain.TextOpEndsWith, []string{"psa"}},
		{"exact name", "eos 650d", domain.TextOpExact, []string{"eosb"}},
		{"no match", "nikon", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Search(context.Background(), domain.FilterCriteria{
				Search:    tt.search,
				Operators: domain.FilterOperators{Text: tt.operator},
			})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			assertIDs(t, result, tt.want...)
		})
	}
}

func TestSearch_MegapixelOperators(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name     string
		filter   domain.MegapixelFilter
		operator string
		want     []string
	}{
		{"min bound", domain.MegapixelFilter{Min: floatPtr(20)}, "", []string{"eosb"}},
		{"max bound", domain.MegapixelFilter{Max: floatPtr(20)}, "", []string{"psa"}},
		{"min and max", domain.MegapixelFilter{Min: floatPtr(10), Max: floatPtr(20)}, "", []string{"psa"}},
		{"exact equals default", domain.MegapixelFilter{Exact: floatPtr(12.1)}, "", []string{"psa"}},
		{"exact greater", domain.MegapixelFilter{Exact: floatPtr(20)}, domain.MPOpGreater, []string{"eosb"}},
		{"exact less", domain.MegapixelFilter{Exact: floatPtr(20)}, domain.MPOpLess, []string{"psa"}},
		{"between with exact matches nothing", domain.MegapixelFilter{Exact: floatPtr(12.1)}, domain.MPOpBetween, nil},
		{"value list", domain.MegapixelFilter{Values: []float64{12.1}}, "", []string{"psa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			result, err := service.Search(context.Background(), domain.FilterCriteria{
				Megapixels: &filter,
				Operators:  domain.FilterOperators{Megapixels: tt.operator},
			})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			assertIDs(t, result, tt.want...)
		})
	}
}

func TestSearch_SensorFilters(t *testing.T) {
	service := newTestService()

	t.Run("sensor size contains", func(t *testing.T) {
		result, err := service.Search(context.Background(), domain.FilterCriteria{
			SensorSizes: []string{"aps-c"},
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		assertIDs(t, result, "eosb")
	})

	t.Run("sensor size exact", func(t *testing.T) {
		result, err := service.Search(context.Background(), domain.FilterCriteria{
			SensorSizes: []string{`1/2.3"`},
			Operators:   domain.FilterOperators{Sensor: domain.SensorOpExact},
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		assertIDs(t, result, "psa")
	})

	t.Run("sensor type is case-insensitive", func(t *testing.T) {
		result, err := service.Search(context.Background(), domain.FilterCriteria{
			SensorTypes: []string{"CMOS"},
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		assertIDs(t, result, "psa", "eosb")
	})
}

func TestSearch_CategoryEraAndTags(t *testing.T) {
	service := newTestService()

	t.Run("categories", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			Categories: []string{"DSLR Camera"},
		})
		assertIDs(t, result, "eosb")
	})

	t.Run("eras", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			Eras: []string{"2000s"},
		})
		assertIDs(t, result, "psa")
	})

	t.Run("search tags match any", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			SearchTags: []string{"wifi"},
		})
		assertIDs(t, result, "psa", "eosb")
	})

	t.Run("search tags are exact memberships", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			SearchTags: []string{"dslr"},
		})
		assertIDs(t, result, "eosb")
	})

	t.Run("clauses combine as a conjunction", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			SearchTags: []string{"wifi"},
			Eras:       []string{"2010s"},
		})
		assertIDs(t, result, "eosb")
	})
}

// The combined query must return exactly the intersection of the two
// single-clause queries.
func TestSearch_ConjunctionLaw(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	byCategory, _ := service.Search(ctx, domain.FilterCriteria{
		Categories: []string{"DSLR Camera"},
	})
	byMegapixels, _ := service.Search(ctx, domain.FilterCriteria{
		Megapixels: &domain.MegapixelFilter{Min: floatPtr(20)},
	})
	combined, _ := service.Search(ctx, domain.FilterCriteria{
		Categories: []string{"DSLR Camera"},
		Megapixels: &domain.MegapixelFilter{Min: floatPtr(20)},
	})

	inCategory := make(map[string]bool)
	for _, id := range resultIDs(byCategory) {
		inCategory[id] = true
	}
	var intersection []string
	for _, id := range resultIDs(byMegapixels) {
		if inCategory[id] {
			intersection = append(intersection, id)
		}
	}

	got := resultIDs(combined)
	if len(got) != len(intersection) {
		t.Fatalf("combined = %v, want intersection %v", got, intersection)
	}
	for i := range intersection {
		if got[i] != intersection[i] {
			t.Fatalf("combined = %v, want intersection %v", got, intersection)
		}
	}
}

func TestSearch_FocalLengthAndZoom(t *testing.T) {
	service := newTestService()

	t.Run("range overlap", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			FocalLengthMin: floatPtr(100),
		})
		assertIDs(t, result, "psa")
	})

	t.Run("records without lenses never pass a focal clause", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			FocalLengthMax: floatPtr(20),
		})
		assertIDs(t, result)
	})

	t.Run("has zoom", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			HasZoom: boolPtr(true),
		})
		assertIDs(t, result, "psa")
	})

	t.Run("has zoom false excludes zoom products", func(t *testing.T) {
		result, _ := service.Search(context.Background(), domain.FilterCriteria{
			HasZoom: boolPtr(false),
		})
		assertIDs(t, result, "eosb")
	})
}

func TestSearch_MarketedDate(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name   string
		after  string
		before string
		want   []string
	}{
		{"after", "2010", "", []string{"eosb"}},
		{"before", "", "2010", []string{"psa"}},
		{"window", "2000", "2010", []string{"psa"}},
		{"unparsable bound is skipped", "abc", "", []string{"psa", "eosb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := service.Search(context.Background(), domain.FilterCriteria{
				MarketedAfter:  tt.after,
				MarketedBefore: tt.before,
			})
			assertIDs(t, result, tt.want...)
		})
	}
}

func TestSearch_DataQuality(t *testing.T) {
	service := newTestService()

	result, _ := service.Search(context.Background(), domain.FilterCriteria{
		DataQuality: []string{domain.QualityHigh},
	})
	assertIDs(t, result, "psa", "eosb")

	result, _ = service.Search(context.Background(), domain.FilterCriteria{
		DataQuality: []string{domain.QualityFailed},
	})
	assertIDs(t, result)
}

func TestSearch_FacetsAndStatistics(t *testing.T) {
	service := newTestService()

	result, err := service.Search(context.Background(), domain.FilterCriteria{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	t.Run("megapixel facets sort numerically descending", func(t *testing.T) {
		mp := result.Filters.Megapixels
		if len(mp) != 2 {
			t.Fatalf("Megapixels facets = %v, want 2 entries", mp)
		}
		if mp[0].Value != "24.2MP" || mp[1].Value != "12.1MP" {
			t.Errorf("Megapixels facets = %v, want [24.2MP 12.1MP]", mp)
		}
	})

	t.Run("statistics", func(t *testing.T) {
		stats := result.Statistics
		if stats.TotalProducts != 2 || stats.FilteredCount != 2 {
			t.Errorf("counts = %d/%d, want 2/2", stats.TotalProducts, stats.FilteredCount)
		}
		if stats.AverageMegapixels != 18.2 {
			t.Errorf("AverageMegapixels = %v, want 18.2", stats.AverageMegapixels)
		}
		if stats.MegapixelRange.Min != 12.1 || stats.MegapixelRange.Max != 24.2 {
			t.Errorf("MegapixelRange = %+v, want 12.1-24.2", stats.MegapixelRange)
		}
	})

	t.Run("statistics keep the full corpus count when filtered", func(t *testing.T) {
		filtered, _ := service.Search(context.Background(), domain.FilterCriteria{
			Eras: []string{"2000s"},
		})
		if filtered.Statistics.TotalProducts != 2 || filtered.Statistics.FilteredCount != 1 {
			t.Errorf("counts = %d/%d, want 2/1",
				filtered.Statistics.TotalProducts, filtered.Statistics.FilteredCount)
		}
	})
}

func TestGetProduct(t *testing.T) {
	service := newTestService()

	t.Run("found", func(t *testing.T) {
		record, err := service.GetProduct(context.Background(), "psa")
		if err != nil {
			t.Fatalf("GetProduct() error = %v", err)
		}
		if record.ID != "psa" {
			t.Errorf("record.ID = %s, want psa", record.ID)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := service.GetProduct(context.Background(), "nope")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := service.GetProduct(context.Background(), "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestStatistics(t *testing.T) {
	service := newTestService()

	stats, err := service.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.TotalProducts != 2 || stats.FilteredCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", stats.TotalProducts, stats.FilteredCount)
	}
}
