package enrichment

import (
	"reflect"
	"testing"

	"github.com/lensvault/backend/internal/domain"
)

func compactTestProduct() domain.RawProduct {
	return domain.RawProduct{
		ID:           "dcc100",
		Name:         "PowerShot A95",
		Category:     "Compact Digital Camera",
		CategoryCode: "dcc",
		MarketedDate: "August 2004",
		Specifications: map[string]string{
			"image_sensor": "1/1.8-inch CCD, approx. 5 megapixels",
			"lens":         "7.8-23.4mm f/2.8-f/4.9",
		},
		Description: "Compact digital camera with optical zoom and image stabilizer.",
		DataQuality: domain.QualityHigh,
	}
}

func TestSearchableText(t *testing.T) {
	raw := domain.RawProduct{
		Name:        "PowerShot A100",
		Description: "Digital camera",
		Specifications: map[string]string{
			"b_key": "beta",
			"a_key": "alpha",
		},
		Names:        domain.RegionalNames{Japan: "IXY 10"},
		MarketedDate: "May 2009",
	}

	got := SearchableText(raw)
	want := "powershot a100 digital camera alpha beta ixy 10 may 2009"
	if got != want {
		t.Errorf("SearchableText() = %q, want %q", got, want)
	}

	// Deterministic regardless of map iteration order
	for i := 0; i < 10; i++ {
		if again := SearchableText(raw); again != got {
			t.Fatalf("SearchableText() not deterministic: %q vs %q", again, got)
		}
	}
}

func TestBuild(t *testing.T) {
	record := Build(compactTestProduct())
	smart := record.SmartSpecs

	t.Run("megapixels", func(t *testing.T) {
		if smart.Megapixels.Primary == nil || *smart.Megapixels.Primary != 5 {
			t.Errorf("Megapixels.Primary = %v, want 5", smart.Megapixels.Primary)
		}
	})

	t.Run("sensor size", func(t *testing.T) {
		if smart.SensorSize.Primary == nil || *smart.SensorSize.Primary != `1/1.8"` {
			t.Errorf("SensorSize.Primary = %v, want 1/1.8\"", smart.SensorSize.Primary)
		}
	})

	t.Run("sensor type", func(t *testing.T) {
		if len(smart.SensorType) == 0 || smart.SensorType[0] != "ccd" {
			t.Errorf("SensorType = %v, want ccd first", smart.SensorType)
		}
	})

	t.Run("lens and zoom", func(t *testing.T) {
		if len(smart.LensSpecs.FocalLength) == 0 {
			t.Fatal("FocalLength is empty")
		}
		if !smart.HasZoom() {
			t.Error("HasZoom() = false, want true")
		}
	})

	t.Run("device type and era", func(t *testing.T) {
		if smart.DeviceType != "Compact Digital Camera" {
			t.Errorf("DeviceType = %s, want Compact Digital Camera", smart.DeviceType)
		}
		if smart.Era != "2000s" {
			t.Errorf("Era = %s, want 2000s", smart.Era)
		}
	})

	t.Run("search tags", func(t *testing.T) {
		want := []string{"digital", "compact", "zoom", "stabilization"}
		if !reflect.DeepEqual(smart.SearchTags, want) {
			t.Errorf("SearchTags = %v, want %v", smart.SearchTags, want)
		}
	})

	t.Run("raw fields carried through", func(t *testing.T) {
		if record.ID != "dcc100" || record.Name != "PowerShot A95" {
			t.Errorf("record = %s/%s, want dcc100/PowerShot A95", record.ID, record.Name)
		}
	})
}

func TestBuildIsDeterministic(t *testing.T) {
	raw := compactTestProduct()

	first := Build(raw)
	for i := 0; i < 5; i++ {
		if again := Build(raw); !reflect.DeepEqual(again, first) {
			t.Fatal("Build() produced different records for identical input")
		}
	}
}

func TestBuildDegradesOnEmptyInput(t *testing.T) {
	record := Build(domain.RawProduct{ID: "bare", Name: "Canonet", Category: "Film Camera"})
	smart := record.SmartSpecs

	if smart.Megapixels.Primary != nil {
		t.Errorf("Megapixels.Primary = %v, want nil", *smart.Megapixels.Primary)
	}
	if smart.SensorSize.Primary != nil {
		t.Errorf("SensorSize.Primary = %v, want nil", *smart.SensorSize.Primary)
	}
	if smart.Era != EraUnknown {
		t.Errorf("Era = %s, want %s", smart.Era, EraUnknown)
	}
	if smart.DeviceType != "Film Camera" {
		t.Errorf("DeviceType = %s, want Film Camera", smart.DeviceType)
	}
}

func TestEnrichAll(t *testing.T) {
	raws := []domain.RawProduct{
		compactTestProduct(),
		{ID: "old1", Name: "Canonet", Category: "Film Camera"},
	}

	records := EnrichAll(raws)

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].LastEnhanced == "" {
		t.Error("LastEnhanced not stamped")
	}
	if records[0].LastEnhanced != records[1].LastEnhanced {
		t.Error("records of one run carry different LastEnhanced stamps")
	}
}

func TestBuildDatasetStatistics(t *testing.T) {
	records := EnrichAll([]domain.RawProduct{
		compactTestProduct(),
		{ID: "old1", Name: "Canonet", Category: "Film Camera"},
	})

	stats := BuildDatasetStatistics(records)

	if stats.MegapixelProducts != 1 {
		t.Errorf("MegapixelProducts = %d, want 1", stats.MegapixelProducts)
	}
	if stats.SensorProducts != 1 {
		t.Errorf("SensorProducts = %d, want 1", stats.SensorProducts)
	}
	if stats.LensProducts != 1 {
		t.Errorf("LensProducts = %d, want 1", stats.LensProducts)
	}
	if !reflect.DeepEqual(stats.Categories, []string{"Compact Digital Camera", "Film Camera"}) {
		t.Errorf("Categories = %v", stats.Categories)
	}
	if !reflect.DeepEqual(stats.Eras, []string{"2000s", EraUnknown}) {
		t.Errorf("Eras = %v", stats.Eras)
	}
	if stats.MegapixelDistribution["5"] != 1 {
		t.Errorf("MegapixelDistribution = %v, want 5 -> 1", stats.MegapixelDistribution)
	}
	if stats.SensorSizeDistribution[`1/1.8"`] != 1 {
		t.Errorf("SensorSizeDistribution = %v", stats.SensorSizeDistribution)
	}
}
