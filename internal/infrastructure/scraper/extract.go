package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lensvault/backend/internal/domain"
)

var (
	productIDRegex    = regexp.MustCompile(`/product/([^.]+)\.html`)
	categoryCodeRegex = regexp.MustCompile(`product_box\s+(\S+)`)
	specKeyCleanRegex = regexp.MustCompile(`[^\w\s]`)
	multiSpaceRegex   = regexp.MustCompile(`\s+`)
	multiUnderRegex   = regexp.MustCompile(`_{2,}`)
	brTagRegex        = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRegex      = regexp.MustCompile(`<[^>]*>`)
)

// ProductLink is a product discovered on the catalog index page, before
// its own page has been fetched.
type ProductLink struct {
	ID           string
	Name         string
	Category     string
	CategoryCode string
	ProductURL   string
}

// ExtractProductLinks parses the catalog index page and returns one link
// per product box. Boxes without a recognizable product href are skipped.
func ExtractProductLinks(html []byte, baseURL string) ([]ProductLink, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog page: %w", err)
	}

	var links []ProductLink
	doc.Find(".product_box").Each(func(_ int, box *goquery.Selection) {
		anchor := box.Find(`a[href*="/product/"]`).First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		idMatch := productIDRegex.FindStringSubmatch(href)
		if idMatch == nil {
			return
		}

		name := strings.TrimSpace(anchor.Find(".pro_name span.en, span.en").First().Text())
		if name == "" {
			// Fall back to the thumbnail alt text
			if alt, ok := box.Find("img").First().Attr("alt"); ok {
				name = strings.TrimSpace(strings.TrimPrefix(alt, "Photo: "))
			}
		}

		categoryCode := "unknown"
		if classes, ok := box.Attr("class"); ok {
			if m := categoryCodeRegex.FindStringSubmatch(classes); m != nil {
				categoryCode = m[1]
			}
		}

		links = append(links, ProductLink{
			ID:           idMatch[1],
			Name:         name,
			CategoryCode: categoryCode,
			ProductURL:   absoluteURL(baseURL, href),
		})
	})

	return links, nil
}

// ExtractProduct parses a product page into a RawProduct, filling in the
// fields the index page couldn't provide: regional names, marketing date,
// images, the specification map and the description.
func ExtractProduct(html []byte, link ProductLink, baseURL string) (domain.RawProduct, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return domain.RawProduct{}, fmt.Errorf("failed to parse product page: %w", err)
	}

	product := domain.RawProduct{
		ID:             link.ID,
		Name:           link.Name,
		Category:       link.Category,
		CategoryCode:   link.CategoryCode,
		ProductURL:     link.ProductURL,
		Names:          extractRegionalNames(doc),
		MarketedDate:   extractMarketedDate(doc),
		Images:         extractImages(doc, baseURL),
		Specifications: extractSpecifications(doc),
		Description:    extractDescription(doc),
		DataQuality:    domain.QualityHigh,
	}
	return product, nil
}

// Regional names are marked with flag icons in the page header: icon_07
// is Japan, icon_08 the Americas, icon_09 Europe.
func extractRegionalNames(doc *goquery.Document) domain.RegionalNames {
	var names domain.RegionalNames

	doc.Find(".title_i").Each(func(_ int, title *goquery.Selection) {
		src, ok := title.Find("img").First().Attr("src")
		if !ok {
			return
		}
		text := strings.TrimSpace(title.Text())

		switch {
		case strings.Contains(src, "icon_07"):
			names.Japan = text
		case strings.Contains(src, "icon_08"):
			names.Americas = text
		case strings.Contains(src, "icon_09"):
			names.Europe = text
		}
	})

	return names
}

func extractMarketedDate(doc *goquery.Document) string {
	var marketed string
	doc.Find("table.spec tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(row.Find("td").First().Text()))
		if strings.Contains(label, "marketed") {
			marketed = strings.TrimSpace(row.Find("td").Last().Text())
			return false
		}
		return true
	})
	return marketed
}

func extractImages(doc *goquery.Document, baseURL string) []string {
	var images []string
	seen := make(map[string]bool)

	doc.Find(".gallery_lis img, .images img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || !strings.Contains(src, ".jpg") || strings.Contains(src, "shadow") {
			return
		}
		full := absoluteURL(baseURL, src)
		if !seen[full] {
			seen[full] = true
			images = append(images, full)
		}
	})

	return images
}

// extractSpecifications reads the detail spec table first, then the
// outline table without overwriting detailed entries.
func extractSpecifications(doc *goquery.Document) map[string]string {
	specs := make(map[string]string)

	doc.Find(".tab2 table.spec tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		value := specValueText(cells.Eq(1))
		if label != "" && value != "" {
			specs[cleanSpecKey(label)] = value
		}
	})

	doc.Find(".tab1 table.spec tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label == "" || value == "" {
			return
		}
		key := cleanSpecKey(label)
		if _, exists := specs[key]; !exists {
			specs[key] = value
		}
	})

	return specs
}

// specValueText preserves <br> line breaks in spec cells, since the
// enrichment patterns key off text layout within a value.
func specValueText(cell *goquery.Selection) string {
	html, err := cell.Html()
	if err != nil {
		return strings.TrimSpace(cell.Text())
	}
	text := brTagRegex.ReplaceAllString(html, "\n")
	text = htmlTagRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func extractDescription(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find(".tab1 p").Not(".ab_sup").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

// cleanSpecKey turns a spec table label into a stable map key:
// "Image Sensor / Type" becomes "image_sensor_type".
func cleanSpecKey(label string) string {
	key := strings.ToLower(label)
	key = specKeyCleanRegex.ReplaceAllString(key, "")
	key = multiSpaceRegex.ReplaceAllString(key, "_")
	key = multiUnderRegex.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimSuffix(baseURL, "/") + href
}
