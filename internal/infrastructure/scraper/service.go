package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lensvault/backend/internal/domain"
)

// Job statuses.
const (
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Service orchestrates a full catalog scrape: index page, then one fetch
// per discovered product. A product page that cannot be fetched still
// produces a record, marked dataQuality=failed, so the run is never lost
// to a single bad page.
type Service struct {
	fetcher  domain.CatalogFetcher
	baseURL  string
	indexURL string
	category string
}

// NewService creates a scrape service for one catalog category listing
func NewService(fetcher domain.CatalogFetcher, baseURL, indexURL, category string) *Service {
	return &Service{
		fetcher:  fetcher,
		baseURL:  baseURL,
		indexURL: indexURL,
		category: category,
	}
}

// ScrapeCatalog runs a full scrape and returns the raw dataset together
// with the job record describing the run.
func (s *Service) ScrapeCatalog(ctx context.Context) (*domain.RawDataset, *domain.ScrapeJob, error) {
	job := &domain.ScrapeJob{
		ID:        uuid.NewString(),
		Status:    JobStatusRunning,
		StartTime: time.Now().UTC().Format(time.RFC3339),
		Source:    s.indexURL,
	}

	indexHTML, err := s.fetcher.FetchPage(ctx, s.indexURL)
	if err != nil {
		job.Status = JobStatusFailed
		job.EndTime = time.Now().UTC().Format(time.RFC3339)
		job.Errors = append(job.Errors, err.Error())
		return nil, job, fmt.Errorf("failed to fetch catalog index: %w", err)
	}

	links, err := ExtractProductLinks(indexHTML, s.baseURL)
	if err != nil {
		job.Status = JobStatusFailed
		job.EndTime = time.Now().UTC().Format(time.RFC3339)
		job.Errors = append(job.Errors, err.Error())
		return nil, job, err
	}

	log.Printf("[SCRAPE] Job %s: found %d product links", job.ID, len(links))

	scrapedAt := time.Now().UTC().Format(time.RFC3339)
	products := make([]domain.RawProduct, 0, len(links))

	for i, link := range links {
		link.Category = s.category
		product := s.scrapeProduct(ctx, link)
		product.ScrapedAt = scrapedAt
		products = append(products, product)

		if product.DataQuality == domain.QualityFailed {
			job.Errors = append(job.Errors, fmt.Sprintf("%s: %s", link.ID, product.Error))
		}
		if (i+1)%50 == 0 {
			log.Printf("[SCRAPE] Job %s: %d/%d products", job.ID, i+1, len(links))
		}
		if ctx.Err() != nil {
			job.Status = JobStatusFailed
			job.EndTime = time.Now().UTC().Format(time.RFC3339)
			job.Errors = append(job.Errors, ctx.Err().Error())
			return nil, job, ctx.Err()
		}
	}

	job.Status = JobStatusCompleted
	job.EndTime = time.Now().UTC().Format(time.RFC3339)
	job.ProductCount = len(products)

	return &domain.RawDataset{
		ScrapedAt:     scrapedAt,
		TotalProducts: len(products),
		Products:      products,
	}, job, nil
}

// scrapeProduct fetches and parses one product page. Failures degrade to
// a minimal record carrying the error, never abort the run.
func (s *Service) scrapeProduct(ctx context.Context, link ProductLink) domain.RawProduct {
	html, err := s.fetcher.FetchPage(ctx, link.ProductURL)
	if err != nil {
		return failedProduct(link, err)
	}

	product, err := ExtractProduct(html, link, s.baseURL)
	if err != nil {
		return failedProduct(link, err)
	}
	return product
}

func failedProduct(link ProductLink, err error) domain.RawProduct {
	log.Printf("[SCRAPE] Failed to scrape %s: %v", link.ID, err)
	return domain.RawProduct{
		ID:           link.ID,
		Name:         link.Name,
		Category:     link.Category,
		CategoryCode: link.CategoryCode,
		ProductURL:   link.ProductURL,
		DataQuality:  domain.QualityFailed,
		Error:        err.Error(),
	}
}
