package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id is not in the corpus
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrDatasetNotFound is returned when a persisted dataset file is missing
	ErrDatasetNotFound = errors.New("dataset file not found")

	// ErrCorpusUnavailable is returned when no corpus snapshot has ever loaded
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrScrapeFailure is returned when a catalog page cannot be fetched
	ErrScrapeFailure = errors.New("catalog scrape failed")
)
