package service

import (
	"context"
	"fmt"
	"time"

	"wildberries/parser/internal/client"
	"wildberries/parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ListingFetcher pages through a category listing until the endpoint returns an empty page.
type ListingFetcher struct {
	client    client.WildberriesClient
	maxPages  int
	pageDelay time.Duration
}

// NewListingFetcher creates a fetcher. maxPages <= 0 means no page limit;
// pageDelay is the pause after every non-empty page.
func NewListingFetcher(client client.WildberriesClient, maxPages int, pageDelay time.Duration) *ListingFetcher {
	return &ListingFetcher{
		client:    client,
		maxPages:  maxPages,
		pageDelay: pageDelay,
	}
}

// FetchAll returns the products of every page in page order. Any failed request aborts the whole fetch.
func (f *ListingFetcher) FetchAll(ctx context.Context, shard, subjectID string) ([]domain.ProductRecord, error) {
	var records []domain.ProductRecord

	for page := 1; ; page++ {
		products, err := f.client.GetProductsPage(ctx, shard, subjectID, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch listing page %d: %w", page, err)
		}

		records = append(records, products...)
		if len(products) == 0 {
			break
		}

		log.Infof("📄 Page %d: %d products (%d total)", page, len(products), len(records))

		if f.maxPages > 0 && page >= f.maxPages {
			log.Warnf("⚠️ Reached max_pages=%d for %s (subject %s), stopping with %d products",
				f.maxPages, shard, subjectID, len(records))
			break
		}

		if err := f.pause(ctx); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (f *ListingFetcher) pause(ctx context.Context) error {
	if f.pageDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(f.pageDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: request cancelled: %w", domain.ErrNetwork, ctx.Err())
	case <-timer.C:
		return nil
	}
}
