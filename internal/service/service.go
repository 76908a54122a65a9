package service

import (
	"context"
	"fmt"

	"wildberries/parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Result is the output of one pipeline run.
type Result struct {
	Category *domain.CategoryNode
	Rows     []domain.NormalizedRecord
}

type Service struct {
	loader     *CatalogLoader
	resolver   *PathResolver
	fetcher    *ListingFetcher
	normalizer *RecordNormalizer
}

func NewService(
	loader *CatalogLoader,
	resolver *PathResolver,
	fetcher *ListingFetcher,
	normalizer *RecordNormalizer,
) *Service {
	return &Service{
		loader:     loader,
		resolver:   resolver,
		fetcher:    fetcher,
		normalizer: normalizer,
	}
}

// Run loads the catalog, resolves catalogPath, fetches every listing page and normalizes the products.
func (s *Service) Run(ctx context.Context, catalogPath string) (*Result, error) {
	tree, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	category, err := s.resolver.Resolve(catalogPath, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", catalogPath, err)
	}

	subjectID := category.SubjectID()
	log.Infof("🔄 Processing category: %s (shard %s, subject %s)", category.Name, category.Shard, subjectID)

	records, err := s.fetcher.FetchAll(ctx, category.Shard, subjectID)
	if err != nil {
		return nil, err
	}

	rows, err := s.normalizer.Normalize(records)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize products: %w", err)
	}

	log.Infof("✅ Completed %s: %d products", category.URL, len(rows))

	return &Result{
		Category: category,
		Rows:     rows,
	}, nil
}
