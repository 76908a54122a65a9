package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wildberries/parser/internal/cache"
	"wildberries/parser/internal/client"
	"wildberries/parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

// CatalogLoader returns the menu tree, preferring the cached copy over the network.
type CatalogLoader struct {
	client   client.WildberriesClient
	cache    cache.Cache
	cacheKey string
}

func NewCatalogLoader(client client.WildberriesClient, cache cache.Cache, cacheKey string) *CatalogLoader {
	return &CatalogLoader{
		client:   client,
		cache:    cache,
		cacheKey: cacheKey,
	}
}

// Load returns the whole menu as a synthetic root node.
// A cached document is trusted as is and never refreshed.
func (l *CatalogLoader) Load(ctx context.Context) (*domain.CategoryNode, error) {
	cached, err := l.cache.Get(ctx, l.cacheKey)
	switch {
	case err == nil:
		log.Infof("📂 Using cached catalog %s", l.cacheKey)
		return parseCatalog(cached)
	case !errors.Is(err, cache.ErrNotFound):
		return nil, fmt.Errorf("%w: %w", domain.ErrCacheIO, err)
	}

	log.Infof("🌐 Catalog %s is not cached, fetching menu", l.cacheKey)

	body, err := l.client.GetCatalogMenu(ctx)
	if err != nil {
		return nil, err
	}

	tree, err := parseCatalog(body)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Put(ctx, l.cacheKey, body); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCacheIO, err)
	}

	return tree, nil
}

func parseCatalog(data []byte) (*domain.CategoryNode, error) {
	var topLevel []domain.CategoryNode
	if err := json.Unmarshal(data, &topLevel); err != nil {
		return nil, fmt.Errorf("%w: catalog menu: %v", domain.ErrMalformedResponse, err)
	}
	return domain.CatalogTree(topLevel), nil
}
