package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"wildberries/parser/internal/config"
	"wildberries/parser/internal/domain"
	"wildberries/parser/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type WildberriesClient interface {
	// GetCatalogMenu returns the raw menu document exactly as served.
	GetCatalogMenu(ctx context.Context) ([]byte, error)
	GetProductsPage(ctx context.Context, shard, subjectID string, page int) ([]domain.ProductRecord, error)
	Close() error
}

type listingResponse struct {
	Data *struct {
		Products []domain.ProductRecord `json:"products"`
	} `json:"data"`
}

type wildberriesClient struct {
	rl            ratelimit.Limiter
	config        config.WildberriesConfig
	httpClient    *resty.Client
	proxySupplier proxy.ProxySupplier
	currentProxy  string
}

func NewWildberriesClient(cfg config.WildberriesConfig, proxySupplier proxy.ProxySupplier) WildberriesClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "*/*")

	return &wildberriesClient{
		rl:            newLimiter(cfg.MaxRequestsPerSecond),
		config:        cfg,
		httpClient:    client,
		proxySupplier: proxySupplier,
	}
}

// newLimiter caps the request rate across all endpoints; rps <= 0 disables the cap.
func newLimiter(rps int) ratelimit.Limiter {
	if rps <= 0 {
		return ratelimit.NewUnlimited()
	}
	return ratelimit.New(rps, ratelimit.WithoutSlack)
}

func (c *wildberriesClient) GetCatalogMenu(ctx context.Context) ([]byte, error) {
	body, err := c.fetch(ctx, c.config.MenuURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog menu: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: catalog menu is not valid JSON", domain.ErrMalformedResponse)
	}

	log.Debugf("Fetched catalog menu (%d bytes)", len(body))
	return body, nil
}

func (c *wildberriesClient) GetProductsPage(ctx context.Context, shard, subjectID string, page int) ([]domain.ProductRecord, error) {
	url := fmt.Sprintf(c.config.ListingURL, shard)
	params := c.listingParams(subjectID, page)

	body, err := c.fetch(ctx, url, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d of %s: %w", page, shard, err)
	}

	var resp listingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: page %d of %s: %v", domain.ErrMalformedResponse, page, shard, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: page %d of %s has no data object", domain.ErrMalformedResponse, page, shard)
	}

	log.Debugf("Fetched page %d of %s with %d products", page, shard, len(resp.Data.Products))
	return resp.Data.Products, nil
}

func (c *wildberriesClient) listingParams(subjectID string, page int) map[string]string {
	p := c.config.Listing
	return map[string]string{
		"appType": p.AppType,
		"curr":    p.Currency,
		"dest":    p.Dest,
		"locale":  p.Locale,
		"page":    strconv.Itoa(page),
		"reg":     p.Reg,
		"regions": p.Regions,
		"sort":    p.Sort,
		"spp":     p.Spp,
		"subject": subjectID,
	}
}

func (c *wildberriesClient) fetch(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	c.rotateProxy()
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: request cancelled: %w", domain.ErrNetwork, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP error: %d %s", domain.ErrNetwork, resp.StatusCode(), resp.Status())
	}

	return resp.Bytes(), nil
}

// rotateProxy switches to the supplier's next proxy before every request.
func (c *wildberriesClient) rotateProxy() {
	if c.proxySupplier == nil {
		return
	}

	proxyURL := c.proxySupplier.Get()
	if proxyURL == "" || proxyURL == c.currentProxy {
		return
	}

	c.httpClient.SetProxy(proxyURL)
	c.currentProxy = proxyURL
	log.Debugf("🔗 Using proxy: %s", proxyURL)
}

func (c *wildberriesClient) Close() error {
	return c.httpClient.Close()
}
