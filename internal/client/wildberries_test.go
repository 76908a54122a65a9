package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wildberries/parser/internal/config"
	"wildberries/parser/internal/domain"
	"wildberries/parser/internal/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.WildberriesConfig {
	return config.WildberriesConfig{
		MenuURL:    baseURL + "/webapi/menu/main-menu-ru-ru.json",
		ListingURL: baseURL + "/catalog/%s/catalog",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		Timeout:    5,
		Listing: config.ListingParams{
			AppType:  "1",
			Currency: "rub",
			Dest:     "-1075831,-77677,-398551,12358499",
			Locale:   "ru",
			Reg:      "0",
			Regions:  "64,83,4",
			Sort:     "popular",
			Spp:      "0",
		},
	}
}

func TestGetCatalogMenu_ReturnsBodyVerbatim(t *testing.T) {
	body := "[{\"id\":1,\"url\":\"/catalog/elektronika\",\"childs\":[{\"url\":\"/catalog/elektronika/smartfony-i-telefony\"}]}]\n"

	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webapi/menu/main-menu-ru-ru.json", r.URL.Path)
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewWildberriesClient(testConfig(srv.URL), nil)
	defer c.Close()

	got, err := c.GetCatalogMenu(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
	assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", gotUA)
	assert.Equal(t, "*/*", gotAccept)
}

func TestGetCatalogMenu_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := NewWildberriesClient(testConfig(srv.URL), nil)
	defer c.Close()

	_, err := c.GetCatalogMenu(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestGetCatalogMenu_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewWildberriesClient(testConfig(srv.URL), nil)
	defer c.Close()

	_, err := c.GetCatalogMenu(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestGetCatalogMenu_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewWildberriesClient(testConfig(base), nil)
	defer c.Close()

	_, err := c.GetCatalogMenu(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestGetProductsPage_SendsListingParams(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog/electronic43/catalog", r.URL.Path)
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":{"products":[
			{"id":101,"name":"Phone","sale":10,"priceU":1000000,"salePriceU":900000,"brand":"Acme","brandId":7,"feedbacks":3,"rating":5},
			{"id":102,"name":"Case","sale":0,"priceU":50000,"salePriceU":50000,"brand":"Acme","brandId":7,"feedbacks":0,"rating":0}
		]}}`))
	}))
	defer srv.Close()

	c := NewWildberriesClient(testConfig(srv.URL), nil)
	defer c.Close()

	products, err := c.GetProductsPage(context.Background(), "electronic43", "515", 3)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.EqualValues(t, 101, *products[0].ID)
	assert.Equal(t, "Case", *products[1].Name)

	assert.Equal(t, "3", query.Get("page"))
	assert.Equal(t, "515", query.Get("subject"))
	assert.Equal(t, "rub", query.Get("curr"))
	assert.Equal(t, "ru", query.Get("locale"))
	assert.Equal(t, "popular", query.Get("sort"))
	assert.Equal(t, "0", query.Get("spp"))
	assert.Equal(t, "1", query.Get("appType"))
	assert.Equal(t, "0", query.Get("reg"))
	assert.Equal(t, "-1075831,-77677,-398551,12358499", query.Get("dest"))
	assert.Equal(t, "64,83,4", query.Get("regions"))
}

func TestGetProductsPage_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"products":[]}}`))
	}))
	defer srv.Close()

	c := NewWildberriesClient(testConfig(srv.URL), nil)
	defer c.Close()

	products, err := c.GetProductsPage(context.Background(), "electronic43", "515", 1)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProductsPage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `oops`},
		{name: "missing data", body: `{"state":0}`},
		{name: "products not an array", body: `{"data":{"products":"none"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewWildberriesClient(testConfig(srv.URL), nil)
			defer c.Close()

			_, err := c.GetProductsPage(context.Background(), "electronic43", "515", 1)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestGetProductsPage_RequestRateCeiling(t *testing.T) {
	var (
		mu    sync.Mutex
		times []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		mu.Unlock()
		_, _ = w.Write([]byte(`{"data":{"products":[]}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRequestsPerSecond = 10
	c := NewWildberriesClient(cfg, nil)
	defer c.Close()

	for page := 1; page <= 3; page++ {
		_, err := c.GetProductsPage(context.Background(), "electronic43", "515", page)
		require.NoError(t, err)
	}

	require.Len(t, times, 3)
	assert.GreaterOrEqual(t, times[2].Sub(times[0]), 180*time.Millisecond)
}

func TestWildberriesClient_RotatesProxyPerRequest(t *testing.T) {
	newForwardProxy := func(hits *atomic.Int32) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				hits.Add(1)
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	var firstHits, secondHits atomic.Int32
	first := newForwardProxy(&firstHits)
	second := newForwardProxy(&secondHits)

	cfg := testConfig("http://wb.invalid")
	supplier := proxy.NewProxySupplier(context.Background(), []string{first.URL, second.URL}, cfg.MenuURL)
	c := NewWildberriesClient(cfg, supplier)
	defer c.Close()

	for i := 0; i < 4; i++ {
		_, err := c.GetCatalogMenu(context.Background())
		require.NoError(t, err)
	}

	assert.EqualValues(t, 2, firstHits.Load())
	assert.EqualValues(t, 2, secondHits.Load())
}
