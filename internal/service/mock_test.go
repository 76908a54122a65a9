package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wildberries/parser/internal/cache"
	"wildberries/parser/internal/domain"
)

type pageCall struct {
	shard     string
	subjectID string
	page      int
	started   time.Time
	finished  time.Time
}

// fakeClient serves a fixed menu and a fixed list of pages; pages past the end are empty.
type fakeClient struct {
	menu      []byte
	menuErr   error
	menuCalls int

	pages     [][]domain.ProductRecord
	failPage  int
	pageErr   error
	pageCalls []pageCall
	latency   time.Duration
}

func (c *fakeClient) GetCatalogMenu(_ context.Context) ([]byte, error) {
	c.menuCalls++
	if c.menuErr != nil {
		return nil, c.menuErr
	}
	return c.menu, nil
}

func (c *fakeClient) GetProductsPage(_ context.Context, shard, subjectID string, page int) ([]domain.ProductRecord, error) {
	call := pageCall{shard: shard, subjectID: subjectID, page: page, started: time.Now()}
	time.Sleep(c.latency)
	call.finished = time.Now()
	c.pageCalls = append(c.pageCalls, call)

	if c.failPage == page {
		return nil, c.pageErr
	}
	if page-1 < len(c.pages) {
		return c.pages[page-1], nil
	}
	return []domain.ProductRecord{}, nil
}

func (c *fakeClient) Close() error { return nil }

type memoryCache struct {
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return v, nil
}

func (m *memoryCache) Put(_ context.Context, key string, value []byte) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

var errBoom = errors.New("boom")

func product(id int64, name string) domain.ProductRecord {
	sale := 15
	feedbacks := 42
	brand := "Acme"
	priceU := json.Number("1299000")
	salePriceU := json.Number("1104150")
	brandID := json.Number("3321")
	rating := json.Number("4.5")
	return domain.ProductRecord{
		ID:         &id,
		Name:       &name,
		Sale:       &sale,
		PriceU:     &priceU,
		SalePriceU: &salePriceU,
		Brand:      &brand,
		BrandID:    &brandID,
		Feedbacks:  &feedbacks,
		Rating:     &rating,
	}
}

const testMenu = `[
  {"id": 4830, "name": "Электроника", "url": "/catalog/elektronika", "childs": [
    {"id": 9468, "name": "Смартфоны и телефоны", "url": "/catalog/elektronika/smartfony-i-telefony", "shard": "electronic14", "query": "subject=9;515;5428", "childs": [
      {"id": 9469, "name": "Все смартфоны", "url": "/catalog/elektronika/smartfony-i-telefony/vse-smartfony", "shard": "electronic14", "query": "subject=515"},
      {"id": 9470, "name": "Кнопочные телефоны", "url": "/catalog/elektronika/smartfony-i-telefony/knopochnye-telefony", "shard": "electronic14", "query": "kind=2&subject=516"}
    ]},
    {"id": 9835, "name": "Ноутбуки", "url": "/catalog/elektronika/noutbuki-pereferiya", "shard": "electronic15", "query": "subject=2290"}
  ]},
  {"id": 115, "name": "Игрушки", "url": "/catalog/igrushki", "childs": [
    {"id": 116, "name": "Игры", "url": "/catalog/igrushki/igry", "shard": "toys3", "query": "subject=120"}
  ]}
]`

func testTree() *domain.CategoryNode {
	var topLevel []domain.CategoryNode
	if err := json.Unmarshal([]byte(testMenu), &topLevel); err != nil {
		panic(err)
	}
	return domain.CatalogTree(topLevel)
}
