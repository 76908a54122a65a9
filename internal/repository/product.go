package repository

import (
	"context"
	"fmt"

	"wildberries/parser/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type ProductRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveProducts(ctx context.Context, category *domain.CategoryNode, rows []domain.NormalizedRecord) error
}

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepository{
		db: db,
	}
}

const createProductsTable = `
CREATE TABLE IF NOT EXISTS wb_products (
	id           BIGINT PRIMARY KEY,
	name         TEXT NOT NULL,
	sale         INTEGER NOT NULL,
	price_u      BIGINT NOT NULL,
	sale_price_u BIGINT NOT NULL,
	brand        TEXT NOT NULL,
	brand_id     BIGINT NOT NULL,
	feedbacks    INTEGER NOT NULL,
	rating       DOUBLE PRECISION NOT NULL,
	url          TEXT NOT NULL,
	shard        TEXT NOT NULL,
	subject      TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertProduct = `
INSERT INTO wb_products (id, name, sale, price_u, sale_price_u, brand, brand_id, feedbacks, rating, url, shard, subject, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
ON CONFLICT (id)
DO UPDATE SET name = $2, sale = $3, price_u = $4, sale_price_u = $5, brand = $6, brand_id = $7,
	feedbacks = $8, rating = $9, url = $10, shard = $11, subject = $12, updated_at = now()`

func (r *productRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createProductsTable); err != nil {
		return fmt.Errorf("failed to create wb_products table: %w", err)
	}
	return nil
}

// SaveProducts upserts all rows in a single transaction.
func (r *productRepository) SaveProducts(ctx context.Context, category *domain.CategoryNode, rows []domain.NormalizedRecord) error {
	if len(rows) == 0 {
		return nil
	}

	subjectID := category.SubjectID()
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(upsertProduct,
			row.ID, row.Name, row.Sale, row.PriceU, row.SalePriceU,
			row.Brand, row.BrandID, row.Feedbacks, row.Rating, row.URL,
			category.Shard, subjectID,
		)
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	log.Infof("🗄️ Saved %d products for %s", len(rows), category.Shard)
	return nil
}
