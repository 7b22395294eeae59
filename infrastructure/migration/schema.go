// Package migration cria as estruturas de armazenamento das vendas
package migration

import (
	"context"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SalesTable = "sales"

// PostgresSchema é idempotente e pode ser aplicado a cada importação
var PostgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id                  BIGSERIAL PRIMARY KEY,
		transaction_id      TEXT NOT NULL UNIQUE,
		date                TIMESTAMPTZ NULL,
		customer_id         TEXT NOT NULL DEFAULT '',
		customer_name       TEXT NOT NULL DEFAULT '',
		phone_number        TEXT NOT NULL DEFAULT '',
		gender              TEXT NOT NULL DEFAULT '',
		age                 INTEGER NULL CHECK (age >= 0),
		customer_region     TEXT NOT NULL DEFAULT '',
		customer_type       TEXT NOT NULL DEFAULT '',
		product_id          TEXT NOT NULL DEFAULT '',
		product_name        TEXT NOT NULL DEFAULT '',
		brand               TEXT NOT NULL DEFAULT '',
		product_category    TEXT NOT NULL DEFAULT '',
		tags                TEXT[] NOT NULL DEFAULT '{}',
		quantity            INTEGER NOT NULL DEFAULT 0,
		price_per_unit      NUMERIC(14,2) NOT NULL DEFAULT 0,
		discount_percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
		total_amount        NUMERIC(14,2) NOT NULL DEFAULT 0,
		final_amount        NUMERIC(14,2) NOT NULL DEFAULT 0,
		payment_method      TEXT NOT NULL DEFAULT '',
		order_status        TEXT NOT NULL DEFAULT '',
		delivery_type       TEXT NOT NULL DEFAULT '',
		store_id            TEXT NOT NULL DEFAULT '',
		store_location      TEXT NOT NULL DEFAULT '',
		salesperson_id      TEXT NOT NULL DEFAULT '',
		employee_name       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_customer_name ON sales (customer_name)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_phone_number ON sales (phone_number)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_region ON sales (customer_region)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_category ON sales (product_category)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_tags ON sales USING GIN (tags)`,
}

// ApplyPostgres executa o schema das vendas
func ApplyPostgres(ctx context.Context, db postgres.Queryer) error {
	for i, stmt := range PostgresSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar migração %d: %w", i+1, err)
		}
	}

	log.L.WithField("statements", len(PostgresSchema)).Info("Schema de vendas aplicado")
	return nil
}

// MongoIndexes espelha os índices da tabela sales
func MongoIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerName", Value: 1}}},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "customerRegion", Value: 1}}},
		{Keys: bson.D{{Key: "productCategory", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
}

// EnsureMongoIndexes cria os índices da coleção de vendas
func EnsureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	names, err := coll.Indexes().CreateMany(ctx, MongoIndexes())
	if err != nil {
		return fmt.Errorf("erro ao criar índices no MongoDB: %w", err)
	}

	log.L.WithField("indexes", names).Info("Índices de vendas garantidos")
	return nil
}
