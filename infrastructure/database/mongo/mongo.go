package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Connection struct {
	client   *mongo.Client
	database string
}

func NewConnection(ctx context.Context, cfg config.Mongo) (*Connection, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb connection URI is empty")
	}

	clientOptions := options.Client().ApplyURI(cfg.URI).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.L.WithField("database", cfg.Database).Info("Conectado ao MongoDB")
	return &Connection{client: client, database: cfg.Database}, nil
}

func (c *Connection) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

func (c *Connection) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		log.L.WithError(err).Error("Falha ao desconectar do MongoDB")
		return err
	}
	return nil
}
