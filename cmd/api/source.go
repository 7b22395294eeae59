package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/mongo"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

const storeConnectTimeout = 10 * time.Second

type storeOpener func(ctx context.Context, cfg *config.Config) (repository.SalesRepository, func(), error)

type csvLoader func(ctx context.Context, path string) ([]*domain.Transaction, dataset.Summary, error)

type sourceOpeners struct {
	postgres storeOpener
	mongo    storeOpener
	csv      csvLoader
}

func defaultOpeners() sourceOpeners {
	return sourceOpeners{
		postgres: openPostgres,
		mongo:    openMongo,
		csv:      dataset.LoadFile,
	}
}

// salesSource é a origem escolhida na inicialização; memory só existe no modo CSV
type salesSource struct {
	repo   repository.SalesRepository
	memory *repository.MemorySalesRepository
	close  func()
}

// openSalesSource tenta a origem configurada e cai para o CSV quando o banco
// está fora do ar ou vazio. Falha só quando nem o CSV pode ser carregado.
func openSalesSource(ctx context.Context, cfg *config.Config, openers sourceOpeners) (*salesSource, error) {
	var opener storeOpener
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		opener = openers.postgres
	case config.SourceMongo:
		opener = openers.mongo
	}

	if opener != nil {
		source, err := openStore(ctx, cfg, opener)
		if err == nil {
			return source, nil
		}
		log.L.WithError(err).WithField("source", cfg.Dataset.Source).Warn("Origem configurada indisponível, usando o CSV")
	}

	records, summary, err := openers.csv(ctx, cfg.Dataset.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar o CSV %s: %w", cfg.Dataset.CSVPath, err)
	}

	memory := repository.NewMemorySalesRepository(repository.SourceMemory, records)
	metrics.DatasetRecords.Set(float64(len(records)))

	log.L.WithFields(log.Fields{
		"path":     cfg.Dataset.CSVPath,
		"records":  summary.Rows,
		"skipped":  summary.Skipped,
		"issues":   summary.Issues,
		"duration": summary.Duration.String(),
	}).Info("CSV carregado em memória")

	return &salesSource{repo: memory, memory: memory, close: func() {}}, nil
}

func openStore(ctx context.Context, cfg *config.Config, opener storeOpener) (*salesSource, error) {
	connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	defer cancel()

	repo, closeFn, err := opener(connectCtx, cfg)
	if err != nil {
		return nil, err
	}

	count, err := repo.Count(connectCtx)
	if err != nil {
		closeFn()
		return nil, err
	}
	if count == 0 {
		closeFn()
		return nil, fmt.Errorf("%s não possui registros", repo.Source())
	}

	log.L.WithFields(log.Fields{
		"source":  repo.Source(),
		"records": count,
	}).Info("Origem de dados conectada")

	return &salesSource{repo: repo, close: closeFn}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.SalesRepository, func(), error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			log.L.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
		}
	}
	return repository.NewPostgresSalesRepository(conn), closeFn, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (repository.SalesRepository, func(), error) {
	conn, err := mongo.NewConnection(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}
	return repository.NewMongoSalesRepository(conn.Collection(cfg.Mongo.Collection)), closeFn, nil
}
