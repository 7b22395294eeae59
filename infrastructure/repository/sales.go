package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	SourceMemory   = "csv"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

//go:generate mockgen -source=sales.go -destination=mocks/mock_sales.go -package=mocks

// SalesRepository é a única interface de leitura consumida pelo serviço,
// qualquer que seja a origem dos registros
type SalesRepository interface {
	Query(ctx context.Context, q domain.SalesQuery) (*domain.SalesPage, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
	Count(ctx context.Context) (int64, error)
	Source() string
}

// VersionedRepository é implementado por origens que trocam o dataset
// inteiro de uma vez. A versão muda a cada troca.
type VersionedRepository interface {
	SalesRepository
	Version() uint64
}

// SalesWriter é usado pelo importador para popular as origens persistentes
type SalesWriter interface {
	EnsureSchema(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, batch []*domain.Transaction) (int64, error)
	Source() string
}

func unavailable(source, op string, err error) error {
	return errors.Wrap(&domain.DataError{Source: source, Err: err}, op)
}
