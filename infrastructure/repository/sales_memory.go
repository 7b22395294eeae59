package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
)

type snapshot struct {
	records  []*domain.Transaction
	options  *domain.FilterOptions
	version  uint64
	loadedAt time.Time
}

// MemorySalesRepository serve consultas a partir de um snapshot imutável.
// Replace troca o snapshot atomicamente; consultas em andamento terminam
// sobre o snapshot em que começaram.
type MemorySalesRepository struct {
	current  atomic.Pointer[snapshot]
	versions atomic.Uint64
	source   string
}

func NewMemorySalesRepository(source string, records []*domain.Transaction) *MemorySalesRepository {
	repo := &MemorySalesRepository{source: source}
	repo.Replace(records)
	return repo
}

// Replace publica um novo conjunto de registros e devolve a nova versão.
// O slice passa a pertencer ao repositório e não deve ser alterado.
func (r *MemorySalesRepository) Replace(records []*domain.Transaction) uint64 {
	version := r.versions.Add(1)

	if records == nil {
		records = []*domain.Transaction{}
	}

	r.current.Store(&snapshot{
		records:  records,
		options:  querying.BuildFilterOptions(records),
		version:  version,
		loadedAt: time.Now().UTC(),
	})

	return version
}

func (r *MemorySalesRepository) Query(ctx context.Context, q domain.SalesQuery) (*domain.SalesPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := r.current.Load()
	return querying.Execute(snap.records, q), nil
}

// FilterOptions devolve uma cópia das opções calculadas na carga do snapshot
func (r *MemorySalesRepository) FilterOptions(_ context.Context) (*domain.FilterOptions, error) {
	options := *r.current.Load().options
	return &options, nil
}

func (r *MemorySalesRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.current.Load().records)), nil
}

func (r *MemorySalesRepository) Version() uint64 {
	return r.current.Load().version
}

func (r *MemorySalesRepository) LoadedAt() time.Time {
	return r.current.Load().loadedAt
}

func (r *MemorySalesRepository) Source() string {
	return r.source
}
