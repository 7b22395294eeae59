package repository

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/querying"
	"golang.org/x/sync/errgroup"
)

// aggregateFunc devolve o total filtrado e as estatísticas do conjunto
type aggregateFunc func(ctx context.Context) (int, domain.SalesStats, error)

// fetchFunc busca uma página já ordenada a partir do offset
type fetchFunc func(ctx context.Context, offset, limit int) ([]*domain.Transaction, error)

// queryPage roda agregação e busca da página pedida em paralelo. Se a página
// estiver fora do intervalo, ou o offset não couber em int, a busca é feita
// de novo com a página limitada pelo total.
func queryPage(ctx context.Context, source string, q domain.SalesQuery, aggregate aggregateFunc, fetch fetchFunc) (*domain.SalesPage, error) {
	plan := querying.PlanPage(q.Page, q.Limit)

	var (
		total int
		stats domain.SalesStats
		data  []*domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, stats, err = aggregate(gctx)
		return err
	})
	if plan.Speculative {
		g.Go(func() error {
			var err error
			data, err = fetch(gctx, plan.Offset, plan.PageSize)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, unavailable(source, "erro ao consultar vendas", err)
	}

	meta := querying.NewPageMeta(total, plan.Page, plan.PageSize)
	if plan.NeedsFetch(meta) {
		var err error
		data, err = fetch(ctx, querying.Offset(meta), meta.PageSize)
		if err != nil {
			return nil, unavailable(source, "erro ao consultar a página limitada", err)
		}
	}
	if data == nil {
		data = []*domain.Transaction{}
	}

	return &domain.SalesPage{
		Data:  data,
		Meta:  meta,
		Stats: stats,
	}, nil
}
