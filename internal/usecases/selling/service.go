// Package selling expõe as vendas para a camada HTTP independentemente da origem dos registros
package selling

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type SalesService interface {
	GetSales(ctx context.Context, query domain.SalesQuery) (*domain.SalesPage, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
	Status(ctx context.Context) (*domain.DataStatus, error)
}

type Options struct {
	// CacheSize é a quantidade de páginas guardadas; zero desliga o cache
	CacheSize int
}

type salesService struct {
	repo  repository.SalesRepository
	cache *lru.Cache
	now   func() time.Time
}

// NewSalesService só liga o cache de páginas quando a origem é versionada,
// porque a versão entra na chave e invalida as páginas a cada recarga
func NewSalesService(repo repository.SalesRepository, opts Options) (SalesService, error) {
	s := &salesService{
		repo: repo,
		now:  time.Now,
	}

	if _, versioned := repo.(repository.VersionedRepository); versioned && opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar cache de páginas: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

func (s *salesService) GetSales(ctx context.Context, query domain.SalesQuery) (*domain.SalesPage, error) {
	key, cacheable := s.cacheKey(query)
	if cacheable {
		if cached, ok := s.cache.Get(key); ok {
			metrics.QueryCache.WithLabelValues("hit").Inc()
			return cached.(*domain.SalesPage), nil
		}
		metrics.QueryCache.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	page, err := s.repo.Query(ctx, query)
	metrics.QueryDuration.WithLabelValues(s.repo.Source()).Observe(time.Since(start).Seconds())
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("source", s.repo.Source()).Error("sales: query failed")
		return nil, err
	}

	if cacheable {
		s.cache.Add(key, page)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source":      s.repo.Source(),
		"total_items": page.Meta.TotalItems,
		"page":        page.Meta.CurrentPage,
		"filtered":    query.HasFilters(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("sales: query executed")

	return page, nil
}

func (s *salesService) cacheKey(query domain.SalesQuery) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	versioned := s.repo.(repository.VersionedRepository)
	return fmt.Sprintf("%d|%s", versioned.Version(), query.CacheKey()), true
}

func (s *salesService) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	options, err := s.repo.FilterOptions(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("sales: filter options failed")
		return nil, err
	}
	return options, nil
}

// loadTracker é implementado pelas origens carregadas em memória
type loadTracker interface {
	LoadedAt() time.Time
}

// Status sempre devolve o DataStatus preenchido; o erro indica origem indisponível
func (s *salesService) Status(ctx context.Context) (*domain.DataStatus, error) {
	status := &domain.DataStatus{
		Status:     StatusOK,
		DataSource: s.repo.Source(),
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	}

	if versioned, ok := s.repo.(repository.VersionedRepository); ok {
		status.Version = versioned.Version()
	}
	if tracked, ok := s.repo.(loadTracker); ok {
		status.LoadedAt = tracked.LoadedAt().UTC().Format(time.RFC3339)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		status.Status = StatusUnavailable
		log.ForContext(ctx).WithError(err).Warn("sales: status check failed")
		return status, err
	}
	status.RecordCount = count

	return status, nil
}
