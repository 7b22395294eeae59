package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type fakeStore struct {
	total    int
	stats    domain.SalesStats
	aggErr   error
	fetchErr error

	mu      sync.Mutex
	offsets []int
}

func (f *fakeStore) aggregate(context.Context) (int, domain.SalesStats, error) {
	return f.total, f.stats, f.aggErr
}

func (f *fakeStore) fetch(_ context.Context, offset, limit int) ([]*domain.Transaction, error) {
	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	f.mu.Unlock()

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if offset >= f.total {
		return nil, nil
	}
	n := min(limit, f.total-offset)
	data := make([]*domain.Transaction, n)
	for i := range data {
		data[i] = &domain.Transaction{Quantity: offset + i}
	}
	return data, nil
}

func TestQueryPage(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		page          int
		limit         int
		expectedMeta  domain.PageMeta
		expectedLen   int
		expectedFetch []int
	}{
		{
			name:          "página zero vira a primeira",
			total:         25,
			page:          0,
			limit:         10,
			expectedMeta:  domain.PageMeta{TotalItems: 25, TotalPages: 3, CurrentPage: 1, PageSize: 10, HasNextPage: true},
			expectedLen:   10,
			expectedFetch: []int{0},
		},
		{
			name:          "página dentro do intervalo busca uma vez",
			total:         25,
			page:          3,
			limit:         10,
			expectedMeta:  domain.PageMeta{TotalItems: 25, TotalPages: 3, CurrentPage: 3, PageSize: 10, HasPrevPage: true},
			expectedLen:   5,
			expectedFetch: []int{20},
		},
		{
			name:          "página além do fim é limitada e buscada de novo",
			total:         25,
			page:          9999,
			limit:         10,
			expectedMeta:  domain.PageMeta{TotalItems: 25, TotalPages: 3, CurrentPage: 3, PageSize: 10, HasPrevPage: true},
			expectedLen:   5,
			expectedFetch: []int{99980, 20},
		},
		{
			name:          "página gigante não estoura o offset",
			total:         3,
			page:          100000000000000000,
			limit:         100,
			expectedMeta:  domain.PageMeta{TotalItems: 3, TotalPages: 1, CurrentPage: 1, PageSize: 100},
			expectedLen:   3,
			expectedFetch: []int{0},
		},
		{
			name:          "sem registros",
			total:         0,
			page:          1,
			limit:         10,
			expectedMeta:  domain.PageMeta{TotalItems: 0, TotalPages: 1, CurrentPage: 1, PageSize: 10},
			expectedLen:   0,
			expectedFetch: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{total: tt.total, stats: domain.SalesStats{TotalUnitsSold: tt.total}}
			q := domain.SalesQuery{Page: tt.page, Limit: tt.limit}

			page, err := queryPage(context.Background(), SourcePostgres, q, store.aggregate, store.fetch)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedMeta, page.Meta)
			assert.Len(t, page.Data, tt.expectedLen)
			assert.NotNil(t, page.Data)
			assert.Equal(t, tt.total, page.Stats.TotalUnitsSold)
			assert.Equal(t, tt.expectedFetch, store.offsets)
			for _, offset := range store.offsets {
				assert.GreaterOrEqual(t, offset, 0)
			}
		})
	}
}

func TestQueryPage_Erros(t *testing.T) {
	driverErr := errors.New("connection refused")

	tests := []struct {
		name  string
		store *fakeStore
		page  int
	}{
		{
			name:  "falha na agregação",
			store: &fakeStore{total: 10, aggErr: driverErr},
			page:  1,
		},
		{
			name:  "falha na busca",
			store: &fakeStore{total: 10, fetchErr: driverErr},
			page:  1,
		},
		{
			name:  "falha na busca da página limitada",
			store: &fakeStore{total: 10, fetchErr: driverErr},
			page:  1000000000000000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := domain.SalesQuery{Page: tt.page, Limit: 10}

			_, err := queryPage(context.Background(), SourceMongo, q, tt.store.aggregate, tt.store.fetch)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDataUnavailable)
			assert.ErrorIs(t, err, driverErr)

			var dataErr *domain.DataError
			require.ErrorAs(t, err, &dataErr)
			assert.Equal(t, SourceMongo, dataErr.Source)
		})
	}
}
