package querying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		order    domain.SortOrder
		expected []string
	}{
		{name: "quantidade desc", field: "quantity", order: domain.SortDesc, expected: []string{"T4", "T5", "T1", "T3", "T2"}},
		{name: "quantidade asc", field: "quantity", order: domain.SortAsc, expected: []string{"T2", "T3", "T1", "T5", "T4"}},
		{name: "nome com collation", field: "customerName", order: domain.SortAsc, expected: []string{"T5", "T2", "T1", "T3", "T4"}},
		{name: "nome desc", field: "customerName", order: domain.SortDesc, expected: []string{"T4", "T3", "T1", "T2", "T5"}},
		{name: "data desc mantém empate e ausente no fim", field: "date", order: domain.SortDesc, expected: []string{"T3", "T4", "T2", "T1", "T5"}},
		{name: "idade asc com ausente no fim", field: "age", order: domain.SortAsc, expected: []string{"T4", "T1", "T2", "T3", "T5"}},
		{name: "idade desc com ausente no fim", field: "age", order: domain.SortDesc, expected: []string{"T3", "T2", "T1", "T4", "T5"}},
		{name: "campo desconhecido mantém ordem", field: "nope", order: domain.SortDesc, expected: []string{"T1", "T2", "T3", "T4", "T5"}},
		{name: "tags não é ordenável", field: "tags", order: domain.SortAsc, expected: []string{"T1", "T2", "T3", "T4", "T5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Sort(sampleRecords(), tt.field, tt.order)))
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	_ = Sort(records, "quantity", domain.SortDesc)

	assert.Equal(t, []string{"T1", "T2", "T3", "T4", "T5"}, ids(records))
}

func TestSort_Stable(t *testing.T) {
	records := []*domain.Transaction{
		{TransactionID: "a", ProductCategory: "Beauty"},
		{TransactionID: "b", ProductCategory: "Clothing"},
		{TransactionID: "c", ProductCategory: "Beauty"},
		{TransactionID: "d", ProductCategory: "Clothing"},
		{TransactionID: "e", ProductCategory: "Beauty"},
	}

	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(Sort(records, "productCategory", domain.SortAsc)))
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(Sort(records, "productCategory", domain.SortDesc)))
}

func TestSort_QuantityScenario(t *testing.T) {
	records := []*domain.Transaction{
		{TransactionID: "q3", Quantity: 3},
		{TransactionID: "q1", Quantity: 1},
		{TransactionID: "q2", Quantity: 2},
	}

	assert.Equal(t, []string{"q3", "q2", "q1"}, ids(Sort(records, "quantity", domain.SortDesc)))
}

func TestIsSortable(t *testing.T) {
	assert.True(t, IsSortable("customerName"))
	assert.True(t, IsSortable("date"))
	assert.False(t, IsSortable("tags"))
	assert.False(t, IsSortable("customerName; DROP TABLE sales"))
	assert.Contains(t, SortableFields(), "finalAmount")
}
