package querying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestExecute_RegionScenario(t *testing.T) {
	records := sampleRecords()

	result := Execute(records, domain.SalesQuery{
		Regions:   []string{"North", "South"},
		SortBy:    "customerName",
		SortOrder: domain.SortAsc,
		Page:      1,
		Limit:     10,
	})

	assert.Equal(t, []string{"T2", "T1", "T3"}, ids(result.Data))
	assert.Equal(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 6, result.Stats.TotalUnitsSold)
}

func TestExecute_StatsIgnorePagination(t *testing.T) {
	records := makeRecords(57)
	query := domain.SalesQuery{SortBy: "quantity", SortOrder: domain.SortDesc, Page: 1, Limit: 10}

	small := Execute(records, query)
	query.Limit = 1000
	large := Execute(records, query)

	assert.Len(t, small.Data, 10)
	assert.Len(t, large.Data, 57)
	assert.Equal(t, small.Stats, large.Stats)
	assert.Equal(t, 57*58/2, small.Stats.TotalUnitsSold)
}

func TestExecute_Idempotent(t *testing.T) {
	records := sampleRecords()
	query := domain.SalesQuery{SearchTerm: "a", Genders: []string{"Female"}, SortBy: "date", SortOrder: domain.SortDesc, Page: 1, Limit: 2}

	assert.Equal(t, Execute(records, query), Execute(records, query))
}

func TestExecute_EmptyResult(t *testing.T) {
	result := Execute(sampleRecords(), domain.SalesQuery{SearchTerm: "nobody", Page: 3, Limit: 10})

	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Equal(t, domain.PageMeta{TotalItems: 0, TotalPages: 1, CurrentPage: 1, PageSize: 10}, result.Meta)
	assert.Equal(t, domain.SalesStats{}, result.Stats)
}

func TestBuildFilterOptions(t *testing.T) {
	options := BuildFilterOptions(sampleRecords())

	assert.Equal(t, []string{"East", "North", "South", "West"}, options.Regions)
	assert.Equal(t, []string{"Female", "Male"}, options.Genders)
	assert.Equal(t, []string{"Beauty", "Clothing", "Electronics"}, options.Categories)
	assert.Contains(t, options.Tags, "wireless")
	assert.Equal(t, "2023-01-05", options.MinDate)
	assert.Equal(t, "2023-03-15", options.MaxDate)
	assert.Equal(t, domain.DefaultAgeRanges, options.AgeRanges)
}
