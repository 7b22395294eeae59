package querying

import (
	"slices"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// BuildFilterOptions levanta os valores distintos de cada filtro do dashboard
func BuildFilterOptions(records []*domain.Transaction) *domain.FilterOptions {
	regions := map[string]struct{}{}
	genders := map[string]struct{}{}
	categories := map[string]struct{}{}
	tags := map[string]struct{}{}
	payments := map[string]struct{}{}

	var minDate, maxDate time.Time

	for _, r := range records {
		addValue(regions, r.CustomerRegion)
		addValue(genders, r.Gender)
		addValue(categories, r.ProductCategory)
		addValue(payments, r.PaymentMethod)
		for _, tag := range r.Tags {
			addValue(tags, tag)
		}

		if r.Date.IsZero() {
			continue
		}
		if minDate.IsZero() || r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	options := &domain.FilterOptions{
		Regions:        sortedKeys(regions),
		Genders:        sortedKeys(genders),
		Categories:     sortedKeys(categories),
		Tags:           sortedKeys(tags),
		PaymentMethods: sortedKeys(payments),
		AgeRanges:      slices.Clone(domain.DefaultAgeRanges),
	}
	if !minDate.IsZero() {
		options.MinDate = minDate.Format(time.DateOnly)
		options.MaxDate = maxDate.Format(time.DateOnly)
	}

	return options
}

func addValue(set map[string]struct{}, value string) {
	if value != "" {
		set[value] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
