package querying

import (
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	if len(values) == 0 {
		return nil
	}
	set := make(stringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// has só é chamado com conjuntos ativos; valor vazio nunca casa
func (s stringSet) has(value string) bool {
	if value == "" {
		return false
	}
	_, ok := s[value]
	return ok
}

func (s stringSet) hasAny(values []string) bool {
	for _, v := range values {
		if s.has(v) {
			return true
		}
	}
	return false
}

// Criteria é a forma compilada dos filtros de uma SalesQuery
type Criteria struct {
	regions        stringSet
	genders        stringSet
	categories     stringSet
	tags           stringSet
	paymentMethods stringSet

	// ageActive continua verdadeiro mesmo quando todos os tokens são inválidos:
	// nesse caso nenhuma idade casa.
	ageActive bool
	ageRanges []AgeRange

	dateFrom *time.Time
	dateTo   *time.Time
}

// NewCriteria compila os filtros da consulta. DateTo já deve vir com o fim do dia
// aplicado quando a origem era uma data sem horário (ver ParseQuery).
func NewCriteria(q domain.SalesQuery) Criteria {
	return Criteria{
		regions:        newStringSet(q.Regions),
		genders:        newStringSet(q.Genders),
		categories:     newStringSet(q.Categories),
		tags:           newStringSet(q.Tags),
		paymentMethods: newStringSet(q.PaymentMethods),
		ageActive:      len(q.AgeRanges) > 0,
		ageRanges:      ParseAgeRanges(q.AgeRanges),
		dateFrom:       q.DateFrom,
		dateTo:         q.DateTo,
	}
}

// Active informa se existe ao menos um critério restritivo
func (c Criteria) Active() bool {
	return c.regions != nil || c.genders != nil || c.categories != nil || c.tags != nil ||
		c.paymentMethods != nil || c.ageActive || c.dateFrom != nil || c.dateTo != nil
}

// Match aplica todos os critérios ativos (E entre grupos, OU dentro de cada grupo)
func (c Criteria) Match(r *domain.Transaction) bool {
	if c.regions != nil && !c.regions.has(r.CustomerRegion) {
		return false
	}
	if c.genders != nil && !c.genders.has(r.Gender) {
		return false
	}
	if c.ageActive && !c.matchAge(r) {
		return false
	}
	if c.categories != nil && !c.categories.has(r.ProductCategory) {
		return false
	}
	if c.tags != nil && !c.tags.hasAny(r.Tags) {
		return false
	}
	if c.paymentMethods != nil && !c.paymentMethods.has(r.PaymentMethod) {
		return false
	}
	return c.matchDate(r)
}

func (c Criteria) matchAge(r *domain.Transaction) bool {
	if !r.HasAge() {
		return false
	}
	for _, ar := range c.ageRanges {
		if ar.Contains(*r.Age) {
			return true
		}
	}
	return false
}

func (c Criteria) matchDate(r *domain.Transaction) bool {
	if c.dateFrom == nil && c.dateTo == nil {
		return true
	}
	if r.Date.IsZero() {
		return false
	}
	if c.dateFrom != nil && r.Date.Before(*c.dateFrom) {
		return false
	}
	if c.dateTo != nil && r.Date.After(*c.dateTo) {
		return false
	}
	return true
}

// Filter devolve os registros que satisfazem todos os critérios ativos.
// Sem critérios ativos devolve a entrada intacta.
func Filter(records []*domain.Transaction, c Criteria) []*domain.Transaction {
	if !c.Active() {
		return records
	}

	result := make([]*domain.Transaction, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			result = append(result, r)
		}
	}

	return result
}
