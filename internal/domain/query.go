package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "customerName"
)

// SalesQuery descreve, já tipada, uma consulta de busca/filtro/ordenação/paginação.
// Um conjunto vazio em qualquer filtro significa "sem restrição".
type SalesQuery struct {
	SearchTerm     string
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
	AgeRanges      []string
	DateFrom       *time.Time
	DateTo         *time.Time
	SortBy         string
	SortOrder      SortOrder
	Page           int
	Limit          int
}

// HasFilters informa se algum critério de filtro está ativo (busca não conta)
func (q *SalesQuery) HasFilters() bool {
	return len(q.Regions) > 0 || len(q.Genders) > 0 || len(q.Categories) > 0 ||
		len(q.Tags) > 0 || len(q.PaymentMethods) > 0 || len(q.AgeRanges) > 0 ||
		q.DateFrom != nil || q.DateTo != nil
}

// CacheKey gera uma chave determinística derivada do conteúdo da consulta.
// A ordem dos valores dentro de cada conjunto não altera a chave.
func (q *SalesQuery) CacheKey() string {
	var b strings.Builder

	writeSet := func(name string, values []string) {
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.Join(sorted, ","))
		b.WriteByte('&')
	}

	writeDate := func(name string, date *time.Time) {
		b.WriteString(name)
		b.WriteByte('=')
		if date != nil {
			b.WriteString(date.UTC().Format(time.RFC3339))
		}
		b.WriteByte('&')
	}

	b.WriteString("q=")
	b.WriteString(strings.ToLower(q.SearchTerm))
	b.WriteByte('&')
	writeSet("regions", q.Regions)
	writeSet("genders", q.Genders)
	writeSet("categories", q.Categories)
	writeSet("tags", q.Tags)
	writeSet("payment", q.PaymentMethods)
	writeSet("age", q.AgeRanges)
	writeDate("from", q.DateFrom)
	writeDate("to", q.DateTo)
	b.WriteString("sort=" + q.SortBy + ":" + string(q.SortOrder))
	b.WriteString("&page=" + strconv.Itoa(q.Page))
	b.WriteString("&limit=" + strconv.Itoa(q.Limit))

	return b.String()
}
