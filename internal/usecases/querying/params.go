package querying

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Parâmetros aceitos em GET /api/sales
const (
	ParamSearchTerm     = "searchTerm"
	ParamRegions        = "regions"
	ParamGenders        = "genders"
	ParamAgeRange       = "ageRange"
	ParamCategories     = "categories"
	ParamTags           = "tags"
	ParamPaymentMethods = "paymentMethods"
	ParamDateFrom       = "dateFrom"
	ParamDateTo         = "dateTo"
	ParamSortBy         = "sortBy"
	ParamSortOrder      = "sortOrder"
	ParamPage           = "page"
	ParamLimit          = "limit"
)

// Defaults controla os valores padrão da normalização
type Defaults struct {
	Limit    int
	MaxLimit int
	SortBy   string
}

func DefaultDefaults() Defaults {
	return Defaults{
		Limit:    domain.DefaultLimit,
		MaxLimit: 100,
		SortBy:   domain.DefaultSortBy,
	}
}

// ParseQuery converte os parâmetros brutos da requisição em uma SalesQuery tipada.
// Entradas inválidas nunca viram erro: caem no valor padrão ou são descartadas.
func ParseQuery(values url.Values, d Defaults) domain.SalesQuery {
	if d.Limit < 1 {
		d.Limit = domain.DefaultLimit
	}
	if d.SortBy == "" {
		d.SortBy = domain.DefaultSortBy
	}

	q := domain.SalesQuery{
		SearchTerm:     strings.TrimSpace(values.Get(ParamSearchTerm)),
		Regions:        SplitList(values[ParamRegions]),
		Genders:        SplitList(values[ParamGenders]),
		Categories:     SplitList(values[ParamCategories]),
		Tags:           SplitList(values[ParamTags]),
		PaymentMethods: SplitList(values[ParamPaymentMethods]),
		AgeRanges:      SplitList(values[ParamAgeRange]),
		SortBy:         strings.TrimSpace(values.Get(ParamSortBy)),
		SortOrder:      ParseSortOrder(values.Get(ParamSortOrder)),
		Page:           ParsePositiveInt(values.Get(ParamPage), domain.DefaultPage),
		Limit:          ParsePositiveInt(values.Get(ParamLimit), d.Limit),
	}

	if q.SortBy == "" {
		q.SortBy = d.SortBy
	}
	if d.MaxLimit > 0 && q.Limit > d.MaxLimit {
		q.Limit = d.MaxLimit
	}

	if from, _, err := utils.ParseDate(values.Get(ParamDateFrom)); err == nil {
		q.DateFrom = from
	}
	if to, dateOnly, err := utils.ParseDate(values.Get(ParamDateTo)); err == nil && to != nil {
		if dateOnly {
			end := utils.EndOfDay(*to)
			to = &end
		}
		q.DateTo = to
	}

	return q
}

// SplitList aceita valores repetidos e/ou separados por vírgula, remove espaços,
// descarta vazios e duplicados mantendo a ordem de chegada.
func SplitList(raw []string) []string {
	var (
		result []string
		seen   map[string]struct{}
	)

	for _, item := range raw {
		for _, token := range strings.Split(item, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if seen == nil {
				seen = make(map[string]struct{})
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			result = append(result, token)
		}
	}

	return result
}

// ParseSortOrder devolve desc apenas para "desc"; qualquer outro valor é asc
func ParseSortOrder(raw string) domain.SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.SortDesc)) {
		return domain.SortDesc
	}
	return domain.SortAsc
}

// ParsePositiveInt aplica piso 1; valores não numéricos usam o padrão
func ParsePositiveInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return max(n, 1)
}
