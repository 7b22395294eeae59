package utils

import (
	"strings"
	"time"
)

// ParseDate aceita "2006-01-02" ou RFC3339. String vazia devolve nil sem erro.
// O segundo retorno indica se o valor era uma data sem horário.
func ParseDate(dateStr string) (*time.Time, bool, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, false, nil
	}

	if date, err := time.Parse(time.DateOnly, dateStr); err == nil {
		return &date, true, nil
	}

	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return nil, false, err
	}

	utc := date.UTC()
	return &utc, false, nil
}

// EndOfDay devolve o último instante do dia da data informada
func EndOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), date.Location())
}
