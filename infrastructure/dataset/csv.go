package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const (
	DefaultBatchSize = 1000
	progressEvery    = 10000
)

// Summary resume uma leitura do CSV
type Summary struct {
	Rows     int
	Skipped  int
	Issues   int
	Duration time.Duration
}

// BatchFunc recebe lotes de transações normalizadas. O slice não é reutilizado.
type BatchFunc func(ctx context.Context, batch []*domain.Transaction) error

// LoadFile lê o CSV inteiro para memória
func LoadFile(ctx context.Context, path string) ([]*domain.Transaction, Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("erro ao abrir o CSV %s: %w", path, err)
	}
	defer f.Close()

	records := make([]*domain.Transaction, 0, 1024)
	summary, err := Stream(ctx, f, DefaultBatchSize, func(_ context.Context, batch []*domain.Transaction) error {
		records = append(records, batch...)
		return nil
	})
	if err != nil {
		return nil, summary, err
	}

	return records, summary, nil
}

// Stream lê o CSV de r e entrega lotes de até batchSize transações para fn
func Stream(ctx context.Context, r io.Reader, batchSize int, fn BatchFunc) (Summary, error) {
	start := time.Now()
	summary := Summary{}

	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("erro ao ler o cabeçalho do CSV: %w", err)
	}
	header = normalizeHeader(header)

	batch := make([]*domain.Transaction, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := fn(ctx, batch); err != nil {
			return err
		}
		batch = make([]*domain.Transaction, 0, batchSize)
		return nil
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			summary.Skipped++
			log.L.WithFields(log.Fields{"line": line, "error": parseErr.Err}).Warn("Linha inválida ignorada no CSV")
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("erro ao ler o CSV na linha %d: %w", line, err)
		}

		raw := make(RawRow, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[col] = row[i]
			}
		}

		t, issues := Normalize(raw)
		if len(issues) > 0 {
			summary.Issues += len(issues)
			log.L.WithFields(log.Fields{"line": line, "issues": issues}).Debug("Valores inválidos substituídos pelo padrão")
		}

		batch = append(batch, t)
		summary.Rows++

		if summary.Rows%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			log.L.Infof("Processados %d registros...", summary.Rows)
		}

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return summary, err
			}
		}
	}

	if err := flush(); err != nil {
		return summary, err
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		out[i] = strings.TrimSpace(col)
	}
	return out
}
