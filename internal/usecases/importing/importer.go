// Package importing popula as origens persistentes (postgres, mongo) a partir do CSV
package importing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type Options struct {
	BatchSize int
	// KeepExisting pula a limpeza da coleção/tabela antes de importar
	KeepExisting bool
}

type Result struct {
	Target    string        `json:"target"`
	Deleted   int64         `json:"deleted"`
	Read      int           `json:"read"`
	Inserted  int64         `json:"inserted"`
	Skipped   int           `json:"skipped"`
	Issues    int           `json:"issues"`
	Generated int           `json:"generatedIds"`
	Duration  time.Duration `json:"duration"`
}

type Importer struct {
	writer     repository.SalesWriter
	generateID func() (string, error)
}

func NewImporter(writer repository.SalesWriter) *Importer {
	return &Importer{
		writer:     writer,
		generateID: utils.GenerateID,
	}
}

// Run garante o schema, limpa o destino e insere o CSV em lotes
func (i *Importer) Run(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	start := time.Now()
	logger := log.ForContext(ctx).WithField("target", i.writer.Source())

	if opts.BatchSize < 1 {
		opts.BatchSize = dataset.DefaultBatchSize
	}

	result := &Result{Target: i.writer.Source()}

	if err := i.writer.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("erro ao preparar o schema: %w", err)
	}

	if !opts.KeepExisting {
		deleted, err := i.writer.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("erro ao limpar registros existentes: %w", err)
		}
		result.Deleted = deleted
		logger.WithField("deleted", deleted).Info("Registros existentes removidos")
	}

	batches := 0
	summary, err := dataset.Stream(ctx, r, opts.BatchSize, func(ctx context.Context, batch []*domain.Transaction) error {
		generated, err := i.fillMissingIDs(batch)
		if err != nil {
			return err
		}
		result.Generated += generated

		inserted, err := i.writer.InsertBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("erro ao inserir lote %d: %w", batches+1, err)
		}
		batches++
		result.Inserted += inserted

		logger.WithFields(log.Fields{
			"batch":    batches,
			"inserted": result.Inserted,
		}).Info("Lote importado")
		return nil
	})

	result.Read = summary.Rows
	result.Skipped = summary.Skipped
	result.Issues = summary.Issues
	result.Duration = time.Since(start)

	if err != nil {
		return result, err
	}

	logger.WithFields(log.Fields{
		"read":     result.Read,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
		"duration": result.Duration.String(),
	}).Info("Importação concluída")

	return result, nil
}

func (i *Importer) fillMissingIDs(batch []*domain.Transaction) (int, error) {
	generated := 0
	for _, t := range batch {
		if t.TransactionID != "" {
			continue
		}
		id, err := i.generateID()
		if err != nil {
			return generated, fmt.Errorf("erro ao gerar ID de transação: %w", err)
		}
		t.TransactionID = id
		generated++
	}
	return generated, nil
}
