package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/importing"
)

// NewImportCommand cria o comando que carrega o CSV no destino
func NewImportCommand() *cobra.Command {
	var (
		file         string
		batchSize    int
		keepExisting bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa o CSV de vendas em lotes",
		Long: `Garante o schema, remove os registros existentes e insere o CSV em lotes.
Transações sem ID recebem um identificador gerado.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.Dataset.CSVPath
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			writer, closeFn, err := openWriter(ctx, cfg, target)
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("erro ao abrir o CSV: %w", err)
			}
			defer f.Close()

			result, err := importing.NewImporter(writer).Run(ctx, f, importing.Options{
				BatchSize:    batchSize,
				KeepExisting: keepExisting,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Importação concluída em %s\n", result.Duration.Round(time.Millisecond))
			fmt.Printf("  Destino:      %s\n", result.Target)
			fmt.Printf("  Removidos:    %d\n", result.Deleted)
			fmt.Printf("  Lidos:        %d\n", result.Read)
			fmt.Printf("  Inseridos:    %d\n", result.Inserted)
			fmt.Printf("  Ignorados:    %d\n", result.Skipped)
			fmt.Printf("  IDs gerados:  %d\n", result.Generated)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Caminho do CSV (padrão: CSV_PATH)")
	cmd.Flags().IntVar(&batchSize, "batch", dataset.DefaultBatchSize, "Quantidade de registros por lote")
	cmd.Flags().BoolVar(&keepExisting, "keep", false, "Não remove os registros existentes antes de importar")

	return cmd
}
