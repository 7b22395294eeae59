package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewMigrateCommand cria o comando que prepara tabela/coleção e índices
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria a tabela de vendas (postgres) ou os índices da coleção (mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			writer, closeFn, err := openWriter(ctx, cfg, target)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := writer.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("erro ao aplicar schema em %s: %w", writer.Source(), err)
			}

			fmt.Printf("✓ Schema aplicado em %s\n", writer.Source())
			return nil
		},
	}
}
