package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/mongo"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var (
	target  string
	verbose bool
)

// NewRootCommand cria o comando raiz do importador
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Importa o dataset de vendas para PostgreSQL ou MongoDB",
		Long: `Importer carrega o CSV de vendas em uma origem persistente e prepara
o schema usado pela API.

Examples:
  importer migrate --target postgres
  importer import --file data/sales_data.csv --target mongo --batch 1000`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&target, "target", config.SourcePostgres,
		"Destino da importação (postgres|mongo)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Habilita logs de debug")

	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewMigrateCommand())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	log.Configure(log.Options{Level: level, JSON: cfg.App.LogJSON})

	return cfg, nil
}

// openWriter conecta no destino escolhido; o retorno close libera a conexão
func openWriter(ctx context.Context, cfg *config.Config, target string) (repository.SalesWriter, func(), error) {
	switch target {
	case config.SourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}
		return repository.NewPostgresSalesRepository(conn), func() { _ = conn.Close() }, nil
	case config.SourceMongo:
		conn, err := mongo.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = conn.Close(closeCtx)
		}
		return repository.NewMongoSalesRepository(conn.Collection(cfg.Mongo.Collection)), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("destino inválido %q: use postgres ou mongo", target)
	}
}
