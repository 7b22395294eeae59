package main

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/selling"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(log.Options{
		Level:      cfg.App.LogLevel,
		File:       cfg.App.LogFile,
		MaxSizeMB:  cfg.App.LogMaxSizeMB,
		MaxBackups: cfg.App.LogMaxBackups,
		JSON:       cfg.App.LogJSON,
	})
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, err := openSalesSource(ctx, cfg, defaultOpeners())
	if err != nil {
		log.L.WithError(err).Fatal("Nenhuma origem de dados disponível")
	}
	defer source.close()

	salesService, err := selling.NewSalesService(source.repo, selling.Options{CacheSize: cfg.Query.CacheSize})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar o serviço de vendas")
	}

	var extraRoutes []router.ConfigRouter

	// a recarga agendada só faz sentido quando os dados vivem em memória
	if source.memory != nil {
		reloadService := scheduler.NewDatasetReloadService(source.memory, cfg.Dataset)
		if err := reloadService.Start(ctx); err != nil {
			log.L.WithError(err).Error("Erro ao iniciar o agendador de recarga do CSV")
		} else {
			log.L.Info("Agendador de recarga do CSV iniciado com sucesso")
		}
		extraRoutes = append(extraRoutes, router.WithRoutes(handler.DatasetReload(reloadService)...))
	}

	server, err := api.New(cfg, salesService, extraRoutes...)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}
