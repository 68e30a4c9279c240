package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/edge-journal/internal/health"
	"github.com/yourusername/edge-journal/internal/metrics"
	"github.com/yourusername/edge-journal/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluation refresh scheduler with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		healthCfg := health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        cfg.Metrics.Port,
			Logger:      logger,
			Store:       store,
			MetricsPath: cfg.Metrics.Path,
		}
		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
			healthCfg.MetricsHandler = metrics.Handler()
		}

		var sched *scheduler.Scheduler
		if cfg.Scheduler.Enabled {
			sched = scheduler.NewScheduler(analytic, logger, settings.Location)
			if _, err := sched.ScheduleEvaluationRefresh(cfg.Scheduler.EvaluationRefresh); err != nil {
				return err
			}
			healthCfg.Scheduler = sched
		}

		srv := health.NewServer(healthCfg)
		if err := srv.Start(ctx); err != nil {
			return err
		}

		if sched != nil {
			if err := sched.Start(); err != nil {
				return err
			}
		}
		srv.SetReady(true)

		logger.WithFields(logrus.Fields{
			"storage":   cfg.Storage.Driver,
			"scheduler": cfg.Scheduler.Enabled,
			"schedule":  cfg.Scheduler.EvaluationRefresh,
			"metrics":   cfg.Metrics.Enabled,
			"port":      cfg.Metrics.Port,
		}).Info("Edge journal serving")

		select {
		case sig := <-sigChan:
			logger.WithField("signal", sig).Info("Shutdown signal received")
		case <-ctx.Done():
		}

		srv.SetReady(false)
		if sched != nil {
			if err := sched.Stop(); err != nil {
				logger.WithError(err).Error("Error stopping scheduler")
			}
		}
		if err := srv.Shutdown(); err != nil {
			logger.WithError(err).Warn("Health server shutdown failed")
		}

		logger.Info("Edge journal shut down")
		return nil
	},
}
