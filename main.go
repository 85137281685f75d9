package main

import (
	"context"
	"log"

	"timelogger/common"
	"timelogger/config"
	"timelogger/domain"
	"timelogger/infra/tracing"
	"timelogger/persistence"
	"timelogger/servehttp"
	"timelogger/timer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed %v\n", err)
	}
	if err := common.SetupLogging(common.LogOptions{Level: cfg.Log.Level, File: cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB, MaxBackups: cfg.Log.MaxBackups, MaxAgeDays: cfg.Log.MaxAgeDays}); err != nil {
		log.Fatalf("setup logging failed %v\n", err)
	}
	logrus.Info("service start")
	gin.SetMode(cfg.HTTP.GinMode)

	closer, err := tracing.SetupTracer(common.ServiceName, cfg.Tracing)
	if err != nil {
		logrus.Fatalf("setup tracer failed %v", err)
	}
	defer closer.Close()

	// create database (no conflict)
	if cfg.Database.DriverType == persistence.DriverMysql {
		if err := persistence.PrepareMysqlDatabase(cfg.Database.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: &cfg.Database, LogMode: gin.Mode() != gin.ReleaseMode}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database conneciton failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	db := ds.GormDB(context.Background())
	if err := domain.AutoMigrate(db); err != nil {
		logrus.Fatalf("database migration failed %v", err)
	}
	if cfg.Seed {
		if err := domain.Seed(db); err != nil {
			logrus.Fatalf("database seeding failed %v", err)
		}
	}

	if cfg.Timer.Store == config.TimerStoreBolt {
		store, err := timer.OpenBoltStore(cfg.Timer.BoltPath)
		if err != nil {
			logrus.Fatalf("open timer store failed %v", err)
		}
		timer.ActiveStore = store
	}
	defer timer.ActiveStore.Close()

	engine := servehttp.NewEngine(servehttp.EngineOptions{
		RateLimitRPS:     cfg.HTTP.RateLimitRPS,
		RateLimitBurst:   cfg.HTTP.RateLimitBurst,
		CorsAllowOrigins: cfg.HTTP.CorsAllowOrigins,
	})
	servehttp.StartHTTPServer(engine, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout)
}
