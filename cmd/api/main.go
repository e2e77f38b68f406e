package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/infra/cache"
	"backoffice/internal/infra/db"
	"backoffice/internal/infra/events"
	"backoffice/internal/infra/memory"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/logging"
	repo "backoffice/internal/repository"
	"backoffice/internal/server"
	"backoffice/internal/usecase"
)

type publisher interface {
	usecase.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	l := logging.New(cfg.LogLevel)
	slog.SetDefault(l)

	if err := run(cfg, l); err != nil {
		l.Error("server_stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, l *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var checks []handler.HealthCheck

	//DB接続（memory はデモ用）
	var tx repo.TransactionManager
	if cfg.DBDriver == config.DriverMemory {
		tx = memory.NewStore()
	} else {
		gormDB, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := db.Migrate(gormDB); err != nil {
			return err
		}
		tx = infraRepo.NewTxManagerGorm(gormDB)
		checks = append(checks, handler.HealthCheck{Name: "db", Check: sqlDB.PingContext})
	}

	//イベント送信先
	var pub publisher = events.NewLogPublisher(l)
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			l.Warn("event_publisher_close_error", "error", err)
		}
	}()

	//レポートキャッシュ
	var reportCache usecase.ReportCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		rc := cache.NewRedisCache(rdb, cfg.ReportCacheTTL)
		reportCache = rc
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: rc.Ping})
	}

	//usecaseに渡す部品
	clock := usecase.SystemClock{}
	ids := usecase.UUIDGenerator{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	notifier := usecase.NewLedgerNotifier(pub, reportCache, clock, ids)

	//Usecase生成
	statusUC := usecase.NewStatusUsecase(tx, clock, ids)
	productUC := usecase.NewProductUsecase(tx, clock, ids, notifier)
	orderUC := usecase.NewOrderUsecase(tx, clock, ids, notifier)
	ledgerUC := usecase.NewLedgerUsecase(tx, clock, notifier)
	reportUC := usecase.NewReportUsecase(tx, clock, reportCache, usecase.ReportOptions{
		Location:          cfg.ReportLocation,
		LowStockThreshold: cfg.LowStockThreshold,
	})
	userUC := usecase.NewUserUsecase(tx, clock, ids, hasher, notifier)
	shopUC := usecase.NewShopUsecase(tx, clock, cfg.Currency)
	auditUC := usecase.NewAuditUsecase(tx)

	if cfg.SeedDefaults {
		seeded, err := statusUC.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		if seeded {
			l.Info("default_statuses_seeded")
		}
	}
	if cfg.BootstrapAdminID != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.BootstrapAdminID, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail)
		if err != nil {
			return err
		}
		if created {
			l.Info("bootstrap_admin_created", "user_id", cfg.BootstrapAdminID)
		}
	}

	//Handler生成
	e := server.New(cfg, l, userUC, server.Handlers{
		Health:   handler.NewHealthHandler(checks...),
		Products: handler.NewProductHandler(productUC),
		Statuses: handler.NewStatusHandler(statusUC),
		Orders:   handler.NewOrderHandler(orderUC, shopUC),
		Ledger:   handler.NewLedgerHandler(ledgerUC),
		Reports:  handler.NewReportHandler(reportUC),
		Users:    handler.NewUserHandler(userUC),
		Shop:     handler.NewShopHandler(shopUC),
		Audit:    handler.NewAuditHandler(auditUC),
	})

	//Server起動
	return server.Start(ctx, e, cfg.Addr(), l)
}
