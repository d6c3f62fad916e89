package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"auction_market/internal/config"
	"auction_market/internal/domain/service/auction"
	"auction_market/internal/domain/service/billing"
	"auction_market/internal/domain/service/ledger"
	"auction_market/internal/domain/service/payment"
	"auction_market/internal/infrastructure/notifier"
	"auction_market/internal/infrastructure/paysystem"
	"auction_market/internal/infrastructure/persistence"
	"auction_market/internal/server"
	"auction_market/internal/worker"
	"auction_market/pkg/application/connectors"
	"auction_market/pkg/application/modules"
	"auction_market/pkg/contextx"
	"auction_market/pkg/logx"
	"auction_market/pkg/middlewarex"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Connectors
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	asynqClient := asynq.NewClientFromRedisClient(rds.Client(ctx))
	defer rds.Close(ctx)

	// Repositories
	productRepo := persistence.NewProductRepository(db)
	bidRepo := persistence.NewBidRepository(db)
	dealRepo := persistence.NewDealRepository(db)
	billRepo := persistence.NewBillRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	paymentRepo := persistence.NewPaymentRepository(db)

	// Services
	scheduler := worker.NewScheduler(asynqClient)
	ledgerService := ledger.NewService(transactionRepo)
	billingService := billing.NewService(billRepo)
	auctionService := auction.NewService(
		productRepo, bidRepo, dealRepo, clientRepo,
		billingService, scheduler,
		auction.Config{
			DefaultCommissionPart: cfg.Billing.DefaultCommissionPart,
			CommissionParts:       cfg.Billing.CommissionParts,
		},
	)
	gateways := paysystem.NewRegistry(paysystem.NewDummy())
	paymentService := payment.NewService(paymentRepo, clientRepo, billingService, gateways)

	// Background worker
	mailer := notifier.NewMailer(cfg.Notify.MailFrom)
	handlers := worker.NewHandlers(auctionService, billingService, mailer, cfg.Notify.OpsEmail)

	var errorHandler asynq.ErrorHandler

	if cfg.Bot.Token != "" {
		opsBot, err := notifier.NewOpsBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewOpsBot: %w", err)
		}

		errorHandler = worker.NewAlertingErrorHandler(opsBot)
	}

	modules.AsynqServer{
		RedisUsername:  cfg.Redis.Username,
		RedisPassword:  cfg.Redis.Password,
		RedisAddress:   cfg.Redis.Address,
		RedisDB:        cfg.Redis.DatabaseNumber,
		RetryDelayFunc: worker.RetryDelay,
		ErrorHandler:   errorHandler,
	}.Run(ctx, g,
		modules.AsynqQueues{
			worker.QueueAuction: 6,
			worker.QueueBilling: 3,
			worker.QueueNotify:  1,
		},
		modules.AsynqHandler{Pattern: worker.TypeCloseProduct, Handle: handlers.HandleCloseProduct},
		modules.AsynqHandler{Pattern: worker.TypeFinalizeDeal, Handle: handlers.HandleFinalizeDeal},
		modules.AsynqHandler{Pattern: worker.TypeActivateBill, Handle: handlers.HandleActivateBill},
		modules.AsynqHandler{Pattern: worker.TypeSendEmail, Handle: handlers.HandleSendEmail},
	)

	// HTTP API
	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(logx.NewNopSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(logx.NewNopSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
	)

	apiServer := server.NewServer(
		server.NewAuctionServer(auctionService),
		server.NewBillingServer(ledgerService, billingService),
		server.NewPaymentServer(paymentService),
	)
	apiServer.RegisterRoutes(router)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
	})

	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsListenAddress}.Run(ctx, g)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	log.Info("application started",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
