package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/command"
	"github.com/hassaanfarooq01/inBillo/internal/config"
	"github.com/hassaanfarooq01/inBillo/internal/events"
	"github.com/hassaanfarooq01/inBillo/internal/handler"
	"github.com/hassaanfarooq01/inBillo/internal/query"
	redisclient "github.com/hassaanfarooq01/inBillo/internal/redis"
	"github.com/hassaanfarooq01/inBillo/internal/repository"
	"github.com/hassaanfarooq01/inBillo/internal/storage/postgres"
)

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	gin.SetMode(cfg.GinMode)

	// Write store (source of truth)
	store, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.RunMigrations(ctx); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	// Redis (read model store + event streaming)
	redis, err := redisclient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatalw("failed to connect to redis", "error", err)
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	accountReadRepo := repository.NewAccountReadRepository(store, redis.Client, logger)
	transactionReadRepo := repository.NewTransactionReadRepository(store, redis.Client, logger)

	userCommands := command.NewUserCommandService(store, logger)
	accountCommands := command.NewAccountCommandService(store, accountReadRepo, publisher, logger)
	transferCommands := command.NewTransferCommandService(store, store, transactionReadRepo, accountReadRepo, publisher, logger)

	userQueries := query.NewUserQueryService(store)
	accountQueries := query.NewAccountQueryService(accountReadRepo)
	transactionQueries := query.NewTransactionQueryService(transactionReadRepo)

	userHandler := handler.NewUserHandler(userCommands, userQueries)
	accountHandler := handler.NewAccountHandler(accountCommands, accountQueries)
	transactionHandler := handler.NewTransactionHandler(transferCommands, transactionQueries)

	// Setup router
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)

		accounts := v1.Group("/accounts")
		accounts.POST("", accountHandler.CreateAccount)
		accounts.GET("", accountHandler.ListAccounts)
		accounts.GET("/:id", accountHandler.GetAccount)
		accounts.PATCH("/:id", accountHandler.UpdateAccount)
		accounts.DELETE("/:id", accountHandler.DeleteAccount)

		transactions := v1.Group("/transactions")
		transactions.POST("", transactionHandler.CreateTransaction)
		transactions.GET("", transactionHandler.ListTransactions)
		transactions.GET("/:id", transactionHandler.GetTransaction)
		transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	}

	// Read-model projector: converges cached account views after transfers.
	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "ledger-projector",
			Consumer: "ledger-consumer-1",
			Stream:   events.LedgerEventsStream,
			Handler:  accountCommands.HandleLedgerEvent,
			Logger:   logger,
		})
		if err := subscriber.Start(ctx); err != nil {
			logger.Infow("subscriber stopped", "error", err)
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	logger.Infow("ledger service starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("failed to start server", "error", err)
	}
}
