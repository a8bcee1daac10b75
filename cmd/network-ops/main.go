package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Local Packages
	config "network-ops/config"
	kafka "network-ops/kafka"
	mongodb "network-ops/repositories/mongodb"
	redis "network-ops/repositories/redis"
	network "network-ops/services/network"
	operations "network-ops/services/operations"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

var configPath = kingpin.Flag("config", "Path to the application config file").Short('c').String()

// NewLogger builds the logfmt production logger
func NewLogger(c config.Config) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(c.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = c.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	return logger
}

func main() {
	command := kingpin.Parse()

	appKonf, k, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if !appKonf.IsProdMode {
		k.Print()
	}

	logger := NewLogger(appKonf)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI, appKonf.Mongo.Timeout)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password, appKonf.Redis.DB)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}
	defer func() {
		_ = redisClient.Close()
	}()

	kafkaMetrics := kprom.NewMetrics("netops")
	publisher, err := kafka.NewEventPublisher(appKonf.Kafka.Brokers, appKonf.Kafka.EventsTopic, kafkaMetrics)
	if err != nil {
		logger.Fatal("cannot create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	opsRepo := mongodb.NewOperationsRepository(mongoClient, appKonf.Mongo.Database)
	usersRepo := mongodb.NewUsersRepository(mongoClient, appKonf.Mongo.Database)
	app := &App{
		Config:  appKonf,
		Logger:  logger,
		Metrics: kafkaMetrics,
		Operations: operations.NewService(
			logger,
			opsRepo,
			redis.NewLocker(redisClient, appKonf.Redis.LockTTL),
			publisher,
			appKonf.Operations.MaxPageSize,
		),
		Network: network.NewService(
			logger,
			mongodb.NewDownlineRepository(mongoClient, appKonf.Mongo.Database),
			usersRepo,
		),
		Users:     usersRepo,
		OpsRepo:   opsRepo,
		DLQ:       redis.NewDeadLetterQueue(redisClient, logger),
		Publisher: publisher,
		Out:       os.Stdout,
	}

	if err := app.Run(ctx, command); err != nil {
		logger.Fatal("command failed", zap.String("command", command), zap.Error(err))
	}
}
