package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-service/cache"
	"checkout-service/config"
	"checkout-service/database"
	"checkout-service/events"
	"checkout-service/kafka"
	"checkout-service/logger"
	awspkg "checkout-service/pkg/aws"
	"checkout-service/routes"
)

const cartCacheTTL = 10 * time.Minute

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		database.Close(ctx)
	}()

	txRunner := database.NewMongoTxRunner(database.MongoClient)

	var cartCache *cache.CartCache
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		// cache is a read accelerator, the service runs without it
		logger.Log.Warn("Redis unavailable, cart cache disabled", zap.Error(err))
	} else {
		cartCache = cache.NewCartCache(redisClient, cartCacheTTL)
	}

	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	defer producer.Close()

	awsCfg, err := awspkg.LoadAWSConfig(context.Background())
	if err != nil {
		logger.Log.Fatal("Failed to load AWS config", zap.Error(err))
	}
	snsClient := awspkg.NewSNSClient(awsCfg)

	publisher := events.NewPublisher(producer, snsClient, cfg.SNSTopicArn, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.RequestLogger(), gin.Recovery())

	routes.Register(router, routes.Deps{
		DB:        database.DB,
		TxRunner:  txRunner,
		CartCache: cartCache,
		Events:    publisher,
		Logger:    logger.Log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Checkout service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}
