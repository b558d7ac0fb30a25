package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	MongoURI     string
	MongoDB      string
	RedisURL     string
	KafkaBrokers string
	KafkaTopic   string
	SNSTopicArn  string
}

func Load() Config {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8085"),
		Env:          getEnv("APP_ENV", "development"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "foodylicious"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order.events"),
		SNSTopicArn:  getEnv("SNS_TOPIC_ARN", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
