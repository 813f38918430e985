package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// ✅ Redis broker (subscription fan-out + shared rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Bus tuning
	BusDriver string // redis | memory
	BusBuffer int    // per-subscriber buffer capacity

	// ✅ Kafka mutation audit log (disabled when no brokers)
	KafkaBrokers []string
	KafkaTopic   string

	FixturePath string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	busBuffer, _ := strconv.Atoi(os.Getenv("BUS_BUFFER"))

	cfg := &Config{
		Port: os.Getenv("PORT"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		BusDriver: os.Getenv("BUS_DRIVER"),
		BusBuffer: busBuffer,

		KafkaTopic: os.Getenv("KAFKA_TOPIC"),

		FixturePath: os.Getenv("FIXTURE_PATH"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "eventhub.audit"
	}
	if cfg.FixturePath == "" {
		cfg.FixturePath = "data.json"
	}
	// Redis configured means cross-process fan-out unless explicitly
	// overridden; without Redis the bus stays in-process.
	if cfg.BusDriver == "" {
		if cfg.RedisAddr != "" {
			cfg.BusDriver = "redis"
		} else {
			cfg.BusDriver = "memory"
		}
	}

	return cfg
}
