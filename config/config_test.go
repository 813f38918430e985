package config

import "testing"

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("BUS_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("FIXTURE_PATH", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BusDriver != "memory" {
		t.Fatalf("expected memory bus without redis, got %s", cfg.BusDriver)
	}
	if cfg.KafkaTopic != "eventhub.audit" {
		t.Fatalf("expected default kafka topic, got %s", cfg.KafkaTopic)
	}
	if cfg.FixturePath != "data.json" {
		t.Fatalf("expected default fixture path, got %s", cfg.FixturePath)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestRedisAddrSelectsRedisBus(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BUS_DRIVER", "")

	cfg := Load()
	if cfg.BusDriver != "redis" {
		t.Fatalf("expected redis bus when REDIS_ADDR set, got %s", cfg.BusDriver)
	}
}

func TestBusDriverOverride(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BUS_DRIVER", "memory")

	cfg := Load()
	if cfg.BusDriver != "memory" {
		t.Fatalf("expected explicit BUS_DRIVER to win, got %s", cfg.BusDriver)
	}
}

func TestKafkaBrokersParsing(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092,")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("expected 2 brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaBrokers[1] != "broker2:9092" {
		t.Fatalf("expected trimmed broker, got %q", cfg.KafkaBrokers[1])
	}
}
