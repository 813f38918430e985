package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"eventhub/config"
	"eventhub/internal/auditlog"
	"eventhub/internal/bus"
	"eventhub/internal/event"
	"eventhub/internal/fixture"
	"eventhub/internal/graph"
	"eventhub/internal/location"
	"eventhub/internal/participant"
	"eventhub/internal/user"
	"eventhub/middleware"
	"eventhub/routes"
	"eventhub/utils"
)

func main() {
	cfg := config.Load()

	// Init Redis + Notification Bus
	var rdb *redis.Client
	var eventBus bus.Bus
	switch cfg.BusDriver {
	case "redis":
		client, err := utils.InitRedis(cfg)
		if err != nil {
			log.Fatalf("❌ Redis init failed: %v", err)
		}
		rdb = client
		eventBus = bus.NewRedisBus(rdb, cfg.BusBuffer)
		log.Println("✅ Notification bus: redis (cross-process fan-out)")
	default:
		eventBus = bus.NewMemoryBus(cfg.BusBuffer)
		log.Println("ℹ️ Notification bus: in-process (single instance only)")
	}

	// Init Kafka mutation audit log
	auditSvc := auditlog.NewService(cfg.KafkaBrokers, cfg.KafkaTopic)
	if auditSvc.Enabled() {
		log.Printf("✅ Kafka audit log enabled (topic %s)", cfg.KafkaTopic)
	} else {
		log.Println("ℹ️ Kafka audit log disabled (no brokers configured)")
	}

	// Init repositories & services
	userRepo := user.NewRepository()
	eventRepo := event.NewRepository()
	locationRepo := location.NewRepository()
	participantRepo := participant.NewRepository()

	// Seed from fixture
	data, err := fixture.Load(cfg.FixturePath)
	if err != nil {
		log.Fatalf("❌ Fixture load failed: %v", err)
	}
	fixture.Seed(data, userRepo, eventRepo, locationRepo, participantRepo)
	log.Printf("✅ Fixture loaded: %d users, %d events, %d locations, %d participants",
		len(data.Users), len(data.Events), len(data.Locations), len(data.Participants))

	userSvc := user.NewService(userRepo, eventBus, auditSvc)
	eventSvc := event.NewService(eventRepo, eventBus, auditSvc)
	locationSvc := location.NewService(locationRepo, eventBus, auditSvc)
	participantSvc := participant.NewService(participantRepo, eventBus, auditSvc)

	resolver := graph.NewResolver(userSvc, eventSvc, locationSvc, participantSvc, eventBus)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("❌ Schema build failed: %v", err)
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ClientIP())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, schema, rdb, auditSvc)

	// Start server
	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Printf("🌐 GraphQL endpoint: http://localhost:%s/graphql (GraphiQL on GET)\n", cfg.Port)
	fmt.Printf("🔔 Subscriptions:    ws://localhost:%s/subscriptions\n", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
