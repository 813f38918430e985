package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	redis "github.com/redis/go-redis/v9"

	"eventhub/internal/auditlog"
	"eventhub/internal/graph"
	"eventhub/middleware"
)

// Setup registers every route on the engine: the single GraphQL
// endpoint (POST documents, GET GraphiQL), the websocket upgrade path
// for subscriptions, and a health probe.
func Setup(router *gin.Engine, schema graphql.Schema, rdb *redis.Client, auditSvc auditlog.Service) {
	gql := router.Group("/graphql")
	gql.Use(middleware.RateLimiter(rdb))
	{
		h := graph.NewHTTPHandler(&schema)
		gql.POST("", gin.WrapH(h))
		gql.GET("", gin.WrapH(h))
	}

	ws := graph.NewWSHandler(schema)
	router.GET("/subscriptions", gin.WrapH(ws))

	router.GET("/healthz", func(c *gin.Context) {
		status := gin.H{
			"status": "ok",
			"audit":  auditSvc.Enabled(),
			"broker": "memory",
		}
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				status["status"] = "degraded"
				status["broker"] = "redis: " + err.Error()
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
			status["broker"] = "redis"
		}
		c.JSON(http.StatusOK, status)
	})
}
