package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/dbpool"
	"github.com/schemascout/schemascout/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Graph       GraphExplorer
	Schema      SchemaProvider
	Queries     QueryRunner
	Mappings    MappingManager
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.Prometheus())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Graph, log, deps.Version)
	graph := NewGraphHandler(deps.Graph, log)
	explore := NewExploreHandler(deps.Graph, log)
	schema := NewSchemaHandler(deps.Schema, log)
	queries := NewQueryHandler(deps.Queries, log)
	mappings := NewMappingHandler(deps.Mappings, log)

	// Health and readiness.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Schema graph.
	api.GET("/graph/neighbors/:table", graph.Neighbors)
	api.GET("/graph/path/:from/:to", graph.Path)
	api.GET("/graph/connected/:table", graph.Connected)
	api.GET("/graph/tables/:table", graph.TableInfo)
	api.GET("/graph/relationships", graph.Relationships)
	api.POST("/graph/relationships/among", graph.RelationshipsAmong)
	api.GET("/graph/stats", graph.Stats)
	api.POST("/graph/rebuild", graph.Rebuild)

	// Ranked exploration.
	api.POST("/explore", explore.Explore)

	// Catalog inspection.
	api.GET("/schema/tables", schema.Tables)
	api.GET("/schema/tables/:table", schema.TableDetail)

	// Structured queries.
	api.POST("/query", queries.Execute)

	// Term mappings.
	api.POST("/mappings", mappings.Create)
	api.GET("/mappings", mappings.List)
	api.GET("/mappings/:term", mappings.Get)
	api.DELETE("/mappings/:term", mappings.Delete)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
