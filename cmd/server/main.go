package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/dedup"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/embed"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/ingest"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/config"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting knowledge graph API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Initialize dependencies through both fallback chains
	provider := embed.Build(ctx, cfg)
	store := graph.Connect(ctx, cfg, provider.Dimensions())
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("Failed to close graph backend", zap.Error(err))
		}
	}()

	detector := dedup.NewDetector(store, cfg.DuplicateThreshold, cfg.SimilarityLimit)
	pipeline := ingest.NewPipeline(store, provider, detector)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Ingest one article
		api.POST("/articles", func(c *gin.Context) {
			var article graph.Article
			if err := c.ShouldBindJSON(&article); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if article.MessageID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_message_id is required"})
				return
			}

			matches, err := pipeline.IngestOne(c.Request.Context(), article)
			if err != nil {
				log.Error("Failed to ingest article",
					zap.String("telegram_message_id", article.MessageID),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest article"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":     "ingested",
				"duplicates": matches,
			})
		})

		// Weekly digest
		api.GET("/digest", func(c *gin.Context) {
			days := queryInt(c, "days", cfg.DigestDays)
			digest, err := store.WeeklyDigest(c.Request.Context(), days)
			if err != nil {
				log.Error("Failed to build digest", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build digest"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"days": days, "articles": digest})
		})

		// Entity-filtered article feed
		api.GET("/entities/:name/articles", func(c *gin.Context) {
			name := c.Param("name")
			days := queryInt(c, "days", cfg.EntityDays)
			articles, err := store.ArticlesByEntity(c.Request.Context(), name, days)
			if err != nil {
				log.Error("Failed to list articles by entity",
					zap.String("entity", name),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"entity": name, "days": days, "articles": articles})
		})

		// Topic-filtered project feed
		api.GET("/projects", func(c *gin.Context) {
			topic := c.Query("topic")
			if topic == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "topic query parameter is required"})
				return
			}
			projects, err := store.ProjectsByTopic(c.Request.Context(), topic)
			if err != nil {
				log.Error("Failed to list projects by topic",
					zap.String("topic", topic),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"topic": topic, "projects": projects})
		})

		// Topic-substring news feed
		api.GET("/news/topics", func(c *gin.Context) {
			marker := c.Query("contains")
			if marker == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "contains query parameter is required"})
				return
			}
			news, err := store.NewsByTopic(c.Request.Context(), marker)
			if err != nil {
				log.Error("Failed to list news by topic",
					zap.String("marker", marker),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list news"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"contains": marker, "articles": news})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Serve until interrupted, then drain
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		return
	}
	log.Info("Server exited")
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, key string, defaultValue int) int {
	if raw := c.Query(key); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			return value
		}
	}
	return defaultValue
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
