package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	_ "github.com/lib/pq"

	"github.com/camerpulse/camerpulse-sub015/internal/auth"
	"github.com/camerpulse/camerpulse-sub015/internal/config"
	"github.com/camerpulse/camerpulse-sub015/internal/history"
	"github.com/camerpulse/camerpulse-sub015/internal/ingest"
	"github.com/camerpulse/camerpulse-sub015/internal/personas"
	"github.com/camerpulse/camerpulse-sub015/internal/pipeline"
	"github.com/camerpulse/camerpulse-sub015/internal/scheduler"
	"github.com/camerpulse/camerpulse-sub015/internal/snapshot"
	"github.com/camerpulse/camerpulse-sub015/internal/stream"
	"github.com/camerpulse/camerpulse-sub015/pkg/messaging"
)

func main() {
	cfg := config.Load()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := ingest.NewStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	natsClient, err := messaging.NewClient(messaging.Config{
		URL:            cfg.NatsURL,
		Name:           "persona-engine",
		ReconnectWait:  time.Second,
		MaxReconnects:  5,
		ConnectTimeout: 5 * time.Second,
	})
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsClient.Close()

	cache, err := snapshot.NewCache(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()

	var recorder *history.Recorder
	if cfg.InfluxURL != "" {
		recorder = history.NewRecorder(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
		defer recorder.Close()
	}

	feed := stream.NewFeed()
	authService := auth.NewService(cfg.JWTSecret)

	pipe := pipeline.New(personas.Config{
		MinPostsForClassification: cfg.MinPostsForClassification,
		MinPostsForTrend:          cfg.MinPostsForTrend,
		TrendStabilityBand:        cfg.TrendStabilityBand,
		InfluenceCap:              cfg.InfluenceCap,
		TopInfluencersPerRegion:   cfg.TopInfluencersPerRegion,
	}, pipeline.WithWorkers(cfg.ClassifyWorkers))

	sched := scheduler.New(store, pipe, scheduler.Config{
		Interval:    cfg.RecomputeInterval,
		EventWindow: cfg.EventWindow,
		OnResult: func(ctx context.Context, result *pipeline.Result, computedAt time.Time) {
			snap := &snapshot.Snapshot{Result: result, ComputedAt: computedAt}
			if err := cache.Store(ctx, snap); err != nil {
				log.Printf("Failed to cache snapshot: %v", err)
			}

			for _, alert := range result.Alerts {
				msg := messaging.AlertMsg{
					AlertID:     alert.ID,
					Persona:     string(alert.Persona),
					Region:      alert.Region,
					Type:        string(alert.Type),
					Severity:    string(alert.Severity),
					Description: alert.Description,
					CreatedAt:   alert.CreatedAt,
				}
				if err := natsClient.Publish(ctx, messaging.SubjectAlertsGenerated, msg); err != nil {
					log.Printf("Failed to publish alert %s: %v", alert.ID, err)
				}
				feed.Publish(stream.Update{Type: stream.UpdateAlert, Data: alert, Timestamp: computedAt})
			}

			natsClient.Publish(ctx, messaging.SubjectPassCompleted, messaging.PassCompletedMsg{
				Authors:    len(result.Profiles),
				Regions:    len(result.Clusters),
				Alerts:     len(result.Alerts),
				ComputedAt: computedAt,
			})
			feed.Publish(stream.Update{Type: stream.UpdateSnapshot, Data: snap, Timestamp: computedAt})

			if recorder != nil {
				if err := recorder.RecordPass(ctx, result, computedAt); err != nil {
					log.Printf("Failed to record pass history: %v", err)
				}
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	intake := ingest.NewIntake(store, natsClient)
	if err := intake.Start(ctx); err != nil {
		log.Fatalf("Failed to start intake: %v", err)
	}

	go sched.Run(ctx)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "nats": natsClient.IsConnected()})
	})

	r.POST("/api/v1/events", func(c *gin.Context) {
		var wire messaging.SentimentEventMsg
		if err := c.ShouldBindJSON(&wire); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ev, err := ingest.FromWire(wire)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := store.Insert(c.Request.Context(), &ev); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, ev)
	})

	api := r.Group("/api/v1")
	{
		api.GET("/personas", func(c *gin.Context) {
			snap, _ := latestSnapshot(c, cache)
			if snap == nil {
				return
			}
			c.JSON(http.StatusOK, gin.H{"profiles": snap.Result.Profiles, "computed_at": snap.ComputedAt})
		})

		api.GET("/clusters", func(c *gin.Context) {
			snap, _ := latestSnapshot(c, cache)
			if snap == nil {
				return
			}
			c.JSON(http.StatusOK, gin.H{"clusters": snap.Result.Clusters, "computed_at": snap.ComputedAt})
		})

		api.GET("/clusters/:region", func(c *gin.Context) {
			snap, _ := latestSnapshot(c, cache)
			if snap == nil {
				return
			}
			region := c.Param("region")
			for _, cluster := range snap.Result.Clusters {
				if cluster.Region == region {
					c.JSON(http.StatusOK, cluster)
					return
				}
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		})

		api.GET("/alerts", func(c *gin.Context) {
			snap, _ := latestSnapshot(c, cache)
			if snap == nil {
				return
			}
			c.JSON(http.StatusOK, gin.H{"alerts": snap.Result.Alerts, "computed_at": snap.ComputedAt})
		})

		api.GET("/distribution", func(c *gin.Context) {
			snap, _ := latestSnapshot(c, cache)
			if snap == nil {
				return
			}
			c.JSON(http.StatusOK, gin.H{"national_distribution": snap.Result.NationalDistribution, "computed_at": snap.ComputedAt})
		})

		api.POST("/recompute", authService.Middleware(), func(c *gin.Context) {
			result, err := sched.RunOnce(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"authors": len(result.Profiles),
				"regions": len(result.Clusters),
				"alerts":  len(result.Alerts),
			})
		})
	}

	r.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		feed.ServeWS(ctx, conn)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	log.Printf("Persona engine listening on :%s (recompute every %s, window %d)",
		cfg.Port, cfg.RecomputeInterval, cfg.EventWindow)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}

// latestSnapshot writes the appropriate error response and returns nil
// when no snapshot is available yet.
func latestSnapshot(c *gin.Context, cache *snapshot.Cache) (*snapshot.Snapshot, error) {
	snap, err := cache.Latest(c.Request.Context())
	if err == snapshot.ErrNoSnapshot {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no computation pass has completed yet"})
		return nil, err
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, err
	}
	return snap, nil
}
