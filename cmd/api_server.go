package cmd

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rm-hull/lanczos-resizer/internal"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

const maxUploadBytes = 32 << 20

type ApiServerConfig struct {
	Port         int
	Debug        bool
	Workers      int
	PoolSize     int
	InboxDir     string
	Outbox       string
	Every        time.Duration
	MaxDimension int

	// Target for images picked up from InboxDir.
	InboxWidth  int
	InboxHeight int
	InboxRadius int
}

type resizeParams struct {
	Width     int     `form:"width" binding:"required,min=1"`
	Height    int     `form:"height" binding:"required,min=1"`
	Radius    int     `form:"radius,default=3" binding:"min=1"`
	Engine    string  `form:"engine"`
	Blur      float64 `form:"blur" binding:"min=0"`
	Greyscale bool    `form:"greyscale"`
}

func ApiServer(cfg ApiServerConfig) {

	var sched gocron.Scheduler
	if cfg.InboxDir != "" {
		var err error
		opts := internal.ResizeOptions{
			Width:        cfg.InboxWidth,
			Height:       cfg.InboxHeight,
			KernelRadius: cfg.InboxRadius,
			Workers:      cfg.Workers,
		}
		sched, err = internal.NewScheduler(cfg.InboxDir, cfg.Outbox, cfg.PoolSize, opts, cfg.Every)
		if err != nil {
			log.Fatal(err)
		}
	}

	r, err := NewRouter(cfg, prometheus.NewRegistry())
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting HTTP API Server on port %d...", cfg.Port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", cfg.Port, err)
	}

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Fatalf("failed to shutdown scheduler: %v", err)
		}
	}
}

// NewRouter wires the resize endpoint, health check, metrics and, when an
// outbox is configured, static serving of batch output.
func NewRouter(cfg ApiServerConfig, registry *prometheus.Registry) (*gin.Engine, error) {
	r := gin.New()

	p := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
		ginprom.Registry(registry),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		p.Instrument(),
	)

	if cfg.Debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		return nil, fmt.Errorf("failed to initialize healthcheck: %w", err)
	}

	maxDimension := cfg.MaxDimension
	if maxDimension < 1 {
		maxDimension = internal.DefaultMaxDimension
	}
	r.POST("/v1/resize", resizeHandler(cfg.Workers, maxDimension))

	if cfg.Outbox != "" {
		r.Static("/v1/resized", cfg.Outbox)
	}

	return r, nil
}

func resizeHandler(workers, maxDimension int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params resizeParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if params.Width > maxDimension || params.Height > maxDimension {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("target %dx%d exceeds the maximum dimension of %d", params.Width, params.Height, maxDimension),
			})
			return
		}

		opts := internal.ResizeOptions{
			Width:        params.Width,
			Height:       params.Height,
			KernelRadius: params.Radius,
			Workers:      workers,
			Engine:       params.Engine,
			Blur:         params.Blur,
			Greyscale:    params.Greyscale,
		}
		if _, err := opts.Stages(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body := http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
		var buf bytes.Buffer
		if err := internal.ResizeStream(body, &buf, opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}
