package servehttp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timelogger/bizerror"
	"timelogger/domain/home"
	"timelogger/domain/names"
	"timelogger/domain/project"
	"timelogger/domain/task"
	"timelogger/domain/timerecord"
	"timelogger/infra/tracing"
	"timelogger/timer"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type EngineOptions struct {
	RateLimitRPS     float64
	RateLimitBurst   int
	CorsAllowOrigins []string
}

// NewEngine builds the gin engine with the middleware chain and every REST API registered.
func NewEngine(opts EngineOptions) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogging())
	engine.Use(tracing.TracingIngress())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(corsConfig(opts.CorsAllowOrigins)))
	if opts.RateLimitRPS > 0 {
		engine.Use(RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}
	engine.Use(bizerror.ErrorHandling())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "timelogger")
	})

	home.RegisterHomeRestAPI(engine)
	project.RegisterProjectsRestAPI(engine)
	task.RegisterTasksRestAPI(engine)
	timerecord.RegisterTimeRecordsRestAPI(engine)
	names.RegisterNamesRestAPI(engine)
	timer.RegisterTimerRestAPI(engine)
	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, HeaderRequestID)
	cfg.ExposeHeaders = []string{"Location", HeaderRequestID}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// StartHTTPServer serves until SIGINT or SIGTERM, then drains in-flight requests for at most
// shutdownTimeout.
func StartHTTPServer(engine *gin.Engine, addr string, shutdownTimeout time.Duration) {
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		logrus.Infof("http server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// will call os.Exit(1)
			logrus.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 send syscall.SIGINT
	// kill -9 send syscall.SIGKILL, can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Infof("[QUIT] shutdown signal has been received, the service will exit in %s.", shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("[QUIT] http server shutdown failed: %v", err)
		return
	}
	logrus.Info("[QUIT] http server is shutdown gracefully, new request will be rejected.")
}
