package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nxtrace/NShor/shor"
)

const (
	defaultListenAddr = ":1080"
	defaultTimeout    = 10 * time.Second
	maxTargets        = 64
	maxAttemptsLimit  = 1000
	maxShotsLimit     = 1 << 16
)

// Handler serves factorization requests using Defaults for unset options.
type Handler struct {
	Defaults shor.Config
	Parallel int
	Logger   *zap.Logger
}

func NewHandler(defaults shor.Config, parallel int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Timeout <= 0 {
		defaults.Timeout = defaultTimeout
	}
	if defaults.MaxAttempts <= 0 {
		defaults.MaxAttempts = shor.DefaultMaxAttempts
	}
	if len(defaults.Order) == 0 {
		defaults.Order = shor.DefaultOrder
	}
	if parallel <= 0 {
		parallel = 4
	}
	// requests build their own oracles and random sources
	defaults.Oracles = nil
	defaults.Rand = nil
	defaults.OnAttempt = nil
	defaults.Logger = logger
	return &Handler{Defaults: defaults, Parallel: parallel, Logger: logger}
}

func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(h.Logger), gin.Recovery())

	router.GET("/api/options", h.optionsHandler)
	router.POST("/api/factor", h.factorHandler)
	router.GET("/ws/factor", h.factorWebsocketHandler)
	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Run starts the Gin HTTP server that exposes the factoring API.
func Run(listenAddr string, h *Handler) error {
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{Addr: listenAddr, Handler: NewRouter(h)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	h.Logger.Info("listening", zap.String("addr", listenAddr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if strings.Contains(err.Error(), "address already in use") {
			return fmt.Errorf("listen %s: %w", listenAddr, err)
		}
		return err
	}

	return nil
}
