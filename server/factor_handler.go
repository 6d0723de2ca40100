package server

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nxtrace/NShor/shor"
)

type factorRequest struct {
	Targets          []string `json:"targets"`
	MaxAttempts      int      `json:"max_attempts"`
	Oracle           string   `json:"oracle"`
	Shots            int      `json:"shots"`
	Seed             int64    `json:"seed"`
	Refine           *bool    `json:"refine"`
	FallbackOnReject *bool    `json:"fallback_on_reject"`
	TimeoutMs        int      `json:"timeout_ms"`
}

type factorResponse struct {
	RequestID  string        `json:"request_id"`
	Results    []shor.Report `json:"results"`
	DurationMs int64         `json:"duration_ms"`
}

var errTooManyTargets = errors.New("too many targets")

// prepare validates req and merges it over the handler defaults.
func (h *Handler) prepare(req factorRequest) (shor.Config, []*big.Int, error) {
	conf := h.Defaults
	if len(req.Targets) == 0 {
		return conf, nil, fmt.Errorf("%w: no targets", shor.ErrInvalidInput)
	}
	if len(req.Targets) > maxTargets {
		return conf, nil, fmt.Errorf("%w: %d > %d", errTooManyTargets, len(req.Targets), maxTargets)
	}

	targets := make([]*big.Int, 0, len(req.Targets))
	for _, s := range req.Targets {
		n, err := shor.ParseTarget(s)
		if err != nil {
			return conf, nil, err
		}
		targets = append(targets, n)
	}

	if req.Oracle != "" {
		order, err := shor.ParseOrder(req.Oracle)
		if err != nil {
			return conf, nil, err
		}
		conf.Order = order
	}
	switch {
	case req.MaxAttempts < 0 || req.MaxAttempts > maxAttemptsLimit:
		return conf, nil, fmt.Errorf("%w: max_attempts must be within 0..%d", shor.ErrInvalidInput, maxAttemptsLimit)
	case req.MaxAttempts > 0:
		conf.MaxAttempts = req.MaxAttempts
	}
	switch {
	case req.Shots < 0 || req.Shots > maxShotsLimit:
		return conf, nil, fmt.Errorf("%w: shots must be within 0..%d", shor.ErrInvalidInput, maxShotsLimit)
	case req.Shots > 0:
		conf.Shots = req.Shots
	}
	if req.Seed != 0 {
		conf.Seed = req.Seed
	}
	if req.Refine != nil {
		conf.Refine = *req.Refine
	}
	if req.FallbackOnReject != nil {
		conf.FallbackOnReject = *req.FallbackOnReject
	}
	if req.TimeoutMs > 0 {
		conf.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	return conf, targets, nil
}

func (h *Handler) factorHandler(c *gin.Context) {
	var req factorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conf, targets, err := h.prepare(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := uuid.NewString()
	logger := h.Logger.With(zap.String("request_id", requestID))
	conf.Logger = logger
	logger.Info("factor request",
		zap.Strings("targets", req.Targets),
		zap.Int("max_attempts", conf.MaxAttempts),
	)

	start := time.Now()
	outcomes := shor.FactorizeAll(c.Request.Context(), targets, conf, h.Parallel)
	reports := make([]shor.Report, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			logger.Warn("factor failed", zap.Stringer("n", o.N), zap.Error(o.Err))
		}
		reports = append(reports, shor.NewReport(o))
	}

	c.JSON(http.StatusOK, factorResponse{
		RequestID:  requestID,
		Results:    reports,
		DurationMs: time.Since(start).Milliseconds(),
	})
}
