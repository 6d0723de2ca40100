package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nxtrace/NShor/shor"
)

var supportedOracles = []shor.Source{shor.Simulated, shor.Classical}

func (h *Handler) optionsHandler(c *gin.Context) {
	order := h.Defaults.Order
	if len(order) == 0 {
		order = shor.DefaultOrder
	}
	maxAttempts := h.Defaults.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = shor.DefaultMaxAttempts
	}
	shots := h.Defaults.Shots
	if shots <= 0 {
		shots = shor.DefaultShots
	}
	c.JSON(http.StatusOK, gin.H{
		"oracles": supportedOracles,
		"defaultOptions": gin.H{
			"oracle":             order,
			"max_attempts":       maxAttempts,
			"shots":              shots,
			"refine":             h.Defaults.Refine,
			"fallback_on_reject": h.Defaults.FallbackOnReject,
			"timeout_ms":         h.Defaults.Timeout.Milliseconds(),
			"max_targets":        maxTargets,
			"max_shots":          maxShotsLimit,
		},
	})
}
