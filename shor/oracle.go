package shor

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
)

// Source names a period-finding strategy.
type Source string

const (
	Simulated Source = "simulated"
	Classical Source = "classical"
)

// DefaultOrder tries the simulated estimate first and falls back to order finding.
var DefaultOrder = []Source{Simulated, Classical}

// Estimate is one oracle answer. A nil Period means unknown.
type Estimate struct {
	Source  Source   `json:"source"`
	Period  *big.Int `json:"period,omitempty"`
	Outcome *big.Int `json:"outcome,omitempty"`
}

// Known reports whether the estimate carries a usable, nonzero period.
func (e Estimate) Known() bool {
	return e.Period != nil && e.Period.Sign() > 0
}

// PeriodOracle estimates the multiplicative order of a modulo n.
// An unusable answer is a valid Estimate; errors mean the backend failed.
type PeriodOracle interface {
	Source() Source
	FindPeriod(ctx context.Context, a, n *big.Int) (Estimate, error)
}

// ParseOrder reads a comma separated oracle list such as "simulated,classical".
func ParseOrder(s string) ([]Source, error) {
	var order []Source
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		src := Source(name)
		switch src {
		case Simulated, Classical:
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidOracle, name)
		}
		for _, seen := range order {
			if seen == src {
				return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidOracle, name)
			}
		}
		order = append(order, src)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: empty order", ErrInvalidOracle)
	}
	return order, nil
}

// NewOracle builds the strategy for src using the oracle options in conf.
func NewOracle(src Source, conf Config, rng *rand.Rand) (PeriodOracle, error) {
	switch src {
	case Classical:
		return NewClassicalOracle(), nil
	case Simulated:
		o := NewSimulatedOracle(conf.Shots, rng)
		o.MaxQubits = conf.MaxQubits
		o.Refine = conf.Refine
		return o, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOracle, src)
	}
}
