package shor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidOracle = errors.New("invalid oracle")
	ErrOracleBackend = errors.New("oracle backend failure")
)

const DefaultMaxAttempts = 5

var four = big.NewInt(4)

type Config struct {
	MaxAttempts int
	// Order lists the oracles consulted in one attempt. An unknown or zero
	// estimate passes on to the next entry.
	Order []Source
	// Oracles overrides Order with ready-made strategies.
	Oracles []PeriodOracle

	Shots     int
	MaxQubits int
	Refine    bool
	// FallbackOnReject also hands over to the next oracle when an estimate
	// is known but yields no factors.
	FallbackOnReject bool

	// Seed feeds the per-request source when Rand is nil; 0 means time based.
	Seed int64
	Rand *rand.Rand

	// Timeout bounds each request run through FactorizeAll.
	Timeout time.Duration

	Logger    *zap.Logger
	OnAttempt func(att Attempt)
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if len(c.Order) == 0 {
		c.Order = DefaultOrder
	}
	if c.Shots <= 0 {
		c.Shots = DefaultShots
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Rand == nil {
		seed := c.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.Rand = rand.New(rand.NewSource(seed))
	}
	return c
}

// Stage tells how a request ended.
type Stage string

const (
	StageTrivial   Stage = "trivial"
	StageGCD       Stage = "gcd"
	StagePeriod    Stage = "period"
	StageExhausted Stage = "exhausted"
	StageAborted   Stage = "aborted"
)

type AttemptOutcome string

const (
	OutcomeGCD      AttemptOutcome = "gcd"
	OutcomeFactored AttemptOutcome = "factored"
	OutcomeUnknown  AttemptOutcome = "unknown-period"
	OutcomeOdd      AttemptOutcome = "odd-period"
	OutcomeRejected AttemptOutcome = "no-factors"
)

// Attempt records one base selection, shortcut check, oracle round and extraction.
type Attempt struct {
	N         *big.Int       `json:"n"`
	Index     int            `json:"index"`
	Base      *big.Int       `json:"base"`
	Shortcut  bool           `json:"shortcut"`
	Estimates []Estimate     `json:"estimates,omitempty"`
	Outcome   AttemptOutcome `json:"outcome"`
}

type Result struct {
	N        *big.Int  `json:"n"`
	Factors  *Pair     `json:"factors"`
	Stage    Stage     `json:"stage"`
	Attempts []Attempt `json:"attempts"`
	Aborted  bool      `json:"aborted,omitempty"`
}

// Found reports whether a nontrivial factor pair was produced.
func (r *Result) Found() bool {
	return r != nil && r.Factors != nil
}

// Factorize splits n into two nontrivial factors. Running out of attempts
// or a cancelled ctx is a normal result without factors; only an oracle
// backend failure is returned as an error. 2 and 3 have no nontrivial
// pair and end as exhausted with zero attempts.
func Factorize(ctx context.Context, n *big.Int, conf Config) (*Result, error) {
	if n == nil || n.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: n must be an integer >= 2", ErrInvalidInput)
	}
	n = new(big.Int).Set(n)
	conf = conf.withDefaults()
	res := &Result{N: n, Attempts: []Attempt{}}

	if n.Bit(0) == 0 && n.Cmp(four) >= 0 {
		res.Factors = &Pair{P: big.NewInt(2), Q: new(big.Int).Rsh(n, 1)}
		res.Stage = StageTrivial
		return res, nil
	}
	if n.Cmp(four) < 0 {
		// 2 and 3 have no nontrivial factors
		res.Stage = StageExhausted
		return res, nil
	}

	oracles := conf.Oracles
	if len(oracles) == 0 {
		for _, src := range conf.Order {
			o, err := NewOracle(src, conf, conf.Rand)
			if err != nil {
				return nil, err
			}
			oracles = append(oracles, o)
		}
	}

	span := new(big.Int).Sub(n, big.NewInt(3))
	for i := range conf.MaxAttempts {
		if ctx.Err() != nil {
			return aborted(res), nil
		}
		a := new(big.Int).Rand(conf.Rand, span)
		a.Add(a, two)
		att := Attempt{N: n, Index: i + 1, Base: a}

		pair, src, err := runAttempt(ctx, &att, oracles, n, conf.FallbackOnReject)
		res.Attempts = append(res.Attempts, att)
		conf.Logger.Debug("attempt",
			zap.String("n", n.String()),
			zap.Int("index", att.Index),
			zap.String("base", a.String()),
			zap.String("outcome", string(att.Outcome)),
			zap.Int("estimates", len(att.Estimates)))
		if conf.OnAttempt != nil {
			conf.OnAttempt(att)
		}

		if err != nil {
			if ctx.Err() != nil {
				return aborted(res), nil
			}
			if errors.Is(err, ErrOracleBackend) {
				return res, fmt.Errorf("attempt %d, %s oracle: %w", att.Index, src, err)
			}
			return res, fmt.Errorf("attempt %d, %s oracle: %w: %w", att.Index, src, ErrOracleBackend, err)
		}
		if pair != nil {
			res.Factors = pair
			res.Stage = StagePeriod
			if att.Shortcut {
				res.Stage = StageGCD
			}
			return res, nil
		}
	}
	if ctx.Err() != nil {
		return aborted(res), nil
	}
	res.Stage = StageExhausted
	return res, nil
}

func aborted(res *Result) *Result {
	res.Stage = StageAborted
	res.Aborted = true
	return res
}

// runAttempt fills att and returns the pair it found, if any. On error it
// also returns the source of the failing oracle.
func runAttempt(ctx context.Context, att *Attempt, oracles []PeriodOracle, n *big.Int, fallbackOnReject bool) (*Pair, Source, error) {
	if p := Shortcut(att.Base, n); p != nil {
		att.Shortcut = true
		att.Outcome = OutcomeGCD
		return p, "", nil
	}

	att.Outcome = OutcomeUnknown
	for _, o := range oracles {
		est, err := o.FindPeriod(ctx, att.Base, n)
		if err != nil {
			return nil, o.Source(), err
		}
		att.Estimates = append(att.Estimates, est)
		if !est.Known() {
			att.Outcome = OutcomeUnknown
			continue
		}
		if est.Period.Bit(0) == 1 {
			att.Outcome = OutcomeOdd
		} else if p := Extract(att.Base, est.Period, n); p != nil {
			att.Outcome = OutcomeFactored
			return p, "", nil
		} else {
			att.Outcome = OutcomeRejected
		}
		if !fallbackOnReject {
			break
		}
	}
	return nil, "", nil
}
