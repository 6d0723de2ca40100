package shor

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Outcome pairs one batch target with its result or error. Input keeps
// the raw text of targets that came from FactorizeInputs.
type Outcome struct {
	Input  string
	N      *big.Int
	Result *Result
	Err    error
}

// Label names the target in output: its value, or the raw input when it
// never parsed.
func (o Outcome) Label() string {
	if o.N != nil {
		return o.N.String()
	}
	return strings.TrimSpace(o.Input)
}

// FactorizeAll runs one independent request per target, at most parallel
// at a time. Outcomes keep the order of targets and a failing target never
// stops the others.
func FactorizeAll(ctx context.Context, targets []*big.Int, conf Config, parallel int) []Outcome {
	if parallel <= 0 {
		parallel = 1
	}
	outcomes := make([]Outcome, len(targets))
	seed := batchSeed(conf.Seed)
	sem := semaphore.NewWeighted(int64(parallel))
	var wg sync.WaitGroup

	for i, n := range targets {
		outcomes[i].N = n
		if err := sem.Acquire(ctx, 1); err != nil {
			// cancelled before this target started
			outcomes[i].Result = aborted(&Result{N: n, Attempts: []Attempt{}})
			continue
		}
		wg.Add(1)
		go func(i int, n *big.Int) {
			defer wg.Done()
			defer sem.Release(1)
			reqCtx := ctx
			if conf.Timeout > 0 {
				var cancel context.CancelFunc
				reqCtx, cancel = context.WithTimeout(ctx, conf.Timeout)
				defer cancel()
			}
			outcomes[i].Result, outcomes[i].Err = Factorize(reqCtx, n, requestConfig(conf, seed, i))
		}(i, n)
	}
	wg.Wait()
	return outcomes
}

// batchSeed is drawn once per batch so concurrent requests never seed
// from the same clock reading.
func batchSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// requestConfig gives request i its own random source and oracles.
func requestConfig(conf Config, seed int64, i int) Config {
	c := conf
	c.Rand = nil
	c.Seed = seed + int64(i)
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// FactorizeInputs parses every input with ParseTarget and runs the valid
// ones through FactorizeAll. An input that does not parse keeps its slot
// with an ErrInvalidInput error.
func FactorizeInputs(ctx context.Context, inputs []string, conf Config, parallel int) []Outcome {
	outcomes := make([]Outcome, len(inputs))
	targets := make([]*big.Int, 0, len(inputs))
	slots := make([]int, 0, len(inputs))
	for i, in := range inputs {
		outcomes[i].Input = in
		n, err := ParseTarget(in)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		targets = append(targets, n)
		slots = append(slots, i)
	}
	for j, o := range FactorizeAll(ctx, targets, conf, parallel) {
		o.Input = outcomes[slots[j]].Input
		outcomes[slots[j]] = o
	}
	return outcomes
}
