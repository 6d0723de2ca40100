package shor

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"sync"
)

const (
	DefaultShots = 1024
	minQubits    = 4

	sampleCheckEvery = 4096
)

// SimulatedOracle samples the counting register of an order-finding circuit.
//
// Only the uniform superposition stage is modelled, so the most frequent
// outcome is a placeholder estimate unrelated to the true order. Callers
// must treat it as advisory. Refine runs continued-fraction post-processing
// over the outcome, which recovers the order whenever the sample happens to
// land near a multiple of 2^width / r.
type SimulatedOracle struct {
	Shots     int
	MaxQubits int
	Refine    bool

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedOracle(shots int, rng *rand.Rand) *SimulatedOracle {
	if shots <= 0 {
		shots = DefaultShots
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &SimulatedOracle{Shots: shots, rng: rng}
}

func (*SimulatedOracle) Source() Source { return Simulated }

// Qubits is the counting register width for n: max(ceil(log2 n), 4).
func Qubits(n *big.Int) int {
	w := n.BitLen()
	if n.Sign() > 0 && new(big.Int).And(n, new(big.Int).Sub(n, one)).Sign() == 0 {
		// exact power of two
		w--
	}
	return max(w, minQubits)
}

func (o *SimulatedOracle) FindPeriod(ctx context.Context, a, n *big.Int) (Estimate, error) {
	est := Estimate{Source: Simulated}
	width := Qubits(n)
	if o.MaxQubits > 0 && width > o.MaxQubits {
		return est, fmt.Errorf("%w: circuit needs %d qubits, simulator limit is %d",
			ErrOracleBackend, width, o.MaxQubits)
	}
	outcome, err := o.sample(ctx, width)
	if err != nil {
		return est, err
	}
	est.Outcome = outcome
	if !o.Refine {
		est.Period = new(big.Int).Set(outcome)
		return est, nil
	}
	if r := refinePeriod(a, n, outcome, width); r != nil {
		est.Period = r
	}
	return est, nil
}

// sample draws Shots outcomes from the uniform distribution over width
// bits and returns the most frequent one, preferring the smallest on ties.
// ctx is polled every sampleCheckEvery draws.
func (o *SimulatedOracle) sample(ctx context.Context, width int) (*big.Int, error) {
	space := new(big.Int).Lsh(one, uint(width))
	counts := make(map[string]int, o.Shots)
	var best *big.Int
	bestCount := 0

	o.mu.Lock()
	defer o.mu.Unlock()
	for shot := range o.Shots {
		if shot%sampleCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		v := new(big.Int).Rand(o.rng, space)
		key := v.Text(16)
		counts[key]++
		c := counts[key]
		if c > bestCount || (c == bestCount && v.Cmp(best) < 0) {
			best, bestCount = v, c
		}
	}
	return best, nil
}
