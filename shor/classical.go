package shor

import (
	"context"
	"math/big"
)

const classicalCheckEvery = 1024

// ClassicalOracle finds the exact order by stepping through powers of a.
type ClassicalOracle struct{}

func NewClassicalOracle() *ClassicalOracle {
	return &ClassicalOracle{}
}

func (*ClassicalOracle) Source() Source { return Classical }

// FindPeriod returns the smallest r <= n with a^r = 1 (mod n), or unknown
// when a is not a unit modulo n.
func (*ClassicalOracle) FindPeriod(ctx context.Context, a, n *big.Int) (Estimate, error) {
	est := Estimate{Source: Classical}
	if n.Cmp(one) <= 0 {
		return est, nil
	}
	base := new(big.Int).Mod(a, n)
	x := big.NewInt(1)
	r := new(big.Int)
	for step := 1; r.Cmp(n) < 0; step++ {
		if step%classicalCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return est, err
			}
		}
		r.Add(r, one)
		x.Mul(x, base).Mod(x, n)
		if x.Cmp(one) == 0 {
			est.Period = r
			return est, nil
		}
	}
	return est, nil
}
