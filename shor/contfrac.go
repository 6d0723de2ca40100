package shor

import "math/big"

// convergents returns the denominators of the continued-fraction
// convergents of num/den, stopping before the first one >= limit.
func convergents(num, den, limit *big.Int) []*big.Int {
	var out []*big.Int
	x, y := new(big.Int).Set(num), new(big.Int).Set(den)
	// q_k = t_k*q_{k-1} + q_{k-2}, seeded with q_{-2} = 1, q_{-1} = 0
	qPrev, q := big.NewInt(1), big.NewInt(0)
	for y.Sign() != 0 {
		t, m := new(big.Int).QuoRem(x, y, new(big.Int))
		next := new(big.Int).Mul(t, q)
		next.Add(next, qPrev)
		if next.Cmp(limit) >= 0 {
			break
		}
		out = append(out, next)
		qPrev, q = q, next
		x, y = y, m
	}
	return out
}

// refinePeriod reads outcome as the phase outcome / 2^width and returns
// the first convergent denominator that is a true period of a modulo n.
func refinePeriod(a, n, outcome *big.Int, width int) *big.Int {
	if outcome.Sign() == 0 {
		return nil
	}
	space := new(big.Int).Lsh(one, uint(width))
	for _, q := range convergents(outcome, space, n) {
		if ModExp(a, q, n).Cmp(one) == 0 {
			return q
		}
	}
	return nil
}
