package shor

import (
	"fmt"
	"math/big"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Pair is a nontrivial factorization P * Q = N with P <= Q.
type Pair struct {
	P *big.Int `json:"p"`
	Q *big.Int `json:"q"`
}

func (p *Pair) String() string {
	return fmt.Sprintf("[%s %s]", p.P, p.Q)
}

// newPair returns (g, n/g) sorted, or nil when g is not a proper divisor of n.
func newPair(g, n *big.Int) *Pair {
	if g.Cmp(one) <= 0 || g.Cmp(n) >= 0 {
		return nil
	}
	q, m := new(big.Int).QuoRem(n, g, new(big.Int))
	if m.Sign() != 0 {
		return nil
	}
	p := new(big.Int).Set(g)
	if p.Cmp(q) > 0 {
		p, q = q, p
	}
	return &Pair{P: p, Q: q}
}

// GCD returns gcd(a, b) as a new value.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// ModExp computes a^e mod n by square-and-multiply.
func ModExp(a, e, n *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, n)
}

// Shortcut reports the factorization of n when a already shares a factor with it.
func Shortcut(a, n *big.Int) *Pair {
	g := GCD(a, n)
	if g.Cmp(one) <= 0 {
		return nil
	}
	return newPair(g, n)
}

// Extract turns an even period r of a modulo n into a factor pair.
func Extract(a, r, n *big.Int) *Pair {
	if r == nil || r.Sign() <= 0 || r.Bit(0) == 1 {
		return nil
	}
	x := ModExp(a, new(big.Int).Rsh(r, 1), n)
	if x.Cmp(new(big.Int).Sub(n, one)) == 0 {
		return nil
	}
	f1 := GCD(new(big.Int).Add(x, one), n)
	f2 := GCD(new(big.Int).Sub(x, one), n)
	if !properDivisor(f1, n) || !properDivisor(f2, n) {
		return nil
	}
	// For odd n the two gcds are cofactors; building the pair from the
	// smaller one keeps P*Q = n by construction.
	if f1.Cmp(f2) > 0 {
		f1 = f2
	}
	return newPair(f1, n)
}

func properDivisor(f, n *big.Int) bool {
	return f.Cmp(one) > 0 && f.Cmp(n) < 0
}
