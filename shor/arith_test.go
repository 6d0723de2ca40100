package shor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func assertPair(t *testing.T, p *Pair, want1, want2 int64) {
	t.Helper()
	require.NotNil(t, p)
	assert.Equal(t, 0, p.P.Cmp(bi(want1)), "P = %s", p.P)
	assert.Equal(t, 0, p.Q.Cmp(bi(want2)), "Q = %s", p.Q)
}

func TestModExp(t *testing.T) {
	assert.Equal(t, int64(4), ModExp(bi(7), bi(2), bi(15)).Int64())
	assert.Equal(t, int64(445), ModExp(bi(4), bi(13), bi(497)).Int64())
	assert.Equal(t, int64(24), ModExp(bi(2), bi(10), bi(1000)).Int64())
	assert.Equal(t, int64(1), ModExp(bi(5), bi(0), bi(7)).Int64())
}

func TestModExpLargeModulus(t *testing.T) {
	// Fermat: 2^(p-1) = 1 mod p for the Mersenne prime 2^127 - 1
	p := new(big.Int).Sub(new(big.Int).Lsh(bi(1), 127), bi(1))
	e := new(big.Int).Sub(p, bi(1))
	assert.Equal(t, 0, ModExp(bi(2), e, p).Cmp(bi(1)))
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(6), GCD(bi(12), bi(18)).Int64())
	assert.Equal(t, int64(1), GCD(bi(7), bi(15)).Int64())
	assert.Equal(t, int64(15), GCD(bi(0), bi(15)).Int64())
	assert.Equal(t, int64(3), GCD(bi(-3), bi(15)).Int64())
}

func TestShortcut(t *testing.T) {
	assertPair(t, Shortcut(bi(6), bi(15)), 3, 5)
	assertPair(t, Shortcut(bi(10), bi(15)), 3, 5)
	assertPair(t, Shortcut(bi(14), bi(21)), 3, 7)
	assert.Nil(t, Shortcut(bi(7), bi(15)))
	assert.Nil(t, Shortcut(bi(15), bi(15)))
}

func TestExtract(t *testing.T) {
	// 7 has order 4 mod 15: x = 7^2 mod 15 = 4, gcd(5,15)=5, gcd(3,15)=3
	assertPair(t, Extract(bi(7), bi(4), bi(15)), 3, 5)
	assertPair(t, Extract(bi(2), bi(6), bi(21)), 3, 7)
	assertPair(t, Extract(bi(11), bi(2), bi(15)), 3, 5)
}

func TestExtractRejectsOddPeriod(t *testing.T) {
	assert.Nil(t, Extract(bi(7), bi(3), bi(15)))
	assert.Nil(t, Extract(bi(2), bi(1), bi(15)))
}

func TestExtractRejectsUnusablePeriod(t *testing.T) {
	assert.Nil(t, Extract(bi(7), nil, bi(15)))
	assert.Nil(t, Extract(bi(7), bi(0), bi(15)))
	assert.Nil(t, Extract(bi(7), bi(-4), bi(15)))
}

func TestExtractDegenerate(t *testing.T) {
	// 14 = -1 mod 15 has order 2 and a^(r/2) = N-1
	assert.Nil(t, Extract(bi(14), bi(2), bi(15)))
	// r = 8 is a multiple of the order of 2: x = 1, gcd(0, 15) = 15
	assert.Nil(t, Extract(bi(2), bi(8), bi(15)))
}

func TestNewPair(t *testing.T) {
	assertPair(t, newPair(bi(5), bi(15)), 3, 5)
	assert.Nil(t, newPair(bi(1), bi(15)))
	assert.Nil(t, newPair(bi(15), bi(15)))
	assert.Nil(t, newPair(bi(4), bi(15)))
}

func TestPairString(t *testing.T) {
	assert.Equal(t, "[3 5]", (&Pair{P: bi(3), Q: bi(5)}).String())
}
