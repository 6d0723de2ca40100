package shor

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseTarget reads a base-10 integer >= 2.
func ParseTarget(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	if n.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: %s is below 2", ErrInvalidInput, n)
	}
	return n, nil
}
