package types

import "errors"

// ErrArithmeticOverflow is returned whenever amount arithmetic would wrap.
// Amounts are u64 units of the payment asset; silent wraparound would corrupt
// escrow accounting, so every sum and difference goes through these helpers.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

func AddAmount(a, b uint64) (uint64, error) {
	c := a + b
	if c < a {
		return 0, ErrArithmeticOverflow
	}
	return c, nil
}

func SubAmount(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticOverflow
	}
	return a - b, nil
}
