// Package allocation implements the proportional splitting arithmetic for
// jar balances.
//
// All functions are pure: they only depend on their arguments and never touch
// the database. Callers are expected to run them inside whatever transaction
// scope they need.
package allocation

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Weight pairs a jar ID with its configured percentage.
type Weight struct {
	ID         uint64
	Percentage decimal.Decimal
}

// RemainderTarget returns the ID of the jar that absorbs rounding leftovers:
// the jar with the highest percentage, ties broken by the lowest ID.
//
// The second return value is false if weights is empty.
func RemainderTarget(weights []Weight) (uint64, bool) {
	if len(weights) == 0 {
		return 0, false
	}

	target := weights[0]
	for _, w := range weights[1:] {
		if w.Percentage.GreaterThan(target.Percentage) ||
			(w.Percentage.Equal(target.Percentage) && w.ID < target.ID) {
			target = w
		}
	}

	return target.ID, true
}

// Split divides an amount of whole currency units across the weights.
//
// Every jar gets floor(amount * percentage / 100). The difference between the
// amount and the sum of the floored shares goes to the remainder target, so
// the shares always sum to exactly the amount.
//
// An empty weight list returns an empty map: the amount is simply not
// distributed, which callers treat as a no-op. Negative amounts are a caller
// error and must be rejected before calling Split.
func Split(amount int64, weights []Weight) map[uint64]int64 {
	shares := make(map[uint64]int64, len(weights))
	if len(weights) == 0 {
		return shares
	}

	var distributed int64
	for _, w := range weights {
		share := decimal.NewFromInt(amount).Mul(w.Percentage).Div(hundred).Floor().IntPart()
		shares[w.ID] = share
		distributed += share
	}

	if remainder := amount - distributed; remainder > 0 {
		target, _ := RemainderTarget(weights)
		shares[target] += remainder
	}

	return shares
}

// Redistribute computes replacement balances for all jars from the total
// balance and the current percentage table.
//
// Unlike Split, targets are floored to cents, not to whole units, because jar
// balances carry two decimal places. The remainder (rounded to cents) again
// goes to the remainder target so that the targets sum to exactly the total.
//
// A total of zero or less sets every target to exactly zero. The result only
// depends on the input, so running it twice in a row yields the same balances.
func Redistribute(total decimal.Decimal, weights []Weight) map[uint64]decimal.Decimal {
	targets := make(map[uint64]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return targets
	}

	if total.LessThanOrEqual(decimal.Zero) {
		for _, w := range weights {
			targets[w.ID] = decimal.Zero
		}
		return targets
	}

	distributed := decimal.Zero
	for _, w := range weights {
		share := total.Mul(w.Percentage).Div(hundred).RoundDown(2)
		targets[w.ID] = share
		distributed = distributed.Add(share)
	}

	if remainder := total.Sub(distributed).Round(2); remainder.IsPositive() {
		target, _ := RemainderTarget(weights)
		targets[target] = targets[target].Add(remainder)
	}

	return targets
}
