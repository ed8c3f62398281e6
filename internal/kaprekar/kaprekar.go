// Package kaprekar implements the digit transform behind Kaprekar's routine
// for 4-digit numbers: sort the zero-padded digits both ways, reparse, and
// subtract.
package kaprekar

import (
	"fmt"
	"sort"
	"strconv"
)

const (
	// Constant is Kaprekar's constant, the non-trivial fixed point of the
	// routine for 4-digit numbers.
	Constant = 6174

	// Width is the number of digits every value is padded to.
	Width = 4

	// MaxValue is the largest number representable in Width digits.
	MaxValue = 9999
)

// Digits is the zero-padded decimal form of a number in [0, MaxValue].
type Digits [Width]byte

// String returns the digits as a 4-character string.
func (d Digits) String() string {
	return string(d[:])
}

// DigitsOf zero-pads n to Width digits.
// It panics if n is outside [0, MaxValue].
func DigitsOf(n int) Digits {
	if n < 0 || n > MaxValue {
		panic(fmt.Sprintf("kaprekar: %d out of range [0, %d]", n, MaxValue))
	}

	var d Digits
	copy(d[:], fmt.Sprintf("%0*d", Width, n))
	return d
}

// Pad formats n zero-padded to Width digits. Used for display only; stored
// values are always plain integers.
func Pad(n int) string {
	return fmt.Sprintf("%0*d", Width, n)
}

// Step is one application of the routine to Input.
type Step struct {
	Input      int `json:"input"`
	Ascending  int `json:"ascending"`
	Descending int `json:"descending"`
	Difference int `json:"difference"`
}

// Transform computes the ascending and descending rearrangements of n's
// digits and their difference. The rearrangements are reparsed as integers,
// so leading zeros collapse (0378 becomes 378).
// It panics if n is outside [0, MaxValue]; callers validate first.
func Transform(n int) Step {
	d := DigitsOf(n)

	asc := d
	sort.Slice(asc[:], func(i, j int) bool { return asc[i] < asc[j] })

	var desc Digits
	for i := range asc {
		desc[i] = asc[Width-1-i]
	}

	ascending := mustAtoi(asc.String())
	descending := mustAtoi(desc.String())

	return Step{
		Input:      n,
		Ascending:  ascending,
		Descending: descending,
		Difference: descending - ascending,
	}
}

// Next returns the number that follows n in the routine.
func Next(n int) int {
	return Transform(n).Difference
}

// IsRepdigit reports whether all Width digits of n are identical.
// Repdigits collapse to 0 rather than reaching Constant.
func IsRepdigit(n int) bool {
	d := DigitsOf(n)
	for _, c := range d[1:] {
		if c != d[0] {
			return false
		}
	}
	return true
}

// Sequence applies the routine synchronously, starting from n, until it
// reaches Constant or the sequence holds limit values. The result always
// starts with n. A limit below 1 is treated as 1.
func Sequence(n, limit int) []int {
	if limit < 1 {
		limit = 1
	}

	seq := []int{n}
	current := n
	for current != Constant && len(seq) < limit {
		current = Next(current)
		seq = append(seq, current)
	}
	return seq
}

func mustAtoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		// Digits only ever holds '0'-'9'.
		panic(fmt.Sprintf("kaprekar: unparseable digits %q: %v", s, err))
	}
	return v
}
