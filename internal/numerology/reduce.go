// Package numerology implements the numerology calculator: digit-root
// reductions, life path and expression numbers, and the universal and
// personal calendar cycles.
package numerology

// Master numbers interrupt the reduction of life-path and expression
// numbers. Date cycles reduce past them (see PlainReduce).
const (
	masterEleven      = 11
	masterTwentyTwo   = 22
	masterThirtyThree = 33
)

// Reduce collapses n to its digit root, stopping early whenever an
// intermediate total hits a master number (11, 22, 33).
func Reduce(n int) int {
	for n > 9 {
		if n == masterEleven || n == masterTwentyTwo || n == masterThirtyThree {
			return n
		}
		n = digitSum(n)
	}
	return n
}

// PlainReduce collapses n to a single digit with no master-number stop.
// Used for all date-derived cycles.
func PlainReduce(n int) int {
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

// digitSum sums the base-10 digits of a non-negative integer.
func digitSum(n int) int {
	total := 0
	for n > 0 {
		total += n % 10
		n /= 10
	}
	return total
}
